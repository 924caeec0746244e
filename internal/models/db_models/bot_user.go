package db_models

// BotUser is one person talking to the bot, keyed by the chat id the
// messaging gateway assigns.
type BotUser struct {
	BaseModel
	ChatID   int64 `gorm:"uniqueIndex"`
	Username string
	Name     string

	Favorites []FavoritePlace `gorm:"foreignKey:UserID"`
}
