package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shadamnittt/FeelGo/internal/models/db_models"
)

type UserRepository interface {
	GetOrCreate(ctx context.Context, chatID int64, username string) (*db_models.BotUser, error)
	GetByChatID(ctx context.Context, chatID int64) (*db_models.BotUser, error)
	UpdateName(ctx context.Context, chatID int64, name string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetOrCreate(ctx context.Context, chatID int64, username string) (*db_models.BotUser, error) {
	user := db_models.BotUser{ChatID: chatID, Username: username}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoNothing: true,
		}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}

	// OnConflict DoNothing leaves the struct empty for an existing user, so
	// always read the row back.
	var existing db_models.BotUser
	if err := r.db.WithContext(ctx).First(&existing, "chat_id = ?", chatID).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *userRepository) GetByChatID(ctx context.Context, chatID int64) (*db_models.BotUser, error) {
	var user db_models.BotUser
	err := r.db.WithContext(ctx).First(&user, "chat_id = ?", chatID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateName(ctx context.Context, chatID int64, name string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.BotUser{}).
		Where("chat_id = ?", chatID).
		Update("name", name).Error
}
