package db_models

import "github.com/google/uuid"

// FavoritePlace is a place the user saved. Rows are append-only; there is no
// dedup, a place saved twice shows up twice.
type FavoritePlace struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	Latitude   float64
	Longitude  float64
	Category   string
	SourceID   string
	SourceKind string
}
