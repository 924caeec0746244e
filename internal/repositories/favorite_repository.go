package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shadamnittt/FeelGo/internal/models/db_models"
)

type FavoriteRepository interface {
	Append(ctx context.Context, favorite *db_models.FavoritePlace) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.FavoritePlace, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Append inserts a new row; concurrent appends for the same user compose
// because each favorite is its own row, not an array column.
func (r *favoriteRepository) Append(ctx context.Context, favorite *db_models.FavoritePlace) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.FavoritePlace, error) {
	var favorites []db_models.FavoritePlace
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}
