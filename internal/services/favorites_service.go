package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/internal/models/db_models"
	"github.com/shadamnittt/FeelGo/internal/models/response_models"
	"github.com/shadamnittt/FeelGo/internal/overpass"
	"github.com/shadamnittt/FeelGo/internal/repositories"
	"github.com/shadamnittt/FeelGo/pkg/utils"
)

type FavoritesServiceInterface interface {
	GetOrCreateUser(ctx context.Context, chatID int64, username string) error
	SetUserName(ctx context.Context, chatID int64, name string) error
	Append(ctx context.Context, chatID int64, place overpass.Place) error
	List(ctx context.Context, chatID int64) ([]response_models.Place, error)
}

type FavoritesService struct {
	users     repositories.UserRepository
	favorites repositories.FavoriteRepository
	logger    *zap.Logger
}

func NewFavoritesService(
	users repositories.UserRepository,
	favorites repositories.FavoriteRepository,
	logger *zap.Logger,
) FavoritesServiceInterface {
	return &FavoritesService{users: users, favorites: favorites, logger: logger}
}

func (s *FavoritesService) GetOrCreateUser(ctx context.Context, chatID int64, username string) error {
	if _, err := s.users.GetOrCreate(ctx, chatID, username); err != nil {
		s.logger.Error("get-or-create user failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *FavoritesService) SetUserName(ctx context.Context, chatID int64, name string) error {
	if err := s.users.UpdateName(ctx, chatID, name); err != nil {
		s.logger.Error("update user name failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *FavoritesService) Append(ctx context.Context, chatID int64, place overpass.Place) error {
	user, err := s.users.GetOrCreate(ctx, chatID, "")
	if err != nil {
		s.logger.Error("resolving user for favorite failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return utils.ErrDatabaseError
	}

	favorite := &db_models.FavoritePlace{
		UserID:     user.ID,
		Name:       place.Name,
		Latitude:   place.Lat,
		Longitude:  place.Lon,
		Category:   place.Category,
		SourceID:   place.SourceID,
		SourceKind: place.SourceKind,
	}
	if err := s.favorites.Append(ctx, favorite); err != nil {
		s.logger.Error("appending favorite failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

// List returns the user's saved places in insertion order. A user the store
// has never seen gets an empty list, not an error.
func (s *FavoritesService) List(ctx context.Context, chatID int64) ([]response_models.Place, error) {
	user, err := s.users.GetByChatID(ctx, chatID)
	if err != nil {
		s.logger.Error("looking up user failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return []response_models.Place{}, nil
	}

	rows, err := s.favorites.ListByUser(ctx, user.ID)
	if err != nil {
		s.logger.Error("listing favorites failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	places := make([]response_models.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, response_models.Place{
			Name:       row.Name,
			Latitude:   row.Latitude,
			Longitude:  row.Longitude,
			Category:   row.Category,
			SourceID:   row.SourceID,
			SourceKind: row.SourceKind,
		})
	}
	return places, nil
}
