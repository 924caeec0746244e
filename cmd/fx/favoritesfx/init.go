package favoritesfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/internal/repositories"
	"github.com/shadamnittt/FeelGo/internal/services"
)

var Module = fx.Provide(provideFavoritesService)

func provideFavoritesService(
	users repositories.UserRepository,
	favorites repositories.FavoriteRepository,
	logger *zap.Logger,
) services.FavoritesServiceInterface {
	return services.NewFavoritesService(users, favorites, logger)
}
