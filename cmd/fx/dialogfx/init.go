package dialogfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/internal/services"
	"github.com/shadamnittt/FeelGo/internal/session"
)

var Module = fx.Provide(provideDialogService)

func provideDialogService(
	sessions session.Store,
	recommendations services.RecommendationServiceInterface,
	favorites services.FavoritesServiceInterface,
	logger *zap.Logger,
) services.DialogServiceInterface {
	return services.NewDialogService(sessions, recommendations, favorites, logger)
}
