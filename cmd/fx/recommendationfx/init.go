package recommendationfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/internal/config"
	"github.com/shadamnittt/FeelGo/internal/overpass"
	"github.com/shadamnittt/FeelGo/internal/services"
)

var Module = fx.Provide(provideRecommendationService)

func provideRecommendationService(
	client overpass.ClientInterface,
	cfg *config.Config,
	logger *zap.Logger,
) services.RecommendationServiceInterface {
	return services.NewRecommendationService(client, cfg.Search, logger)
}
