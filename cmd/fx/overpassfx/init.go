package overpassfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/internal/config"
	"github.com/shadamnittt/FeelGo/internal/overpass"
)

var Module = fx.Provide(provideOverpassClient)

func provideOverpassClient(cfg *config.Config, logger *zap.Logger) overpass.ClientInterface {
	return overpass.NewClient(cfg.Overpass.EndpointURL, cfg.Overpass.Timeout, logger)
}
