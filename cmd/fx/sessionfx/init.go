package sessionfx

import (
	"go.uber.org/fx"

	"github.com/shadamnittt/FeelGo/internal/config"
	"github.com/shadamnittt/FeelGo/internal/session"
)

var Module = fx.Provide(provideSessionStore)

func provideSessionStore(cfg *config.Config) session.Store {
	return session.NewCacheStore(cfg.Session.TTL, cfg.Session.PurgeInterval)
}
