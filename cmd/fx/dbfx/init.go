package dbfx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/shadamnittt/FeelGo/internal/infra"
	"github.com/shadamnittt/FeelGo/internal/repositories"
)

var Module = fx.Options(
	fx.Provide(infra.InitPostgresql, provideUserRepo, provideFavoriteRepo),
	fx.Invoke(registerClose),
)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideFavoriteRepo(db *gorm.DB) repositories.FavoriteRepository {
	return repositories.NewFavoriteRepository(db)
}

func registerClose(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return infra.ClosePostgresql(db)
		},
	})
}
