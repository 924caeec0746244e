package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/cmd/fx/dbfx"
	"github.com/shadamnittt/FeelGo/cmd/fx/dialogfx"
	"github.com/shadamnittt/FeelGo/cmd/fx/favoritesfx"
	"github.com/shadamnittt/FeelGo/cmd/fx/overpassfx"
	"github.com/shadamnittt/FeelGo/cmd/fx/recommendationfx"
	"github.com/shadamnittt/FeelGo/cmd/fx/sessionfx"
	"github.com/shadamnittt/FeelGo/internal/api/controllers"
	"github.com/shadamnittt/FeelGo/internal/config"
	"github.com/shadamnittt/FeelGo/pkg/logger"
	"github.com/shadamnittt/FeelGo/pkg/middleware"
)

func main() {
	app := fx.New(
		fx.Provide(config.Load, ProvideLogger),
		dbfx.Module,
		sessionfx.Module,
		overpassfx.Module,
		recommendationfx.Module,
		favoritesfx.Module,
		dialogfx.Module,

		fx.Provide(controllers.NewEventsController, controllers.NewFavoritesController),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideLogger(cfg *config.Config) *zap.Logger {
	return logger.New(cfg.App.LogFilePath, cfg.App.Environment == "production")
}

func ProvideRouter(
	cfg *config.Config,
	eventsController *controllers.EventsController,
	favoritesController *controllers.FavoritesController,
) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, cfg, eventsController, favoritesController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	eventsController *controllers.EventsController,
	favoritesController *controllers.FavoritesController,
) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authorized := r.Group("/", middleware.GatewayAuthMiddleware(cfg.App.GatewayToken))

	events := authorized.Group("/events")
	events.POST("/start", eventsController.Start)
	events.POST("/text", eventsController.Text)
	events.POST("/location", eventsController.Location)
	events.POST("/menu", eventsController.Menu)
	events.POST("/cancel", eventsController.Cancel)

	authorized.GET("/favorites/:chatId", favoritesController.ListByChatID)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("port", cfg.App.Port))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
