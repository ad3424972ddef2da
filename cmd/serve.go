package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"catalog-service/internal/database"
	"catalog-service/internal/handlers"
	"catalog-service/internal/qrcode"
	"catalog-service/internal/repository"
	"catalog-service/internal/resolver"
	"catalog-service/internal/services"
	"catalog-service/internal/services/cache"
	"catalog-service/internal/services/caches"
	"catalog-service/internal/storage"
)

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply schema migrations before serving")
	return cmd
}

func serve(migrate bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	if migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}
	minioClient := InitMinIOClient(ctx, cfg)
	redisClient := InitRedisClient(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	modelRepo := repository.NewModelRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	media := storage.NewMediaStore(minioClient, cfg.MinioBucket, cfg.MediaPublicURL)
	modelService := services.NewModelService(modelRepo, variantRepo, media)

	layers := []cache.CacheLayer{caches.NewMemoryCache(cfg.QRCacheMaxBytes, cfg.QRCacheTTL)}
	var redisPing handlers.Pinger
	if redisClient != nil {
		layers = append(layers, caches.NewRedisCache(redisClient, cfg.QRCacheTTL))
		redisPing = redisClient
	}
	qrCache := caches.NewTieredCache(layers...)

	pathResolver := resolver.New(repository.NewCatalogStore(modelRepo, variantRepo), cfg.ResolveTimeout)
	qrService := services.NewQRService(qrcode.NewRenderer(), qrCache, cfg.PublicBaseURL)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	app := handlers.NewApp()
	handlers.Register(app, handlers.Handlers{
		SEO: handlers.NewSEOHandler(pathResolver, cfg.ViewerBaseURL),
		QR:  handlers.NewQRHandler(pathResolver, qrService),
		Models: handlers.NewModelHandler(
			modelService,
			services.NewShareService(modelService, cfg.PublicBaseURL, cfg.ViewerBaseURL),
			services.NewAnalyticsService(modelRepo, variantRepo, analyticsRepo),
		),
		Variants:      handlers.NewVariantHandler(services.NewVariantService(modelRepo, variantRepo)),
		Customer:      handlers.NewCustomerHandler(services.NewCustomerService(customerRepo)),
		Cache:         handlers.NewCacheHandler(qrCache),
		Health:        handlers.NewHealthHandler(handlers.PingFunc(sqlDB.PingContext), redisPing),
		ViewRateLimit: cfg.ViewRateLimit,
	})

	for _, r := range app.GetRoutes(true) {
		log.Debug().Str("method", r.Method).Str("path", r.Path).Msg("route registered")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.AppPort).Msg("server listening")
	return app.Listen(":" + cfg.AppPort)
}
