package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/MatiasXp0/forca-tatica/internal/api/http"
	"github.com/MatiasXp0/forca-tatica/internal/api/http/handlers"
	"github.com/MatiasXp0/forca-tatica/internal/auth"
	"github.com/MatiasXp0/forca-tatica/internal/cache"
	"github.com/MatiasXp0/forca-tatica/internal/config"
	"github.com/MatiasXp0/forca-tatica/internal/discord"
	"github.com/MatiasXp0/forca-tatica/internal/events"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
	"github.com/MatiasXp0/forca-tatica/internal/persistence"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
	"github.com/MatiasXp0/forca-tatica/internal/service"
	"github.com/MatiasXp0/forca-tatica/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	listCache := cache.NewListCache(redis.Client, cfg.Cache.TTL(), logger)
	dispatcher := events.NewInMemoryDispatcher(logger)

	pool := pg.PoolHandle()
	announcementRepo := repository.NewAnnouncementRepository(pool)
	uniformRepo := repository.NewUniformRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	personnelRepo := repository.NewPersonnelRepository(pool)

	messenger, err := discord.NewMessenger(cfg.Discord, cfg.App.Name, logger)
	if err != nil {
		logger.Fatal("failed to init discord messenger", zap.Error(err))
	}
	channels := discord.ChannelsFromConfig(cfg.Discord.Channels)
	logger.Info("discord sync configured",
		zap.String("mode", string(cfg.Discord.Mode)),
		zap.Int("channels", len(channels)))

	syncService := service.NewSyncService(service.SyncDependencies{
		Messenger:     messenger,
		Channels:      channels,
		Announcements: announcementRepo,
		Uniforms:      uniformRepo,
		Vehicles:      vehicleRepo,
		Personnel:     personnelRepo,
		Metrics:       metrics,
		Logger:        logger,
	})

	syncWorker := worker.NewSyncWorker(syncService, logger, metrics, worker.Options{})
	if messenger != nil {
		syncWorker.Subscribe(dispatcher)
	}
	syncWorker.Start(ctx)

	announcementService := service.NewAnnouncementService(announcementRepo, dispatcher, listCache)
	uniformService := service.NewUniformService(uniformRepo, dispatcher, listCache)
	vehicleService := service.NewVehicleService(vehicleRepo, dispatcher, listCache)
	personnelService := service.NewPersonnelService(personnelRepo, dispatcher, listCache)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Announcements:  handlers.NewAnnouncementsHandler(announcementService, syncService),
		Uniforms:       handlers.NewUniformsHandler(uniformService, syncService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService, syncService),
		Personnel:      handlers.NewPersonnelHandler(personnelService, syncService),
		Proxy:          handlers.NewProxyHandler(messenger, channels, logger),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		ProxyKeyHash:   cfg.Discord.ProxyKeyHash,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	// Pending sync jobs finish before the pool closes.
	syncWorker.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
