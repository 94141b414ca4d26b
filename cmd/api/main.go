package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/social-api/internal/api/http"
	"github.com/spec-kit/social-api/internal/api/http/handlers"
	"github.com/spec-kit/social-api/internal/auth"
	"github.com/spec-kit/social-api/internal/config"
	"github.com/spec-kit/social-api/internal/events"
	"github.com/spec-kit/social-api/internal/observability"
	"github.com/spec-kit/social-api/internal/persistence"
	"github.com/spec-kit/social-api/internal/repository"
	"github.com/spec-kit/social-api/internal/service"
	"github.com/spec-kit/social-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// The signing key lives for the process lifetime; a misconfigured
	// operator-supplied key aborts startup.
	var key auth.SigningKey
	if cfg.Auth.SigningKey != "" {
		key, err = auth.SigningKeyFromBase64(cfg.Auth.SigningKey)
	} else {
		key, err = auth.NewSigningKey()
	}
	if err != nil {
		logger.Fatal("failed to init signing key", zap.Error(err))
	}
	logger.Info("signing key initialized", zap.String("fingerprint", key.Fingerprint()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	accountRepo := repository.NewAccountRepository(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	codec := auth.NewTokenCodec(key, logger)
	authService := service.NewAuthService(*cfg, codec, accountRepo, dispatcher)

	recorder := worker.NewAuditRecorder(redis.Client, cfg.Audit, logger)
	worker.StartAuditWorker(dispatcher, recorder)

	resolver := auth.NewIdentityResolver(accountRepo)
	authenticator := auth.NewRequestAuthenticator(codec, resolver, dispatcher, logger, metrics)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	accountsHandler := handlers.NewAccountsHandler(accountRepo)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        healthHandler,
		Auth:          authHandler,
		Accounts:      accountsHandler,
		Authenticator: authenticator,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
