package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/jobtrail/jobtrail/config"
	"github.com/jobtrail/jobtrail/internal/bootstrap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting jobtrail API",
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"auth_mode", cfg.Auth.Mode,
		"dev", cfg.IsDev)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	authSvc, err := bootstrap.BuildAuthService(ctx, bootstrap.AuthConfig{
		Auth:        cfg.Auth,
		Cache:       cfg.Cache,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	services := bootstrap.BuildServices(bootstrap.BuildServicesConfig{
		DB:     db,
		Auth:   authSvc,
		Logger: logger,
	})

	return serve(ctx, serveConfig{cfg: cfg, services: services, logger: logger})
}

type serveConfig struct {
	cfg      config.AppConfig
	services bootstrap.ServiceContainer
	logger   *slog.Logger
}

func serve(ctx context.Context, sc serveConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := bootstrap.StartHTTPServer(bootstrap.HTTPServerConfig{
		HTTP:     sc.cfg.HTTP,
		Services: sc.services,
		Logger:   sc.logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		sc.logger.Info("shutting down HTTP server")
		if err := bootstrap.ShutdownHTTPServer(context.Background(), server, shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	sc.logger.Info("shutdown complete")
	return nil
}

//nolint:ireturn // redis.UniversalClient keeps single-node and cluster deployments interchangeable.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	dbCfg := bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	}

	db, err := bootstrap.ConnectDB(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	if migrateErr := bootstrap.MigrateDB(ctx, db, dbCfg); migrateErr != nil {
		if cerr := db.Close(); cerr != nil {
			migrateErr = errors.Join(migrateErr, fmt.Errorf("close database: %w", cerr))
		}
		return nil, nil, migrateErr
	}

	redisClient, err := bootstrap.ConnectRedis(dbCfg)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return db, redisClient, nil
}
