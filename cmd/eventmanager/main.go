// Package main реализует точку входа сервиса управления событиями.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpapi "eventmanager/internal/eventmanager/adapters/http"
	filestore "eventmanager/internal/eventmanager/adapters/storage/file"
	pgstore "eventmanager/internal/eventmanager/adapters/storage/postgres"
	redisstore "eventmanager/internal/eventmanager/adapters/storage/redis"
	"eventmanager/internal/eventmanager/app"
	"eventmanager/internal/eventmanager/config"
	"eventmanager/internal/eventmanager/ports/storage"
	"eventmanager/pkg/db/postgres"
	redisdb "eventmanager/pkg/db/redis"
	"eventmanager/pkg/logger"
	"eventmanager/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "EVENTS_LOGGER_MODE"
	EnvLoggerLevel = "EVENTS_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitStorage          = "failed to initialize state storage"
	ErrRestoreSession       = "failed to restore saved session"
	ErrStartHTTP            = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "event manager started"
	LogServiceShutdownDone = "event manager shutdown complete"
	LogInitStorage         = "initializing state storage"
	LogInitUseCases        = "initializing use cases"
	LogRestoringSession    = "restoring saved session"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingStorage      = "closing state storage"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))
		store, closeStore, err := newStore(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitUseCases)
		authUseCase := app.NewAuthUseCase(store)
		eventUseCase := app.NewEventUseCase(store, authUseCase)

		log.Info(ctx, LogRestoringSession)
		if err := authUseCase.RestoreSession(ctx); err != nil {
			log.Error(ctx, ErrRestoreSession, zap.Error(err))
			exitCode = 1
			return
		}

		router := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})
		httpapi.SetupRouter(router, authUseCase, eventUseCase)

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("address", cfg.HTTP.GetAddress()),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		go func() {
			log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
			if err := router.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTP, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return router.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingStorage)
				return closeStore(ctx)
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newStore собирает бэкенд хранилища по конфигурации. Возвращает хранилище
// и функцию его закрытия.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, func(context.Context) error, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		store, err := filestore.New(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("init file storage: %w", err)
		}
		return store, func(context.Context) error { return store.Close() }, nil

	case config.DriverRedis:
		client, err := redisdb.NewClient(ctx, cfg.Redis.ToClientConfig())
		if err != nil {
			return nil, nil, fmt.Errorf("init redis storage: %w", err)
		}
		store := redisstore.NewStore(client)
		return store, func(context.Context) error { return store.Close() }, nil

	case config.DriverPostgres:
		migrationsURL := "file://" + cfg.Postgres.MigrationsPath
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), migrationsURL); err != nil {
			return nil, nil, fmt.Errorf("apply state migrations: %w", err)
		}
		database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			return nil, nil, fmt.Errorf("init postgres storage: %w", err)
		}
		store := pgstore.NewStore(database.Pool())
		return store, func(ctx context.Context) error {
			database.Close(ctx)
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
}
