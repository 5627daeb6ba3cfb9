// Package main - точка входа консольного приложения watson.
//
// Watson - картотека учеников: записи с контактами, посещаемостью,
// заметками и оценками по предметам, управляемые девятью командами
// интерактивной консоли.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: хранилища (memory/file/postgres), кеш, шина событий
// - Interface: консольная сессия (parser, presenter)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	// Configuration
	"github.com/alem-hub/watson/config"

	// Application layer
	"github.com/alem-hub/watson/internal/application/command"
	"github.com/alem-hub/watson/internal/application/eventhandler"
	"github.com/alem-hub/watson/internal/application/query"

	// Domain layer
	"github.com/alem-hub/watson/internal/domain/person"

	// Infrastructure layer
	"github.com/alem-hub/watson/internal/infrastructure/messaging"
	"github.com/alem-hub/watson/internal/infrastructure/persistence/jsonfile"
	"github.com/alem-hub/watson/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/watson/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/watson/internal/infrastructure/persistence/redis"

	// Interface layer
	"github.com/alem-hub/watson/internal/interface/console"

	// Packages
	"github.com/alem-hub/watson/pkg/logger"
	"github.com/alem-hub/watson/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	// Корневой контекст отменяется по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Запускаем приложение
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting watson",
		"version", cfg.App.Version,
		"env", string(cfg.App.Environment),
		"storage", string(cfg.Storage.Backend),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ВЫБОР ХРАНИЛИЩА
	// ─────────────────────────────────────────────────────────────────────────
	var personRepo person.Repository

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		log.Info("using in-memory storage")
		personRepo = memory.NewPersonRepository()

	case config.StorageFile:
		log.Info("using file storage", "path", cfg.Storage.FilePath)
		fileRepo, err := jsonfile.NewPersonRepository(cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("failed to open roster file: %w", err)
		}
		personRepo = fileRepo

	case config.StoragePostgres:
		log.Info("connecting to database...")
		var dbConn *postgres.Connection
		err := retry.DatabaseRetrier().Do(ctx, func(ctx context.Context) error {
			connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
			defer cancel()

			conn, connErr := postgres.NewConnectionFromURL(connectCtx, cfg.Database.URL)
			if connErr != nil {
				return retry.Retryable(connErr)
			}
			dbConn = conn
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			log.Info("closing database connection...")
			dbConn.Close()
		}()
		log.Info("database connection established")

		// Запуск миграций
		log.Info("running database migrations...")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		status, err := migrator.Status(ctx)
		if err != nil {
			log.Warn("failed to get migration status", "error", err)
		} else {
			appliedCount := 0
			for _, m := range status {
				if m.IsApplied {
					appliedCount++
				}
			}
			log.Info("migrations completed", "applied", appliedCount, "total", len(status))
		}

		personRepo = postgres.NewPersonRepository(dbConn)

	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. КЕШ REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Redis.Enabled {
		if cfg.Storage.Backend != config.StoragePostgres {
			log.Warn("redis cache only decorates the postgres backend, caching disabled",
				"backend", string(cfg.Storage.Backend),
			)
		} else {
			log.Info("connecting to Redis...")
			redisCfg := redis.DefaultConfig()
			redisCfg.Host = cfg.Redis.Host
			redisCfg.Port = cfg.Redis.Port
			redisCfg.Password = cfg.Redis.Password
			redisCfg.DB = cfg.Redis.DB
			redisCfg.PoolSize = cfg.Redis.PoolSize
			redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
			redisCfg.DialTimeout = cfg.Redis.DialTimeout
			redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
			redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

			var redisCache *redis.Cache
			err := retry.CacheRetrier().Do(ctx, func(ctx context.Context) error {
				cache, cacheErr := redis.NewCache(redisCfg)
				if cacheErr != nil {
					return retry.Retryable(cacheErr)
				}
				redisCache = cache
				return nil
			})
			if err != nil {
				// Мёртвый кеш не повод не работать: продолжаем без него.
				log.Warn("failed to connect to Redis, caching disabled", "error", err)
			} else {
				defer func() {
					log.Info("closing Redis connection...")
					_ = redisCache.Close()
				}()

				cacheLog := logger.New(logger.Options{
					Output: os.Stderr,
					Level:  logger.ParseLevel(cfg.Observability.LogLevel),
				})
				personRepo = redis.NewCachedRepository(
					personRepo,
					redis.NewPersonCache(redisCache),
					cacheLog,
				)
				log.Info("Redis cache enabled")
			}
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing event bus...")
	eventBusConfig := messaging.DefaultInMemoryEventBusConfig()
	eventBusConfig.Logger = log
	// Синхронная доставка: записи протокола идут в порядке команд
	eventBusConfig.AsyncMode = false
	eventBus := messaging.NewInMemoryEventBus(eventBusConfig)
	defer func() {
		log.Info("closing event bus...")
		_ = eventBus.Close()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ПРОТОКОЛ АУДИТА
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Audit.Enabled {
		auditSink := io.Writer(os.Stderr)
		sinkName := "stderr"
		if cfg.Audit.Path != "" {
			auditFile, err := os.OpenFile(cfg.Audit.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open audit file: %w", err)
			}
			defer auditFile.Close()
			auditSink = auditFile
			sinkName = cfg.Audit.Path
		}

		auditLog := logger.New(logger.Options{
			Output: auditSink,
			Level:  logger.LevelInfo,
		})
		auditHandler := eventhandler.NewAuditHandler(auditLog, eventhandler.AuditConfig{
			IncludePayload: cfg.Audit.IncludePayload,
		})
		if err := eventhandler.RegisterAuditHandlers(eventBus, auditHandler); err != nil {
			return fmt.Errorf("failed to register audit handlers: %w", err)
		}
		log.Info("audit trail enabled", "sink", sinkName)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")
	addPersonCmd := command.NewAddPersonHandler(personRepo, eventBus)
	deletePersonCmd := command.NewDeletePersonHandler(personRepo, eventBus)
	editPersonCmd := command.NewEditPersonHandler(personRepo, eventBus)
	clearRosterCmd := command.NewClearRosterHandler(personRepo, eventBus)
	sortRosterCmd := command.NewSortRosterHandler(personRepo, eventBus)

	listPersonsQuery := query.NewListPersonsHandler(personRepo)
	findPersonsQuery := query.NewFindPersonsHandler(personRepo)

	// ─────────────────────────────────────────────────────────────────────────
	// 8. СОЗДАНИЕ КОНСОЛЬНОЙ СЕССИИ
	// ─────────────────────────────────────────────────────────────────────────
	session, err := console.NewSession(console.SessionConfig{
		Input:   os.Stdin,
		Output:  os.Stdout,
		Version: cfg.App.Version,
		Backend: string(cfg.Storage.Backend),
		Logger:  log,
	}, console.SessionDependencies{
		AddPersonCmd:     addPersonCmd,
		DeletePersonCmd:  deletePersonCmd,
		EditPersonCmd:    editPersonCmd,
		ClearRosterCmd:   clearRosterCmd,
		SortRosterCmd:    sortRosterCmd,
		ListPersonsQuery: listPersonsQuery,
		FindPersonsQuery: findPersonsQuery,
		EventPublisher:   eventBus,
	})
	if err != nil {
		return fmt.Errorf("failed to create console session: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("watson is running",
		"session_id", session.ID(),
		"storage", string(cfg.Storage.Backend),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- session.Run(ctx)
	}()

	// Ожидаем конец сессии (exit, EOF) или сигнал завершения
	select {
	case <-ctx.Done():
		log.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("console session error: %w", err)
		}
	}

	// Начинаем graceful shutdown
	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	// 1. Шина событий дожидается обработчиков в полёте
	busClosed := make(chan struct{})
	go func() {
		_ = eventBus.Close()
		close(busClosed)
	}()

	select {
	case <-busClosed:
		log.Info("event bus closed")
	case <-shutdownCtx.Done():
		log.Warn("event bus close timed out")
	}

	// 2. Кеш и база данных закроются через defer

	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger настраивает структурированное логирование.
// Логи уходят в stderr: stdout принадлежит консольному выводу.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Observability.LogLevel),
	}

	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "json" {
		// JSON формат для production (лучше для агрегаторов логов)
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		// Текстовый формат для development (лучше читается)
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

// parseLogLevel переводит уровень из конфигурации в slog.Level.
func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
