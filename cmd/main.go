package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SergeyBogomolovv/order-ledger/internal/app"
	"github.com/SergeyBogomolovv/order-ledger/internal/audit"
	"github.com/SergeyBogomolovv/order-ledger/internal/commission"
	"github.com/SergeyBogomolovv/order-ledger/internal/config"
	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
	"github.com/SergeyBogomolovv/order-ledger/internal/handler"
	"github.com/SergeyBogomolovv/order-ledger/internal/postgres"
	"github.com/SergeyBogomolovv/order-ledger/internal/repo"
	"github.com/SergeyBogomolovv/order-ledger/internal/service"
	"github.com/SergeyBogomolovv/order-ledger/internal/tracing"
	"github.com/SergeyBogomolovv/order-ledger/pkg/cache"
	"github.com/SergeyBogomolovv/order-ledger/pkg/lock"
	"github.com/SergeyBogomolovv/order-ledger/pkg/trm"
	"github.com/SergeyBogomolovv/order-ledger/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// store is everything the services need from a storage backend.
type store interface {
	service.OrderRepo
	service.EarningRepo
	service.EarningsReader
	audit.Checker
}

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, conf.Tracing, conf.Env)
	panicIfErr("failed to setup tracing", err)

	var closers []app.Closer

	var (
		ledger    store
		txManager trm.Manager
	)
	switch conf.Storage.Backend {
	case "postgres":
		db, err := postgres.New(ctx, logger, conf.Postgres)
		panicIfErr("failed to connect to db", err)
		closers = append(closers, db)
		logger.Info("postgres connected")

		if conf.Postgres.Migrate {
			panicIfErr("failed to migrate db", postgres.Migrate(ctx, db))
			logger.Info("migrations applied")
		}

		pgRepo := repo.NewPostgresRepo(db)
		ledger = pgRepo
		txManager = trm.NewManager(db,
			trm.WithIsolation(sql.LevelReadCommitted),
			trm.WithErrorMapper(repo.MapError),
		)
		if conf.Storage.SeedFile != "" {
			seedStore(ctx, logger, conf.Storage.SeedFile, pgRepo)
		}
	default:
		memory := repo.NewMemoryStore()
		if conf.Storage.SeedFile != "" {
			seedStore(ctx, logger, conf.Storage.SeedFile, memory)
		}
		ledger = memory
		txManager = trm.NewNoopManager()
	}

	var locker service.Locker
	switch conf.Lock.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		panicIfErr("failed to connect to redis", client.Ping(ctx).Err())
		closers = append(closers, client)
		locker = lock.NewRedis(client, lock.RedisOptions{
			Prefix: "order-ledger:",
			Expiry: conf.Redis.LockExpiry,
			Tries:  conf.Redis.LockTries,
		})
	default:
		locker = lock.NewLocal()
	}

	policy, err := commission.NewPolicy(conf.Commission.Rate)
	panicIfErr("invalid commission rate", err)

	orderCache := cache.NewLRUCache[entities.Order](conf.Cache.Capacity, conf.Cache.TTL)

	orderService := service.NewOrderService(
		logger, txManager, ledger, ledger, orderCache, locker, policy,
		service.WithRetry(utils.RetryConfig{
			MaxAttempts:  conf.Retry.MaxAttempts,
			InitialDelay: conf.Retry.InitialDelay,
			MaxDelay:     conf.Retry.MaxDelay,
		}),
	)
	earningsService := service.NewEarningsService(logger, ledger)

	handler.RegisterMetrics()

	publisher := handler.NewNoopPublisher()
	var consumers []app.Consumer
	if conf.Kafka.Enabled {
		kafkaPublisher := handler.NewKafkaPublisher(logger, conf.Kafka)
		closers = append(closers, kafkaPublisher)
		publisher = kafkaPublisher
		consumers = append(consumers, handler.NewKafkaHandler(logger, conf.Kafka, orderService, publisher))
	}

	httpHandler := handler.NewHTTPHandler(logger, orderService, earningsService, publisher)

	starters := []app.Starter{orderCache, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity}}
	if conf.Audit.Enabled {
		starters = append(starters, audit.New(logger, ledger, conf.Audit.Schedule))
	}

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(consumers...)
	app.SetStarters(starters...)
	app.SetClosers(closers...)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
	panicIfErr("failed to shutdown tracing", shutdownTracing(context.Background()))
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func seedStore(ctx context.Context, logger *slog.Logger, path string, dst repo.OrderCreator) {
	n, err := repo.LoadSeedFile(ctx, path, dst)
	panicIfErr("failed to load seed file", err)
	logger.Info("orders seeded", slog.Int("orders", n), slog.String("file", path))
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
