package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Overland-East-Bay/trip-gateway/internal/adapters/httpapi"
	kafkatripevents "github.com/Overland-East-Bay/trip-gateway/internal/adapters/kafka/tripevents"
	memtripevents "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/tripevents"
	memtriprepo "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/triprepo"
	memusercache "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/usercache"
	memuserrepo "github.com/Overland-East-Bay/trip-gateway/internal/adapters/memory/userrepo"
	mongoadapter "github.com/Overland-East-Bay/trip-gateway/internal/adapters/mongo"
	mongotriprepo "github.com/Overland-East-Bay/trip-gateway/internal/adapters/mongo/triprepo"
	postgres "github.com/Overland-East-Bay/trip-gateway/internal/adapters/postgres"
	pguserrepo "github.com/Overland-East-Bay/trip-gateway/internal/adapters/postgres/userrepo"
	redisusercache "github.com/Overland-East-Bay/trip-gateway/internal/adapters/redis/usercache"
	"github.com/Overland-East-Bay/trip-gateway/internal/app/trips"
	"github.com/Overland-East-Bay/trip-gateway/internal/app/users"
	platformclock "github.com/Overland-East-Bay/trip-gateway/internal/platform/clock"
	"github.com/Overland-East-Bay/trip-gateway/internal/platform/config"
	"github.com/Overland-East-Bay/trip-gateway/internal/platform/logging"
	tripeventsport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/tripevents"
	triprepoport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/triprepo"
	usercacheport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/usercache"
	userrepoport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/userrepo"
)

type backends struct {
	userRepo  userrepoport.Repository
	tripRepo  triprepoport.Repository
	cache     usercacheport.Cache
	publisher tripeventsport.Publisher

	// closers run in reverse order on shutdown.
	closers []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("invalid logging config: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var b *backends
	switch cfg.StorageBackend {
	case config.BackendLive:
		b = openLive(ctx, cfg, logger)
	default:
		b = openMemory(cfg)
	}
	defer b.close()

	usersSvc := users.NewService(b.userRepo, b.cache, logger)
	tripsSvc := trips.NewService(b.tripRepo, b.publisher, platformclock.NewSystemClock(), logger)

	api := httpapi.NewHandler(httpapi.NewResolver(usersSvc, tripsSvc, logger))
	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{Logger: logger})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api listening", zap.String("addr", srv.Addr), zap.String("storage_backend", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func openMemory(cfg config.Config) *backends {
	return &backends{
		userRepo:  memuserrepo.NewRepo(),
		tripRepo:  memtriprepo.NewRepo(),
		cache:     memusercache.NewCache(),
		publisher: memtripevents.NewPublisher(cfg.Kafka.TripTopic),
	}
}

// openLive connects every backend before the listener starts. Any failure is fatal.
func openLive(ctx context.Context, cfg config.Config, logger *zap.Logger) *backends {
	b := &backends{}
	fatal := func(msg string, err error) {
		b.close()
		logger.Fatal(msg, zap.Error(err))
	}

	dsn := cfg.Postgres.DSN()
	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(dsn, logger); err != nil {
			fatal("postgres migrate", err)
		}
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		fatal("postgres connect", err)
	}
	b.closers = append(b.closers, pool.Close)
	b.userRepo = pguserrepo.NewRepo(pool)

	mc, err := mongoadapter.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		fatal("mongo connect", err)
	}
	b.closers = append(b.closers, func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mc.Disconnect(dctx); err != nil {
			logger.Warn("mongo disconnect", zap.Error(err))
		}
	})
	b.tripRepo = mongotriprepo.NewRepo(mc.Database(cfg.Mongo.Database).Collection(cfg.Mongo.TripCollection))

	rc, err := redisusercache.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		fatal("redis connect", err)
	}
	b.closers = append(b.closers, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("redis close", zap.Error(err))
		}
	})
	b.cache = redisusercache.NewCache(rc)

	producer, err := kafkatripevents.NewSyncProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
	if err != nil {
		fatal("kafka producer", err)
	}
	pub := kafkatripevents.NewPublisher(producer, cfg.Kafka.TripTopic)
	b.closers = append(b.closers, func() {
		if err := pub.Close(); err != nil {
			logger.Warn("kafka producer close", zap.Error(err))
		}
	})
	b.publisher = pub

	return b
}
