package main

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/controllers/http"
	"storefront/internal/infra/genai"
	mmysql "storefront/internal/infra/mysql"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/metrics"
	"storefront/internal/notify"
	"storefront/internal/repository"
	"storefront/internal/repository/memory"
	mysqlrepo "storefront/internal/repository/mysql"
	redisrepo "storefront/internal/repository/redis"
	"storefront/internal/services"
	"storefront/internal/store"
)

const (
	descriptionCacheTTL = 24 * time.Hour
	shutdownTimeout     = 10 * time.Second
	limiterCleanup      = 10 * time.Minute
)

func main() {
	cfg := config.LoadConfig()
	log := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.StorageBackend == config.BackendRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DB:           cfg.RedisDB,
			PoolSize:     20,
			MinIdleConns: 2,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer rdb.Close()
	}

	kv, err := openKeyValue(cfg, rdb, log)
	if err != nil {
		log.WithError(err).Fatal("storage: connect")
	}

	var publisher rabbitmq.PublisherInterface = rabbitmq.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, log)
		if err != nil {
			log.WithError(err).Fatal("failed to init publisher")
		}
		defer p.Close()
		publisher = p
	}

	notices := notify.NewChannel(log)
	notices.Subscribe(func(n notify.Notice) {
		log.WithField("kind", n.Kind).Info(n.Message)
	})

	opts := []store.Option{store.WithLogger(log), store.WithPublisher(publisher)}
	if cfg.SeedCatalog {
		opts = append(opts, store.WithProducts(store.SeedProducts()))
	}
	s := store.New(ctx,
		repository.NewOrderRepository(kv),
		repository.NewWishlistRepository(kv),
		notices,
		opts...,
	)

	var gen genai.TextGenerator = genai.NewClient(cfg.GenAIBaseURL, cfg.GenAIModel, cfg.GenAIKey, cfg.GenAITimeout, log)
	if rdb != nil {
		gen = genai.NewCachedGenerator(gen, rdb, descriptionCacheTTL, log)
	}

	verifier, err := auth.NewStaticVerifier(cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		log.WithError(err).Fatal("admin verifier")
	}

	limiter := http.NewRateLimiter(cfg.GenAIRatePerSec, cfg.GenAIBurst, log)
	handler := http.NewHandler(s,
		services.NewCheckoutService(s, cfg.CheckoutDelay, log),
		gen,
		verifier,
		notices,
		limiter,
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())
	handler.RegisterRoutes(r)

	g, gctx := errgroup.WithContext(ctx)

	// Open notice streams and pending checkouts end when shutdown starts.
	srv := &stdhttp.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"storage": cfg.StorageBackend,
		}).Info("starting storefront")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return limiter.Run(gctx, limiterCleanup)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server run")
	}
}

func openKeyValue(cfg *config.Config, rdb *redis.Client, log *logrus.Logger) (repository.KeyValue, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		return redisrepo.NewKV(rdb, cfg.RedisPrefix), nil
	case config.BackendMySQL:
		db, err := mmysql.Open(cfg.MySQL)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(time.Minute)
		return mysqlrepo.NewKV(db), nil
	case config.BackendMemory:
		return memory.NewKV(), nil
	default:
		log.WithField("backend", cfg.StorageBackend).Warn("unknown storage backend, using memory")
		return memory.NewKV(), nil
	}
}
