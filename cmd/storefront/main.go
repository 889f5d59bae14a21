// Storefront 主程序
// 功能：商品目录、用户与会话、购物车、结算与订单查询
// 架构：基于 DDD + Gin + GORM + Redis + Kafka
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/wyfcoding/storefront/internal/schema"
	"github.com/wyfcoding/storefront/internal/server"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/mq"
	"github.com/wyfcoding/storefront/pkg/ratelimit"
	"github.com/wyfcoding/storefront/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/storefront/config.toml", "config file path")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and metrics servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info(ctx, "Starting Storefront",
				"service", cfg.ServiceName,
				"version", cfg.Version,
				"environment", cfg.Environment,
			)
			if err := run(ctx, cfg); err != nil {
				logger.Error(ctx, "Storefront exited with error", "error", err)
				return err
			}
			logger.Info(context.Background(), "Storefront stopped")
			return nil
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the relational schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(configPath)
			if err != nil {
				return err
			}
			database, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.AutoMigrate(schema.Models()...); err != nil {
				return fmt.Errorf("failed to migrate schema: %w", err)
			}
			logger.Info(cmd.Context(), "Schema migrated", "driver", cfg.Database.Driver)
			return nil
		},
	}

	root.AddCommand(serve, migrate)
	root.RunE = serve.RunE
	return root
}

// setup 加载配置并初始化日志
func setup(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return nil, err
	}
	return cfg, nil
}

// openDB 启动阶段等待数据库就绪
func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	var database *db.DB
	err := utils.RetryWithBackoff(ctx, 5, time.Second, 10*time.Second, func() error {
		var err error
		database, err = db.Init(ctx, db.Config{
			Driver:             cfg.Database.Driver,
			DSN:                cfg.Database.DSN,
			MaxOpenConns:       cfg.Database.MaxOpenConns,
			MaxIdleConns:       cfg.Database.MaxIdleConns,
			ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
			LogEnabled:         cfg.Database.LogEnabled,
			SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
			TxIsolation:        cfg.Database.TxIsolation,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	// 1. 初始化数据库
	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(schema.Models()...); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	// 2. 初始化 Redis
	redisCache, err := cache.New(ctx, cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}, cache.BreakerConfig{
		Enabled:          cfg.CircuitBreaker.Enabled,
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Interval:         cfg.CircuitBreaker.Interval,
		Timeout:          cfg.CircuitBreaker.Timeout,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redisCache.Close()

	// 吊销记录与订单缓存只在进程生命周期内有效
	if cfg.Redis.FlushOnLifecycle {
		if err := redisCache.Flush(ctx); err != nil {
			return fmt.Errorf("failed to flush redis: %w", err)
		}
		defer func() {
			if err := redisCache.Flush(context.Background()); err != nil {
				logger.Error(context.Background(), "Failed to flush redis on shutdown", "error", err)
			}
		}()
	}

	// 3. 初始化消息发布
	var publisher mq.Publisher = mq.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			TopicPrefix:  cfg.Kafka.TopicPrefix,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		defer producer.Close()
		publisher = producer
	}

	// 4. 初始化指标
	m := metrics.New(cfg.ServiceName)
	registry := prometheus.NewRegistry()
	if err := m.Register(registry); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// 5. 组装路由
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := server.NewRouter(server.Deps{
		Config:     cfg,
		DB:         database,
		Cache:      redisCache,
		Publisher:  publisher,
		Metrics:    m,
		Limiter:    ratelimit.NewRedisRateLimiter(redisCache.GetClient()),
		BcryptCost: bcrypt.DefaultCost,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	// 6. 启动服务并等待退出信号
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "Starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
		g.Go(func() error { return metrics.Serve(metricsServer) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info(context.Background(), "Shutting down Storefront")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "HTTP server shutdown error", "error", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "Metrics server shutdown error", "error", err)
			}
		}
		return nil
	})

	return g.Wait()
}
