// Package server 组装仓储、应用服务与 HTTP 路由
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authapp "github.com/wyfcoding/storefront/internal/auth/application"
	authredis "github.com/wyfcoding/storefront/internal/auth/infrastructure/persistence/redis"
	authhttp "github.com/wyfcoding/storefront/internal/auth/interfaces/http"
	cartapp "github.com/wyfcoding/storefront/internal/cart/application"
	cartmysql "github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/mysql"
	carthttp "github.com/wyfcoding/storefront/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/storefront/internal/catalog/interfaces/http"
	orderapp "github.com/wyfcoding/storefront/internal/order/application"
	ordermysql "github.com/wyfcoding/storefront/internal/order/infrastructure/persistence/mysql"
	orderredis "github.com/wyfcoding/storefront/internal/order/infrastructure/persistence/redis"
	orderhttp "github.com/wyfcoding/storefront/internal/order/interfaces/http"
	userapp "github.com/wyfcoding/storefront/internal/user/application"
	usermysql "github.com/wyfcoding/storefront/internal/user/infrastructure/persistence/mysql"
	userhttp "github.com/wyfcoding/storefront/internal/user/interfaces/http"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/mq"
	"github.com/wyfcoding/storefront/pkg/ratelimit"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps 路由依赖，Limiter 为 nil 时不限流
type Deps struct {
	Config     *config.Config
	DB         *db.DB
	Cache      cache.Cache
	Publisher  mq.Publisher
	Metrics    *metrics.Metrics
	Limiter    ratelimit.RateLimiter
	BcryptCost int
}

// NewRouter 创建 gin 引擎并注册全部 /v1 路由
func NewRouter(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	publisher := d.Publisher
	if publisher == nil {
		publisher = mq.NopPublisher{}
	}

	itemRepo := catalogmysql.NewItemRepository(d.DB)
	userRepo := usermysql.NewUserRepository(d.DB)
	cartRepo := cartmysql.NewCartRepository(d.DB)
	orderRepo := ordermysql.NewOrderRepository(d.DB)

	userQuery := userapp.NewUserQueryService(userRepo)
	authSvc, err := authapp.NewAuthService(authapp.Config{
		Key:            []byte(cfg.JWT.Key),
		Algorithm:      cfg.JWT.Algorithm,
		AccessTokenTTL: cfg.JWT.AccessTokenTTL,
		RevocationTTL:  cfg.JWT.RevocationTTL,
	}, userQuery, authredis.NewRevocationStore(d.Cache), publisher, d.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	authenticate := authhttp.Authenticate(authSvc)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.MetricsMiddleware(d.Metrics))
	if d.Limiter != nil {
		router.Use(middleware.RateLimitMiddleware(d.Limiter, cfg.RateLimit))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})

	v1 := router.Group("/v1")
	authhttp.NewHandler(authSvc).RegisterRoutes(v1)
	userhttp.NewHandler(
		userapp.NewUserCommandService(userRepo, authSvc, publisher, d.BcryptCost),
		userQuery,
	).RegisterRoutes(v1, authenticate)
	cataloghttp.NewHandler(
		catalogapp.NewCatalogCommandService(itemRepo, publisher),
		catalogapp.NewCatalogQueryService(itemRepo),
	).RegisterRoutes(v1)
	carthttp.NewHandler(
		cartapp.NewCartCommandService(cartRepo, itemRepo, publisher),
		cartapp.NewCartQueryService(cartRepo),
	).RegisterRoutes(v1, authenticate)
	orderhttp.NewHandler(
		orderapp.NewCheckoutService(orderRepo, publisher, d.Metrics),
		orderapp.NewOrderQueryService(orderRepo, orderredis.NewOrderCache(d.Cache)),
	).RegisterRoutes(v1, authenticate)

	return router, nil
}
