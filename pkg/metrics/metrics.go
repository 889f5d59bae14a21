// Package metrics 提供 Prometheus 指标集合：HTTP 请求、结算结果、令牌校验结果
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/storefront/pkg/logger"
)

const namespace = "storefront"

// Metrics 指标集合，nil 接收者上的记录方法为空操作
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 结算结果计数：success, empty_cart, insufficient_stock, invalid, conflict, error
	CheckoutsTotal *prometheus.CounterVec
	// 结算耗时
	CheckoutDuration prometheus.Histogram
	// 已成交订单金额
	OrderAmount prometheus.Histogram

	// 令牌校验结果计数：valid, invalid, revoked, error
	TokenValidationsTotal *prometheus.CounterVec
	// 令牌签发计数
	TokensIssuedTotal prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		CheckoutsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "checkouts_total",
			Help:        "Checkout attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		CheckoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "checkout_duration_seconds",
			Help:        "Checkout transaction duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}),
		OrderAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "order_amount",
			Help:        "Total amount of placed orders",
			Buckets:     []float64{10, 50, 100, 500, 1000, 5000, 10000},
			ConstLabels: constLabels,
		}),

		TokenValidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "token_validations_total",
			Help:        "Access token validations by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		TokensIssuedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "tokens_issued_total",
			Help:        "Access tokens issued",
			ConstLabels: constLabels,
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CheckoutsTotal,
		m.CheckoutDuration,
		m.OrderAmount,
		m.TokenValidationsTotal,
		m.TokensIssuedTotal,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordCheckout 记录一次结算结果，amount 仅在成功时有意义
func (m *Metrics) RecordCheckout(result string, d time.Duration, amount float64) {
	if m == nil {
		return
	}
	m.CheckoutsTotal.WithLabelValues(result).Inc()
	m.CheckoutDuration.Observe(d.Seconds())
	if result == "success" {
		m.OrderAmount.Observe(amount)
	}
}

// RecordTokenValidation 记录令牌校验结果
func (m *Metrics) RecordTokenValidation(result string) {
	if m == nil {
		return
	}
	m.TokenValidationsTotal.WithLabelValues(result).Inc()
}

// RecordTokenIssued 记录令牌签发
func (m *Metrics) RecordTokenIssued() {
	if m == nil {
		return
	}
	m.TokensIssuedTotal.Inc()
}

// NewHTTPServer 创建 Prometheus HTTP 服务器，由调用方负责启动与关闭
func NewHTTPServer(port int, path string, gatherer prometheus.Gatherer) *http.Server {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Serve 启动指标服务器，正常关闭时返回 nil
func Serve(srv *http.Server) error {
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
