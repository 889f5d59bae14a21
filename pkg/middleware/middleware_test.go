package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ ratelimit.Limit) (*ratelimit.Result, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return nil, s.err
	}
	return &ratelimit.Result{Allowed: s.allowed}, nil
}

func do(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestID_PropagatesToContext(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = logger.RequestIDFromContext(c.Request.Context())
	})

	rec := do(r, http.MethodGet, "/x", http.Header{RequestIDHeader: {"abc"}})
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))

	rec = do(r, http.MethodGet, "/x", nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRecovery_Returns500(t *testing.T) {
	r := gin.New()
	r.Use(GinRecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := do(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(GinCORSMiddleware())
	r.OPTIONS("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := do(r, http.MethodOptions, "/x", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, QPS: 1, Burst: 1}

	t.Run("rejects", func(t *testing.T) {
		lim := &stubLimiter{allowed: false}
		r := gin.New()
		r.Use(RateLimitMiddleware(lim, cfg))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := do(r, http.MethodGet, "/x", nil)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Len(t, lim.keys, 1)
		assert.Contains(t, lim.keys[0], "rate:")
	})

	t.Run("fails open", func(t *testing.T) {
		r := gin.New()
		r.Use(RateLimitMiddleware(&stubLimiter{err: errors.New("redis down")}, cfg))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
	})

	t.Run("disabled", func(t *testing.T) {
		lim := &stubLimiter{allowed: false}
		r := gin.New()
		r.Use(RateLimitMiddleware(lim, config.RateLimitConfig{Enabled: false}))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
		assert.Empty(t, lim.keys)
	})
}

func TestMetricsMiddleware_RecordsRoute(t *testing.T) {
	m := metrics.New("test")
	require.NoError(t, m.Register(prometheus.NewRegistry()))

	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	do(r, http.MethodGet, "/items/7", nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "200")))
}
