package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAndGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("test")
	require.NoError(t, m.Register(reg))

	m.RecordCheckout("success", 20*time.Millisecond, 25)
	m.RecordCheckout("insufficient_stock", 5*time.Millisecond, 0)
	m.RecordTokenValidation("revoked")
	m.RecordTokenIssued()
	m.RecordHTTPRequest("GET", "/v1/items", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckoutsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckoutsTotal.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenValidationsTotal.WithLabelValues("revoked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokensIssuedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/v1/items", "200")))
}

func TestMetrics_RegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("test")
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCheckout("success", time.Millisecond, 1)
		m.RecordTokenValidation("valid")
		m.RecordTokenIssued()
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	})
}

func TestNewHTTPServer_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("test")
	require.NoError(t, m.Register(reg))
	m.RecordTokenIssued()

	srv := NewHTTPServer(0, "", reg)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_tokens_issued_total")
}
