package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/pkg/errorsx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	r := gin.New()
	r.GET("/x", h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", errorsx.Validation("qty must not be zero"), http.StatusBadRequest},
		{"empty cart", errorsx.New(errorsx.KindEmptyCart, "EMPTY_CART", "cart is empty"), http.StatusBadRequest},
		{"not found", errorsx.NotFound("item not found"), http.StatusNotFound},
		{"unauthorized", errorsx.Unauthorized("invalid token"), http.StatusUnauthorized},
		{"conflict", errorsx.Conflict("username taken"), http.StatusConflict},
		{"store", errorsx.Store("db down", errors.New("dial tcp")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serve(t, func(c *gin.Context) { Error(c, tt.err) })
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status, body.Code)
		})
	}
}

func TestError_HidesInternalCause(t *testing.T) {
	_, body := serve(t, func(c *gin.Context) {
		Error(c, errorsx.Store("db down", errors.New("password=hunter2")))
	})
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, body.Detail, "hunter2")
}

func TestSuccess(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) { Success(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, map[string]any{"id": float64(1)}, body.Data)
}
