package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/wyfcoding/storefront/internal/auth/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator map[string]*domain.Claims

func (s stubValidator) Validate(_ context.Context, raw string) (*domain.Claims, error) {
	if c, ok := s[raw]; ok {
		return c, nil
	}
	return nil, domain.ErrInvalidToken
}

func TestAuthenticate(t *testing.T) {
	r := gin.New()
	r.GET("/me", Authenticate(stubValidator{"good": {UserID: 11, TokenID: "t"}}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"lower-case scheme", "bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":11}`, rec.Body.String())
			}
		})
	}
}

func TestCurrentUserID_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Zero(t, CurrentUserID(c))
	assert.Nil(t, CurrentClaims(c))
}
