package http

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/auth/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/response"
)

const claimsKey = "auth.claims"

var errNotAuthenticated = errorsx.New(errorsx.KindUnauthorized, "NOT_AUTHENTICATED", "Not authenticated")

// TokenValidator 令牌校验能力
type TokenValidator interface {
	Validate(ctx context.Context, raw string) (*domain.Claims, error)
}

// Authenticate 校验 Bearer 令牌并把声明写入 gin 上下文
func Authenticate(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := BearerToken(c)
		if !ok {
			response.Error(c, errNotAuthenticated)
			return
		}
		claims, err := v.Validate(c.Request.Context(), raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// BearerToken 从 Authorization 头提取令牌
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentClaims 返回 Authenticate 写入的声明
func CurrentClaims(c *gin.Context) *domain.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*domain.Claims)
	return claims
}

// CurrentUserID 返回当前用户 ID，未认证时为 0
func CurrentUserID(c *gin.Context) uint {
	if claims := CurrentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}
