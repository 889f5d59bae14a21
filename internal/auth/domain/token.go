package domain

import (
	"context"
	"time"

	"github.com/wyfcoding/storefront/pkg/errorsx"
)

// TokenType 令牌类型
const TokenType = "bearer"

var (
	ErrInvalidToken = errorsx.New(errorsx.KindUnauthorized, "INVALID_TOKEN", "Invalid access token.")
	ErrTokenRevoked = errorsx.New(errorsx.KindUnauthorized, "TOKEN_REVOKED", "Invalid access token.")
)

// AccessToken 签发给客户端的令牌
type AccessToken struct {
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims 校验通过的令牌声明
type Claims struct {
	UserID    uint
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedBefore 签发时间是否早于给定的毫秒时间戳
func (c *Claims) IssuedBefore(unixMilli int64) bool {
	return c.IssuedAt.UnixMilli() < unixMilli
}

// RevocationState 吊销存储中与某令牌相关的状态
type RevocationState struct {
	Revoked bool
	// Watermark 用户令牌最早签发时间（毫秒），0 表示未设置
	Watermark int64
}

// RevocationStore 令牌吊销存储
type RevocationStore interface {
	// Lookup 一次往返读取令牌吊销标记与用户水位线
	Lookup(ctx context.Context, tokenID string, userID uint) (*RevocationState, error)
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	SetWatermark(ctx context.Context, userID uint, unixMilli int64, ttl time.Duration) error
}

// CredentialVerifier 校验用户名密码并返回用户 ID
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (uint, error)
}
