package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wyfcoding/storefront/internal/auth/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/mq"
)

// Config 令牌签发配置，进程启动后不可变
type Config struct {
	Key            []byte
	Algorithm      string
	AccessTokenTTL time.Duration
	RevocationTTL  time.Duration
}

// tokenClaims 在标准声明之外携带毫秒级签发时间，用于与水位线比较
type tokenClaims struct {
	IssuedAtMs int64 `json:"iat_ms"`
	jwt.RegisteredClaims
}

// AuthService 令牌签发、校验与吊销
type AuthService struct {
	cfg       Config
	method    jwt.SigningMethod
	verifier  domain.CredentialVerifier
	store     domain.RevocationStore
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewAuthService 创建认证服务，仅支持 HS256/HS384/HS512
func NewAuthService(
	cfg Config,
	verifier domain.CredentialVerifier,
	store domain.RevocationStore,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) (*AuthService, error) {
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if len(cfg.Key) == 0 {
		return nil, errors.New("jwt key is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, errors.New("access token ttl must be positive")
	}
	if cfg.RevocationTTL < cfg.AccessTokenTTL {
		return nil, errors.New("revocation ttl must cover the access token ttl")
	}
	return &AuthService{
		cfg:       cfg,
		method:    method,
		verifier:  verifier,
		store:     store,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}, nil
}

func signingMethod(alg string) (jwt.SigningMethod, error) {
	switch strings.ToUpper(alg) {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm %q", alg)
	}
}

// Issue 为用户签发访问令牌
func (s *AuthService) Issue(ctx context.Context, userID uint) (*domain.AccessToken, error) {
	iat := s.now()
	exp := iat.Add(s.cfg.AccessTokenTTL)
	claims := tokenClaims{
		IssuedAtMs: iat.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.cfg.Key)
	if err != nil {
		return nil, errorsx.Store("sign access token", err)
	}
	s.metrics.RecordTokenIssued()
	logger.Debug(ctx, "access token issued", "user_id", userID, "token_id", claims.ID)

	return &domain.AccessToken{Type: domain.TokenType, Value: signed, ExpiresAt: exp}, nil
}

// Validate 校验签名与有效期，再在一次 Redis 往返中检查吊销标记与用户水位线；存储故障时拒绝
func (s *AuthService) Validate(ctx context.Context, raw string) (*domain.Claims, error) {
	claims, err := s.parse(raw)
	if err != nil {
		s.metrics.RecordTokenValidation("invalid")
		return nil, err
	}

	state, err := s.store.Lookup(ctx, claims.TokenID, claims.UserID)
	if err != nil {
		s.metrics.RecordTokenValidation("error")
		return nil, errorsx.Store("check token revocation", err)
	}
	if state.Revoked || (state.Watermark > 0 && claims.IssuedBefore(state.Watermark)) {
		s.metrics.RecordTokenValidation("revoked")
		return nil, domain.ErrTokenRevoked
	}

	s.metrics.RecordTokenValidation("valid")
	return claims, nil
}

func (s *AuthService) parse(raw string) (*domain.Claims, error) {
	var tc tokenClaims
	_, err := jwt.ParseWithClaims(raw, &tc, func(*jwt.Token) (any, error) {
		return s.cfg.Key, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseUint(tc.Subject, 10, 64)
	if err != nil || userID == 0 || tc.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	issuedAt := time.UnixMilli(tc.IssuedAtMs)
	if tc.IssuedAtMs == 0 {
		if tc.IssuedAt == nil {
			return nil, domain.ErrInvalidToken
		}
		issuedAt = tc.IssuedAt.Time
	}
	return &domain.Claims{
		UserID:    uint(userID),
		TokenID:   tc.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}

// Invalidate 吊销单个令牌
func (s *AuthService) Invalidate(ctx context.Context, tokenID string) error {
	if err := s.store.Revoke(ctx, tokenID, s.cfg.RevocationTTL); err != nil {
		return errorsx.Store("revoke token", err)
	}
	return nil
}

// RaiseWatermark 使用户在此之前签发的全部令牌失效
func (s *AuthService) RaiseWatermark(ctx context.Context, userID uint) error {
	if err := s.store.SetWatermark(ctx, userID, s.now().UnixMilli(), s.cfg.RevocationTTL); err != nil {
		return errorsx.Store("raise token watermark", err)
	}
	logger.Info(ctx, "access tokens invalidated", "user_id", userID)
	return nil
}

// SignIn 校验凭据后签发令牌
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*domain.AccessToken, error) {
	userID, err := s.verifier.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, err := s.Issue(ctx, userID)
	if err != nil {
		return nil, err
	}

	mq.PublishAsync(ctx, s.publisher, domain.UserSignedInTopic, strconv.FormatUint(uint64(userID), 10), domain.UserSignedInEvent{
		UserID:    userID,
		Timestamp: s.now(),
	})
	return token, nil
}

// SignOut 校验并吊销当前令牌
func (s *AuthService) SignOut(ctx context.Context, raw string) error {
	claims, err := s.Validate(ctx, raw)
	if err != nil {
		return err
	}
	if err := s.Invalidate(ctx, claims.TokenID); err != nil {
		return err
	}

	mq.PublishAsync(ctx, s.publisher, domain.UserSignedOutTopic, strconv.FormatUint(uint64(claims.UserID), 10), domain.UserSignedOutEvent{
		UserID:    claims.UserID,
		TokenID:   claims.TokenID,
		Timestamp: s.now(),
	})
	return nil
}
