package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wyfcoding/storefront/pkg/errorsx"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLen = 64
	// bcrypt 只使用前 72 字节
	maxPasswordBytes = 72
)

var (
	ErrUserNotFound       = errorsx.NotFound("user not found")
	ErrUsernameTaken      = errorsx.Conflict("username already registered")
	ErrInvalidCredentials = errorsx.Unauthorized("Invalid sign-in credentials")
	ErrInvalidPassword    = errorsx.Unauthorized("Invalid password.")
)

// User 用户账户，密码仅保存 bcrypt 哈希
type User struct {
	ID           uint
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser 校验用户名与密码并生成哈希
func NewUser(username, password string, cost int) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errorsx.Validation("username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, errorsx.Validationf("username must be at most %d characters", maxUsernameLen)
	}
	hash, err := hashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	return &User{Username: username, PasswordHash: hash}, nil
}

// VerifyPassword 校验明文密码
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword 替换密码哈希
func (u *User) SetPassword(password string, cost int) error {
	hash, err := hashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errorsx.Validation("password is required")
	}
	if len(password) > maxPasswordBytes {
		return "", errorsx.Validationf("password must be at most %d bytes", maxPasswordBytes)
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errorsx.Store("hash password", err)
	}
	return string(hash), nil
}
