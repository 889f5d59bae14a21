package mysql

import (
	"time"

	"github.com/wyfcoding/storefront/internal/user/domain"
)

// UserModel 用户表映射
type UserModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
	Username     string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(100);not null"`
}

func (UserModel) TableName() string { return "users" }

// Models 本上下文拥有的表
func Models() []any {
	return []any{&UserModel{}}
}

func toUserModel(u *domain.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
	}
}

func toUser(m *UserModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
	}
}
