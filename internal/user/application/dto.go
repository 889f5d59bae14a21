package application

import (
	"time"

	"github.com/wyfcoding/storefront/internal/user/domain"
)

// RegisterCommand 注册命令
type RegisterCommand struct {
	Username string
	Password string
}

// ResetPasswordCommand 重置密码命令
type ResetPasswordCommand struct {
	UserID      uint
	Password    string
	NewPassword string
}

// DeleteUserCommand 注销账户命令
type DeleteUserCommand struct {
	UserID   uint
	Password string
}

// UserDTO 用户信息，不含密码
type UserDTO struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *domain.User) *UserDTO {
	return &UserDTO{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
