package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Save(ctx context.Context, user *User) error
	Get(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	// Delete 删除用户及其购物车与订单
	Delete(ctx context.Context, id uint) error
}

// TokenRevoker 使某用户此前签发的全部令牌失效
type TokenRevoker interface {
	RaiseWatermark(ctx context.Context, userID uint) error
}
