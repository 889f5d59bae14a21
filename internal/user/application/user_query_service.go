package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/user/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
)

// UserQueryService 用户查询服务
type UserQueryService struct {
	repo domain.UserRepository
}

// NewUserQueryService 创建用户查询服务
func NewUserQueryService(repo domain.UserRepository) *UserQueryService {
	return &UserQueryService{repo: repo}
}

// GetUser 获取用户信息
func (s *UserQueryService) GetUser(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, "get user")
	}
	return toUserDTO(user), nil
}

// VerifyCredentials 校验用户名密码，返回用户 ID；用户不存在与密码错误不作区分
func (s *UserQueryService) VerifyCredentials(ctx context.Context, username, password string) (uint, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errorsx.Is(err, errorsx.KindNotFound) {
			return 0, domain.ErrInvalidCredentials
		}
		return 0, storeErr(err, "verify credentials")
	}
	if !user.VerifyPassword(password) {
		return 0, domain.ErrInvalidCredentials
	}
	return user.ID, nil
}
