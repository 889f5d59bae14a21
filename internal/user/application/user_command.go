package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/storefront/internal/user/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/mq"
)

// UserCommandService 用户命令服务
type UserCommandService struct {
	repo       domain.UserRepository
	revoker    domain.TokenRevoker
	publisher  domain.EventPublisher
	bcryptCost int
}

// NewUserCommandService 创建用户命令服务，bcryptCost 为 0 时使用默认强度
func NewUserCommandService(repo domain.UserRepository, revoker domain.TokenRevoker, publisher domain.EventPublisher, bcryptCost int) *UserCommandService {
	return &UserCommandService{
		repo:       repo,
		revoker:    revoker,
		publisher:  publisher,
		bcryptCost: bcryptCost,
	}
}

// Register 注册用户，用户名唯一
func (s *UserCommandService) Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error) {
	user, err := domain.NewUser(cmd.Username, cmd.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		taken, err := s.repo.ExistsByUsername(txCtx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrUsernameTaken
		}
		return s.repo.Save(txCtx, user)
	})
	if err != nil {
		return nil, storeErr(err, "register user")
	}

	logger.Info(ctx, "user registered", "user_id", user.ID)
	mq.PublishAsync(ctx, s.publisher, domain.UserRegisteredTopic, key(user.ID), domain.UserRegisteredEvent{
		UserID:    user.ID,
		Username:  user.Username,
		Timestamp: time.Now(),
	})
	return toUserDTO(user), nil
}

// ResetPassword 校验旧密码后设置新密码，并使此前签发的令牌全部失效
func (s *UserCommandService) ResetPassword(ctx context.Context, cmd ResetPasswordCommand) error {
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.Get(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if !user.VerifyPassword(cmd.Password) {
			return domain.ErrInvalidPassword
		}
		if err := user.SetPassword(cmd.NewPassword, s.bcryptCost); err != nil {
			return err
		}
		if err := s.repo.UpdatePassword(txCtx, user.ID, user.PasswordHash); err != nil {
			return err
		}
		return s.revoker.RaiseWatermark(txCtx, user.ID)
	})
	if err != nil {
		return storeErr(err, "reset password")
	}

	logger.Info(ctx, "password reset", "user_id", cmd.UserID)
	mq.PublishAsync(ctx, s.publisher, domain.UserPasswordResetTopic, key(cmd.UserID), domain.UserPasswordResetEvent{
		UserID:    cmd.UserID,
		Timestamp: time.Now(),
	})
	return nil
}

// DeleteUser 校验密码后注销账户，并使此前签发的令牌全部失效
func (s *UserCommandService) DeleteUser(ctx context.Context, cmd DeleteUserCommand) error {
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.Get(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if !user.VerifyPassword(cmd.Password) {
			return domain.ErrInvalidPassword
		}
		if err := s.repo.Delete(txCtx, user.ID); err != nil {
			return err
		}
		return s.revoker.RaiseWatermark(txCtx, user.ID)
	})
	if err != nil {
		return storeErr(err, "delete user")
	}

	logger.Info(ctx, "user deleted", "user_id", cmd.UserID)
	mq.PublishAsync(ctx, s.publisher, domain.UserDeletedTopic, key(cmd.UserID), domain.UserDeletedEvent{
		UserID:    cmd.UserID,
		Timestamp: time.Now(),
	})
	return nil
}

func storeErr(err error, op string) error {
	if errorsx.KindOf(err) != errorsx.KindUnknown {
		return err
	}
	return errorsx.Store(op, err)
}

func key(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
