// Package mysql 用户 gorm 仓储实现
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/user/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
)

type userRepository struct {
	db *db.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(d *db.DB) domain.UserRepository {
	return &userRepository{db: d}
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.Conn(ctx)
}

func (r *userRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTx(ctx, fn)
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	model := toUserModel(user)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uint) (*domain.User, error) {
	var model UserModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUser(&model), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model UserModel
	if err := r.getDB(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUser(&model), nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&UserModel{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.getDB(ctx).Model(&UserModel{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type orderRefs struct {
	ShippingDetailID *uint
	PaymentDetailID  *uint
}

// Delete 依次删除购物车、订单明细、订单及其收货与支付信息，最后删除用户
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		tx := r.getDB(ctx)
		if err := tx.Exec("DELETE FROM cart_lines WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM order_lines WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)", id).Error; err != nil {
			return err
		}

		var refs []orderRefs
		if err := tx.Table("orders").Select("shipping_detail_id, payment_detail_id").Where("user_id = ?", id).Scan(&refs).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM orders WHERE user_id = ?", id).Error; err != nil {
			return err
		}

		var shippingIDs, paymentIDs []uint
		for _, ref := range refs {
			if ref.ShippingDetailID != nil {
				shippingIDs = append(shippingIDs, *ref.ShippingDetailID)
			}
			if ref.PaymentDetailID != nil {
				paymentIDs = append(paymentIDs, *ref.PaymentDetailID)
			}
		}
		if len(shippingIDs) > 0 {
			if err := tx.Exec("DELETE FROM shipping_details WHERE id IN ?", shippingIDs).Error; err != nil {
				return err
			}
		}
		if len(paymentIDs) > 0 {
			if err := tx.Exec("DELETE FROM payment_details WHERE id IN ?", paymentIDs).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&UserModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}
