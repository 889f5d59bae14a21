// Package mysql 购物车 gorm 仓储实现
package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *db.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(d *db.DB) domain.CartRepository {
	return &cartRepository{db: d}
}

func (r *cartRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.Conn(ctx)
}

func (r *cartRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTx(ctx, fn)
}

// AddQty 以 upsert 累加数量，并发的首次加入不会产生重复行
func (r *cartRepository) AddQty(ctx context.Context, userID, itemID uint, qty int) (int, error) {
	var total int
	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		line := &CartLineModel{UserID: userID, ItemID: itemID, Qty: qty}
		err := r.getDB(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]any{"qty": gorm.Expr("cart_lines.qty + ?", qty)}),
		}).Create(line).Error
		if err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return catalogdomain.ErrItemNotFound
			}
			return err
		}

		var current CartLineModel
		if err := r.getDB(ctx).Where("user_id = ? AND item_id = ?", userID, itemID).First(&current).Error; err != nil {
			return err
		}
		total = current.Qty
		return nil
	})
	return total, err
}

func (r *cartRepository) DecreaseQty(ctx context.Context, userID, itemID uint, qty int) (int, error) {
	var remaining int
	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		var line CartLineModel
		err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND item_id = ?", userID, itemID).
			First(&line).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLineNotFound
			}
			return err
		}

		where := r.getDB(ctx).Where("user_id = ? AND item_id = ?", userID, itemID)
		if line.Qty <= qty {
			return where.Delete(&CartLineModel{}).Error
		}
		remaining = line.Qty - qty
		return where.Model(&CartLineModel{}).Update("qty", remaining).Error
	})
	return remaining, err
}

func (r *cartRepository) Clear(ctx context.Context, userID uint) (int64, error) {
	res := r.getDB(ctx).Where("user_id = ?", userID).Delete(&CartLineModel{})
	return res.RowsAffected, res.Error
}

type cartRow struct {
	ItemID   uint
	Name     string
	Price    decimal.Decimal
	Category string
	Qty      int
}

func (r *cartRepository) ListItems(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var rows []cartRow
	err := r.getDB(ctx).Table("cart_lines").
		Select("items.id AS item_id, items.name, items.price, items.category, cart_lines.qty").
		Joins("JOIN items ON items.id = cart_lines.item_id").
		Where("cart_lines.user_id = ?", userID).
		Order("items.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.CartItem{
			ItemID:   row.ItemID,
			Name:     row.Name,
			Price:    row.Price,
			Category: row.Category,
			Qty:      row.Qty,
		})
	}
	return items, nil
}
