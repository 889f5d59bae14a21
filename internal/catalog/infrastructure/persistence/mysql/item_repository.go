// Package mysql 商品目录 gorm 仓储实现
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type itemRepository struct {
	db *db.DB
}

// NewItemRepository 创建商品仓储
func NewItemRepository(d *db.DB) domain.ItemRepository {
	return &itemRepository{db: d}
}

func (r *itemRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.Conn(ctx)
}

func (r *itemRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTx(ctx, fn)
}

func (r *itemRepository) Save(ctx context.Context, item *domain.Item) error {
	model := toItemModel(item)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrItemNameTaken
		}
		return err
	}
	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *itemRepository) Get(ctx context.Context, id uint) (*domain.Item, error) {
	var model ItemModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return toItem(&model), nil
}

func (r *itemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&ItemModel{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *itemRepository) List(ctx context.Context, offset, limit int) ([]*domain.Item, int64, error) {
	var (
		models []ItemModel
		total  int64
	)
	if err := r.getDB(ctx).Model(&ItemModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.getDB(ctx).Order("id").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return toItems(models), total, nil
}

func (r *itemRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Item, error) {
	var models []ItemModel
	if err := r.getDB(ctx).Where("category = ?", string(category)).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return toItems(models), nil
}

func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		tx := r.getDB(ctx)
		if err := tx.Exec("DELETE FROM cart_lines WHERE item_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("UPDATE order_lines SET item_id = NULL WHERE item_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&RatingModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&ItemModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrItemNotFound
		}
		return nil
	})
}

// AdjustStock 以条件更新保证库存不为负，失败时重新读取以区分不存在与库存不足
func (r *itemRepository) AdjustStock(ctx context.Context, id uint, delta int) (*domain.Item, error) {
	var item *domain.Item
	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		res := r.getDB(ctx).Model(&ItemModel{}).
			Where("id = ? AND qty + ? >= 0", id, delta).
			Update("qty", gorm.Expr("qty + ?", delta))
		if res.Error != nil {
			return res.Error
		}

		var model ItemModel
		if err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrItemNotFound
			}
			return err
		}
		if res.RowsAffected == 0 {
			return &domain.InsufficientStockError{ItemID: model.ID, ItemName: model.Name, Available: model.Qty}
		}
		item = toItem(&model)
		return nil
	})
	return item, err
}

func (r *itemRepository) SaveRating(ctx context.Context, rating *domain.Rating) error {
	model := &RatingModel{ItemID: rating.ItemID, Rating: rating.Value}
	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ErrItemNotFound
		}
		return err
	}
	rating.ID = model.ID
	rating.CreatedAt = model.CreatedAt
	return nil
}

func (r *itemRepository) ListRatings(ctx context.Context, itemID uint) ([]*domain.Rating, error) {
	var models []RatingModel
	if err := r.getDB(ctx).Where("item_id = ?", itemID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	ratings := make([]*domain.Rating, 0, len(models))
	for i := range models {
		ratings = append(ratings, toRating(&models[i]))
	}
	return ratings, nil
}

func toItems(models []ItemModel) []*domain.Item {
	items := make([]*domain.Item, 0, len(models))
	for i := range models {
		items = append(items, toItem(&models[i]))
	}
	return items
}
