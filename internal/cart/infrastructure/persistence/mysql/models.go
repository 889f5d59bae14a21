package mysql

import (
	"time"

	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	usermysql "github.com/wyfcoding/storefront/internal/user/infrastructure/persistence/mysql"
)

// CartLineModel 购物车行表映射，(user_id, item_id) 唯一
type CartLineModel struct {
	UserID    uint                    `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	ItemID    uint                    `gorm:"column:item_id;primaryKey;autoIncrement:false;index"`
	Qty       int                     `gorm:"column:qty;not null;check:chk_cart_lines_qty,qty > 0"`
	CreatedAt time.Time               `gorm:"column:created_at"`
	UpdatedAt time.Time               `gorm:"column:updated_at"`
	User      *usermysql.UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Item      *catalogmysql.ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

func (CartLineModel) TableName() string { return "cart_lines" }

// Models 本上下文拥有的表
func Models() []any {
	return []any{&CartLineModel{}}
}
