// Package schema 汇总各上下文的表模型，供迁移与测试使用
package schema

import (
	cartmysql "github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/mysql"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	ordermysql "github.com/wyfcoding/storefront/internal/order/infrastructure/persistence/mysql"
	usermysql "github.com/wyfcoding/storefront/internal/user/infrastructure/persistence/mysql"
)

// Models 按外键依赖顺序返回全部表模型
func Models() []any {
	var models []any
	models = append(models, usermysql.Models()...)
	models = append(models, catalogmysql.Models()...)
	models = append(models, ordermysql.Models()...)
	models = append(models, cartmysql.Models()...)
	return models
}
