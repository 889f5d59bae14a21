// Package dbtest 为仓储测试提供基于 sqlite 文件库的 *db.DB
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/pkg/db"
)

// Open 在临时目录创建开启外键约束的 sqlite 库并迁移 models；单连接，事务外的查询在事务期间会等待
func Open(t testing.TB, models ...any) *db.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "storefront.db") + "?_foreign_keys=on&_busy_timeout=5000"
	d, err := db.Init(context.Background(), db.Config{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		TxIsolation:  "READ_COMMITTED",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	if len(models) > 0 {
		require.NoError(t, d.AutoMigrate(models...))
	}
	return d
}
