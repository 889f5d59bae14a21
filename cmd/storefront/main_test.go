package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/pkg/db"
)

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "storefront.db") + "?_foreign_keys=on"
	cfgPath := filepath.Join(dir, "config.toml")
	body := `
service_name = "storefront"

[database]
driver = "sqlite"
dsn = "` + dsn + `"

[logger]
level = "error"

[jwt]
key = "migrate-test"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--config", cfgPath})
	require.NoError(t, root.Execute())

	d, err := db.Init(context.Background(), db.Config{Driver: "sqlite", DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	for _, table := range []string{"users", "items", "item_ratings", "cart_lines", "orders", "order_lines", "shipping_details", "payment_details"} {
		assert.True(t, d.Migrator().HasTable(table), table)
	}
}

func TestMigrateCommand_BadConfig(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, root.Execute())
}
