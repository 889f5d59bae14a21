package mysql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/schema"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/db/dbtest"
)

func seed(t *testing.T, d *db.DB) {
	t.Helper()
	stmts := []string{
		"INSERT INTO users (username, password_hash, created_at, updated_at) VALUES ('alice', 'x', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		"INSERT INTO items (name, price, category, qty, created_at, updated_at) VALUES ('Lamp', 5, 'home', 10, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		"INSERT INTO items (name, price, category, qty, created_at, updated_at) VALUES ('Book', 7.5, 'books', 10, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
	}
	for _, stmt := range stmts {
		require.NoError(t, d.Exec(stmt).Error, stmt)
	}
}

func TestCartRepository_AddAccumulates(t *testing.T) {
	d := dbtest.Open(t, schema.Models()...)
	seed(t, d)
	repo := mysql.NewCartRepository(d)
	ctx := context.Background()

	qty, err := repo.AddQty(ctx, 1, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, qty)

	qty, err = repo.AddQty(ctx, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)

	var rows int64
	require.NoError(t, d.Table("cart_lines").Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestCartRepository_Decrease(t *testing.T) {
	d := dbtest.Open(t, schema.Models()...)
	seed(t, d)
	repo := mysql.NewCartRepository(d)
	ctx := context.Background()

	_, err := repo.AddQty(ctx, 1, 1, 4)
	require.NoError(t, err)

	qty, err := repo.DecreaseQty(ctx, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, qty)

	qty, err = repo.DecreaseQty(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, qty)

	items, err := repo.ListItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = repo.DecreaseQty(ctx, 1, 1, 1)
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestCartRepository_ListAndClear(t *testing.T) {
	d := dbtest.Open(t, schema.Models()...)
	seed(t, d)
	repo := mysql.NewCartRepository(d)
	ctx := context.Background()

	_, err := repo.AddQty(ctx, 1, 2, 2)
	require.NoError(t, err)
	_, err = repo.AddQty(ctx, 1, 1, 1)
	require.NoError(t, err)

	items, err := repo.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 1, items[0].ItemID)
	assert.Equal(t, "Lamp", items[0].Name)
	assert.Equal(t, "books", items[1].Category)
	assert.Equal(t, "20", (&domain.Cart{Items: items}).Total().String())

	n, err := repo.Clear(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.Clear(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}
