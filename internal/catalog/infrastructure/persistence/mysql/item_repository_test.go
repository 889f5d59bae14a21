package mysql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/schema"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/db/dbtest"
	"github.com/wyfcoding/storefront/pkg/errorsx"
)

func newRepo(t *testing.T) (domain.ItemRepository, *db.DB) {
	t.Helper()
	d := dbtest.Open(t, schema.Models()...)
	return mysql.NewItemRepository(d), d
}

func saveItem(t *testing.T, repo domain.ItemRepository, name, price string, qty int) *domain.Item {
	t.Helper()
	item, err := domain.NewItem(name, decimal.RequireFromString(price), domain.CategoryBooks, qty)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func TestItemRepository_SaveAndGet(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	item := saveItem(t, repo, "Go in Action", "12.50", 3)
	assert.NotZero(t, item.ID)

	got, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go in Action", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, domain.CategoryBooks, got.Category)
	assert.Equal(t, 3, got.Qty)

	_, err = repo.Get(ctx, item.ID+100)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemRepository_UniqueName(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	saveItem(t, repo, "Lamp", "9.99", 1)

	taken, err := repo.ExistsByName(ctx, "Lamp")
	require.NoError(t, err)
	assert.True(t, taken)

	dup, err := domain.NewItem("Lamp", decimal.NewFromInt(5), domain.CategoryHome, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, dup), domain.ErrItemNameTaken)
}

func TestItemRepository_ListAndCategory(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		saveItem(t, repo, name, "1", 1)
	}
	toy, err := domain.NewItem("yoyo", decimal.NewFromInt(2), domain.CategoryToys, 4)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, toy))

	items, total, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Name)
	assert.Equal(t, "c", items[1].Name)

	toys, err := repo.ListByCategory(ctx, domain.CategoryToys)
	require.NoError(t, err)
	require.Len(t, toys, 1)
	assert.Equal(t, "yoyo", toys[0].Name)
}

func TestItemRepository_AdjustStock(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	item := saveItem(t, repo, "Pen", "1.20", 2)

	got, err := repo.AdjustStock(ctx, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Qty)

	got, err = repo.AdjustStock(ctx, item.ID, -7)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Qty)

	_, err = repo.AdjustStock(ctx, item.ID, -1)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, "Pen is low in stock, only 0 left.", stockErr.Error())
	assert.True(t, errorsx.Is(err, errorsx.KindInsufficientStock))

	current, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Qty)

	_, err = repo.AdjustStock(ctx, item.ID+100, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemRepository_Ratings(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	item := saveItem(t, repo, "Mug", "4", 1)

	for _, v := range []int{5, 3} {
		r, err := domain.NewRating(item.ID, v)
		require.NoError(t, err)
		require.NoError(t, repo.SaveRating(ctx, r))
		assert.NotZero(t, r.ID)
	}

	ratings, err := repo.ListRatings(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, 5, ratings[0].Value)
	assert.Equal(t, 3, ratings[1].Value)

	orphan, err := domain.NewRating(item.ID+100, 4)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.SaveRating(ctx, orphan), domain.ErrItemNotFound)
}

func TestItemRepository_DeleteDetachesDependents(t *testing.T) {
	repo, d := newRepo(t)
	ctx := context.Background()
	item := saveItem(t, repo, "Chair", "30", 5)

	require.NoError(t, d.Exec("INSERT INTO users (username, password_hash, created_at, updated_at) VALUES ('ann', 'x', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)").Error)
	require.NoError(t, d.Exec("INSERT INTO cart_lines (user_id, item_id, qty, created_at, updated_at) VALUES (1, ?, 2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)", item.ID).Error)
	require.NoError(t, d.Exec("INSERT INTO orders (user_id, total, created_at) VALUES (1, 60, CURRENT_TIMESTAMP)").Error)
	require.NoError(t, d.Exec("INSERT INTO order_lines (order_id, item_id, item_name, unit_price, category, qty) VALUES (1, ?, 'Chair', 30, 'home', 2)", item.ID).Error)
	r, err := domain.NewRating(item.ID, 4)
	require.NoError(t, err)
	require.NoError(t, repo.SaveRating(ctx, r))

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err = repo.Get(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	var cartLines int64
	require.NoError(t, d.Table("cart_lines").Count(&cartLines).Error)
	assert.Zero(t, cartLines)

	var orderLines []struct {
		ItemID   *uint
		ItemName string
	}
	require.NoError(t, d.Table("order_lines").Select("item_id, item_name").Scan(&orderLines).Error)
	require.Len(t, orderLines, 1)
	assert.Nil(t, orderLines[0].ItemID)
	assert.Equal(t, "Chair", orderLines[0].ItemName)

	assert.ErrorIs(t, repo.Delete(ctx, item.ID), domain.ErrItemNotFound)
}

func TestItemRepository_WithTxRollsBack(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := domain.NewItem("Ghost", decimal.NewFromInt(1), domain.CategoryOther, 1)
		require.NoError(t, err)
		require.NoError(t, repo.Save(txCtx, item))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	taken, err := repo.ExistsByName(ctx, "Ghost")
	require.NoError(t, err)
	assert.False(t, taken)
}
