package application

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/schema"
	"github.com/wyfcoding/storefront/pkg/db/dbtest"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/mq/mqtest"
)

func newServices(t *testing.T) (*CatalogCommandService, *CatalogQueryService, *mqtest.Recorder) {
	t.Helper()
	repo := mysql.NewItemRepository(dbtest.Open(t, schema.Models()...))
	rec := &mqtest.Recorder{}
	return NewCatalogCommandService(repo, rec), NewCatalogQueryService(repo), rec
}

func register(t *testing.T, cmd *CatalogCommandService, name, price, category string, qty int) *ItemDTO {
	t.Helper()
	item, err := cmd.RegisterItem(context.Background(), RegisterItemCommand{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
		Qty:      qty,
	})
	require.NoError(t, err)
	return item
}

func TestRegisterItem(t *testing.T) {
	cmd, query, rec := newServices(t)
	ctx := context.Background()

	item := register(t, cmd, "Keyboard", "49.999", "Electronics", 10)
	assert.Equal(t, "electronics", item.Category)
	assert.Equal(t, "50", item.Price.String())

	msg := rec.WaitFor(t, domain.ItemRegisteredTopic)
	assert.Equal(t, "1", msg.Key)

	got, err := query.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", got.Name)

	_, err = cmd.RegisterItem(ctx, RegisterItemCommand{Name: "Keyboard", Price: decimal.NewFromInt(1), Category: "electronics"})
	assert.True(t, errorsx.Is(err, errorsx.KindConflict))
}

func TestRegisterItem_Validation(t *testing.T) {
	cmd, _, _ := newServices(t)
	ctx := context.Background()

	cases := map[string]RegisterItemCommand{
		"unknown category": {Name: "x", Price: decimal.NewFromInt(1), Category: "weapons"},
		"negative price":   {Name: "x", Price: decimal.NewFromInt(-1), Category: "books"},
		"negative qty":     {Name: "x", Price: decimal.NewFromInt(1), Category: "books", Qty: -1},
		"blank name":       {Name: "  ", Price: decimal.NewFromInt(1), Category: "books"},
		"huge qty":         {Name: "x", Price: decimal.NewFromInt(1), Category: "books", Qty: math.MaxInt64},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := cmd.RegisterItem(ctx, c)
			assert.True(t, errorsx.Is(err, errorsx.KindValidation), "got %v", err)
		})
	}
}

func TestAdjustStock(t *testing.T) {
	cmd, _, rec := newServices(t)
	ctx := context.Background()
	item := register(t, cmd, "Cable", "3", "electronics", 2)

	_, err := cmd.AdjustStock(ctx, AdjustStockCommand{ItemID: item.ID, Delta: 0})
	assert.ErrorIs(t, err, domain.ErrZeroQuantity)

	got, err := cmd.AdjustStock(ctx, AdjustStockCommand{ItemID: item.ID, Delta: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Qty)
	rec.WaitFor(t, domain.ItemStockChangedTopic)

	_, err = cmd.AdjustStock(ctx, AdjustStockCommand{ItemID: item.ID, Delta: -6})
	assert.True(t, errorsx.Is(err, errorsx.KindInsufficientStock))
	assert.Equal(t, "Cable is low in stock, only 5 left.", errorsx.PublicMessage(err))

	_, err = cmd.AdjustStock(ctx, AdjustStockCommand{ItemID: 999, Delta: 1})
	assert.True(t, errorsx.Is(err, errorsx.KindNotFound))
}

func TestAdjustStock_RejectsOutOfRange(t *testing.T) {
	cmd, query, _ := newServices(t)
	ctx := context.Background()
	item := register(t, cmd, "Charger", "8", "electronics", 4)

	for _, delta := range []int{math.MinInt64, math.MaxInt64, -1_000_001, 1_000_001} {
		_, err := cmd.AdjustStock(ctx, AdjustStockCommand{ItemID: item.ID, Delta: delta})
		assert.True(t, errorsx.Is(err, errorsx.KindValidation), "delta %d: %v", delta, err)
	}

	got, err := query.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Qty)
}

func TestDeleteItem(t *testing.T) {
	cmd, query, rec := newServices(t)
	ctx := context.Background()
	item := register(t, cmd, "Sofa", "300", "home", 1)

	require.NoError(t, cmd.DeleteItem(ctx, item.ID))
	rec.WaitFor(t, domain.ItemDeletedTopic)

	_, err := query.GetItem(ctx, item.ID)
	assert.True(t, errorsx.Is(err, errorsx.KindNotFound))
	assert.True(t, errorsx.Is(cmd.DeleteItem(ctx, item.ID), errorsx.KindNotFound))
}

func TestRatings(t *testing.T) {
	cmd, query, _ := newServices(t)
	ctx := context.Background()
	item := register(t, cmd, "Novel", "8", "books", 1)

	_, err := cmd.RateItem(ctx, RateItemCommand{ItemID: item.ID, Rating: 6})
	assert.True(t, errorsx.Is(err, errorsx.KindValidation))

	_, err = cmd.RateItem(ctx, RateItemCommand{ItemID: 999, Rating: 3})
	assert.True(t, errorsx.Is(err, errorsx.KindNotFound))

	rating, err := cmd.RateItem(ctx, RateItemCommand{ItemID: item.ID, Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Rating)

	ratings, err := query.ListRatings(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, item.ID, ratings[0].ItemID)

	_, err = query.ListRatings(ctx, 999)
	assert.True(t, errorsx.Is(err, errorsx.KindNotFound))
}

func TestListItems(t *testing.T) {
	cmd, query, _ := newServices(t)
	ctx := context.Background()
	register(t, cmd, "Ball", "5", "sports", 1)
	register(t, cmd, "Bat", "25", "sports", 1)
	register(t, cmd, "Soap", "2", "beauty", 1)

	page, err := query.ListItems(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.EqualValues(t, 2, page.Pagination.Pages)

	sports, err := query.ListByCategory(ctx, "SPORTS")
	require.NoError(t, err)
	assert.Len(t, sports, 2)

	_, err = query.ListByCategory(ctx, "cars")
	assert.True(t, errorsx.Is(err, errorsx.KindValidation))
}
