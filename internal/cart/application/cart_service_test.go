package application

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/mysql"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/schema"
	"github.com/wyfcoding/storefront/pkg/db/dbtest"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/mq/mqtest"
)

type fixture struct {
	cmd    *CartCommandService
	query  *CartQueryService
	items  catalogdomain.ItemRepository
	events *mqtest.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	d := dbtest.Open(t, schema.Models()...)
	require.NoError(t, d.Exec("INSERT INTO users (username, password_hash, created_at, updated_at) VALUES ('u', 'x', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)").Error)

	repo := mysql.NewCartRepository(d)
	f := &fixture{items: catalogmysql.NewItemRepository(d), events: &mqtest.Recorder{}}
	f.cmd = NewCartCommandService(repo, f.items, f.events)
	f.query = NewCartQueryService(repo)
	return f
}

func (f *fixture) addItem(t *testing.T, name, price string) uint {
	t.Helper()
	item, err := catalogdomain.NewItem(name, decimal.RequireFromString(price), catalogdomain.CategoryToys, 10)
	require.NoError(t, err)
	require.NoError(t, f.items.Save(context.Background(), item))
	return item.ID
}

func TestUpdateQty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.addItem(t, "Kite", "4.25")

	line, err := f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: id, Qty: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, line.Qty)
	f.events.WaitFor(t, domain.CartUpdatedTopic)

	line, err = f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: id, Qty: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, line.Qty)

	line, err = f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: id, Qty: -5})
	require.NoError(t, err)
	assert.Zero(t, line.Qty)

	_, err = f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: id, Qty: -1})
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestUpdateQty_ChecksItemBeforeQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: 99, Qty: 0})
	assert.True(t, errorsx.Is(err, errorsx.KindNotFound))

	id := f.addItem(t, "Ball", "1")
	_, err = f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: id, Qty: 0})
	assert.ErrorIs(t, err, domain.ErrZeroQuantity)
}

func TestUpdateQty_RejectsOutOfRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.addItem(t, "Drum", "3")

	_, err := f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: id, Qty: 3})
	require.NoError(t, err)

	for _, qty := range []int{math.MinInt64, math.MaxInt64, -1_000_001, 1_000_001} {
		_, err = f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: id, Qty: qty})
		assert.True(t, errorsx.Is(err, errorsx.KindValidation), "qty %d: %v", qty, err)
	}

	cart, err := f.query.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Qty)

	line, err := f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: id, Qty: 1_000_000})
	require.NoError(t, err)
	assert.Equal(t, 1_000_003, line.Qty)
}

func TestUpdateQty_IgnoresStock(t *testing.T) {
	f := newFixture(t)
	id := f.addItem(t, "Yo-yo", "2")

	line, err := f.cmd.UpdateQty(context.Background(), UpdateCartCommand{UserID: 1, ItemID: id, Qty: 50})
	require.NoError(t, err)
	assert.Equal(t, 50, line.Qty)
}

func TestGetCartAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.addItem(t, "Puzzle", "10")
	b := f.addItem(t, "Robot", "2.50")

	_, err := f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: a, Qty: 1})
	require.NoError(t, err)
	_, err = f.cmd.UpdateQty(ctx, UpdateCartCommand{UserID: 1, ItemID: b, Qty: 2})
	require.NoError(t, err)

	cart, err := f.query.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "Puzzle", cart.Items[0].Name)
	assert.True(t, decimal.NewFromInt(15).Equal(cart.Total))

	require.NoError(t, f.cmd.ClearCart(ctx, 1))
	f.events.WaitFor(t, domain.CartClearedTopic)

	cart, err = f.query.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}
