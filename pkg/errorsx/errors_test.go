package errorsx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stockErr struct{ name string }

func (e stockErr) Error() string   { return e.name + " is low" }
func (e stockErr) Kind() Kind      { return KindInsufficientStock }
func (e stockErr) Message() string { return e.name + " is low in stock" }

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("item not found")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("create: %w", Conflict("taken"))))
	assert.Equal(t, KindInsufficientStock, KindOf(fmt.Errorf("checkout: %w", stockErr{name: "A"})))
	assert.True(t, Is(Validation("bad"), KindValidation))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store("load cart", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "STORE_FAILURE", err.Code())
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "internal server error", PublicMessage(errors.New("dsn leaked")))
	assert.Equal(t, "internal server error", PublicMessage(Store("x", errors.New("secret"))))
	assert.Equal(t, "cart is empty", PublicMessage(fmt.Errorf("wrap: %w", New(KindEmptyCart, "EMPTY_CART", "cart is empty"))))
	assert.Equal(t, "A is low in stock", PublicMessage(stockErr{name: "A"}))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", CodeOf(NotFound("x")))
	assert.Equal(t, "INTERNAL", CodeOf(errors.New("x")))
	assert.Equal(t, "insufficient_stock", CodeOf(stockErr{name: "A"}))
}
