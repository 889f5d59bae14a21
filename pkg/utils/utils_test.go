package utils

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/pkg/errorsx"
)

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), 3, time.Millisecond, 2*time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ReturnsLastError(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), 2, time.Millisecond, time.Millisecond, func() error {
		calls++
		return errors.New("down")
	})
	assert.EqualError(t, err, "down")
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, 5, time.Hour, time.Hour, func() error { return errors.New("down") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPagination(t *testing.T) {
	p := NewPagination(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = NewPagination(3, 1000)
	assert.Equal(t, MaxPageSize, p.Limit())
	assert.Equal(t, 200, p.Offset())

	p = NewPagination(1, 10)
	p.SetTotal(21)
	assert.EqualValues(t, 3, p.Pages)
}

func TestParseQty(t *testing.T) {
	qty, err := ParseQty("-3", true)
	require.NoError(t, err)
	assert.Equal(t, -3, qty)

	qty, err = ParseQty(strconv.Itoa(MaxQty), true)
	require.NoError(t, err)
	assert.Equal(t, MaxQty, qty)

	for _, raw := range []string{"-9223372036854775808", "9223372036854775807", "1000001", "-1000001", "x", ""} {
		_, err := ParseQty(raw, true)
		assert.True(t, errorsx.Is(err, errorsx.KindValidation), raw)
	}

	_, err = ParseQty("", false)
	assert.True(t, errorsx.Is(err, errorsx.KindValidation))
}
