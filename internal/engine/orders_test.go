package engine_test

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/prediction-market-poc/internal/engine"
)

func TestPlaceLimitOrder(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")

	resp, err := e.Apply(context.Background(), "bob", t0, engine.PlaceLimitOrder{
		MarketID: id,
		IsYes:    true,
		Side:     engine.OrderSideBuy,
		Price:    u64(600000000000000000), // 0.6
		Amount:   u64(50),
		Duration: engine.OrderGoodTillCancelled,
	})
	require.NoError(t, err)

	order := resp.(engine.OrderPlaced).Order
	assert.Equal(t, "bob", order.Owner)
	assert.Equal(t, engine.OrderStatusOpen, order.Status)
	assert.Equal(t, u64(50), order.OriginalAmount)
	assert.True(t, order.FilledAmount.IsZero())
}

func TestPlaceLimitOrderOnResolvedMarket(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")
	_, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: id, Outcome: true})
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), "bob", t0, engine.PlaceLimitOrder{
		MarketID: id,
		IsYes:    true,
		Side:     engine.OrderSideBuy,
		Price:    u64(1),
		Amount:   u64(1),
		Duration: engine.OrderImmediateOrCancel,
	})
	assert.ErrorIs(t, err, engine.ErrAlreadyResolved)
}

func TestCancelLimitOrder(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")

	resp, err := e.Apply(context.Background(), "bob", t0, engine.PlaceLimitOrder{
		MarketID: id,
		IsYes:    false,
		Side:     engine.OrderSideSell,
		Price:    new(uint256.Int).Set(u64(1)),
		Amount:   u64(10),
		Duration: engine.OrderGoodTillCancelled,
	})
	require.NoError(t, err)
	orderID := resp.(engine.OrderPlaced).Order.ID

	// só o dono cancela
	_, err = e.Apply(context.Background(), "carol", t0, engine.CancelLimitOrder{OrderID: orderID})
	assert.ErrorIs(t, err, engine.ErrNotAuthorized)

	got, err := e.Apply(context.Background(), "bob", t0, engine.CancelLimitOrder{OrderID: orderID})
	require.NoError(t, err)
	assert.Equal(t, orderID, got.(engine.OrderCancelled).OrderID)

	// cancelamento é terminal
	_, err = e.Apply(context.Background(), "bob", t0, engine.CancelLimitOrder{OrderID: orderID})
	assert.ErrorIs(t, err, engine.ErrNotCancellable)
}

func TestCancelUnknownOrder(t *testing.T) {
	e := newTestEngine()
	_, err := e.Apply(context.Background(), "bob", t0, engine.CancelLimitOrder{OrderID: 42})
	assert.ErrorIs(t, err, engine.ErrOrderNotFound)
}
