package engine

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// Ordens limite são aceitas e armazenadas, nunca casadas: não existe
// matching engine. Só criação e cancelamento.

func (e *Engine) placeLimitOrder(ctx context.Context, caller string, now time.Time, op PlaceLimitOrder) (Response, error) {
	market, err := e.store.GetMarket(ctx, op.MarketID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, ErrMarketNotFound
	}
	if market.Resolved {
		return nil, ErrAlreadyResolved
	}

	id, err := e.store.NextOrderID(ctx)
	if err != nil {
		return nil, err
	}

	order := &LimitOrder{
		ID:             id,
		Owner:          caller,
		MarketID:       op.MarketID,
		IsYes:          op.IsYes,
		Side:           op.Side,
		Price:          op.Price,
		OriginalAmount: op.Amount,
		FilledAmount:   new(uint256.Int),
		Duration:       op.Duration,
		CreatedAt:      now,
		Status:         OrderStatusOpen,
	}

	if err := e.store.PutOrder(ctx, order); err != nil {
		return nil, err
	}

	return OrderPlaced{Order: order}, nil
}

func (e *Engine) cancelLimitOrder(ctx context.Context, caller string, op CancelLimitOrder) (Response, error) {
	order, err := e.store.GetOrder(ctx, op.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Owner != caller {
		return nil, ErrNotAuthorized
	}
	if order.Status != OrderStatusOpen && order.Status != OrderStatusPartiallyFilled {
		return nil, ErrNotCancellable
	}

	order.Status = OrderStatusCancelled
	if err := e.store.PutOrder(ctx, order); err != nil {
		return nil, err
	}

	return OrderCancelled{OrderID: order.ID}, nil
}
