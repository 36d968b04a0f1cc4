package engine

import (
	"context"

	"github.com/holiman/uint256"
)

// claimWinnings paga ao vencedor a fração proporcional do pool inteiro
// (os dois lados somados): payout = shares * (yes+no) / total_shares_vencedor.
// O flip de Claimed antes do retorno garante no máximo um pagamento por
// posição, mesmo com chamadas repetidas.
func (e *Engine) claimWinnings(ctx context.Context, caller string, op ClaimWinnings) (Response, error) {
	market, err := e.store.GetMarket(ctx, op.MarketID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, ErrMarketNotFound
	}
	if !market.Resolved {
		return nil, ErrMarketNotResolved
	}
	if market.Outcome == nil {
		return nil, ErrOutcomeUnset
	}

	position, err := e.store.GetPosition(ctx, caller, op.MarketID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, ErrPositionNotFound
	}
	if position.Claimed {
		return nil, ErrAlreadyClaimed
	}

	winningShares := position.NoShares
	totalWinningShares := market.TotalNoShares
	if *market.Outcome {
		winningShares = position.YesShares
		totalWinningShares = market.TotalYesShares
	}
	if winningShares.IsZero() {
		return nil, ErrNoWinningShares
	}

	totalPool := new(uint256.Int).Add(market.YesPool, market.NoPool)
	payout, err := MulDiv(winningShares, totalPool, totalWinningShares)
	if err != nil {
		return nil, err
	}

	position.Claimed = true
	if err := e.store.PutPosition(ctx, position); err != nil {
		return nil, err
	}

	return WinningsClaimed{MarketID: op.MarketID, Payout: payout}, nil
}
