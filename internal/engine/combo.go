package engine

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

const (
	minComboLegs = 2
	maxComboLegs = 10
)

// createCombo congela as odds de cada perna no momento da criação e combina
// o multiplicador: combined = combined * SCALE / odds_perna, começando em
// SCALE. As odds nunca são reprecificadas depois ("locked-in odds").
func (e *Engine) createCombo(ctx context.Context, caller string, now time.Time, op CreateCombo) (Response, error) {
	if len(op.Legs) < minComboLegs || len(op.Legs) > maxComboLegs {
		return nil, ErrInvalidLegCount
	}

	legs := make([]ComboLeg, 0, len(op.Legs))
	combined := new(uint256.Int).Set(Scale)

	for _, leg := range op.Legs {
		market, err := e.store.GetMarket(ctx, leg.MarketID)
		if err != nil {
			return nil, err
		}
		if market == nil {
			return nil, ErrMarketNotFound
		}
		if market.Resolved {
			return nil, ErrAlreadyResolved
		}

		odds, err := ImpliedProbability(market.YesPool, market.NoPool, leg.Prediction)
		if err != nil {
			return nil, err
		}
		if odds.IsZero() {
			return nil, ErrZeroLiquidity
		}

		combined, err = MulDiv(combined, Scale, odds)
		if err != nil {
			return nil, err
		}

		legs = append(legs, ComboLeg{
			MarketID:   leg.MarketID,
			Prediction: leg.Prediction,
			Odds:       odds,
		})
	}

	payout, err := MulDiv(op.Stake, combined, Scale)
	if err != nil {
		return nil, err
	}

	id, err := e.store.NextComboID(ctx)
	if err != nil {
		return nil, err
	}

	combo := &Combo{
		ID:              id,
		Owner:           caller,
		Name:            op.Name,
		Legs:            legs,
		Stake:           op.Stake,
		PotentialPayout: payout,
		CreatedAt:       now,
		Status:          ComboStatusActive,
	}

	if err := e.store.PutCombo(ctx, combo); err != nil {
		return nil, err
	}

	return ComboCreated{Combo: combo}, nil
}

// cancelCombo só é permitido enquanto nenhuma perna resolveu: depois que
// qualquer mercado constituinte liquida, o combo fica preso até a cascata.
func (e *Engine) cancelCombo(ctx context.Context, caller string, op CancelCombo) (Response, error) {
	combo, err := e.store.GetCombo(ctx, op.ComboID)
	if err != nil {
		return nil, err
	}
	if combo == nil {
		return nil, ErrComboNotFound
	}
	if combo.Owner != caller {
		return nil, ErrNotAuthorized
	}
	if combo.Status != ComboStatusActive {
		return nil, ErrNotCancellable
	}
	for _, leg := range combo.Legs {
		if leg.Resolved {
			return nil, ErrPartialResolutionPreventsCancel
		}
	}

	combo.Status = ComboStatusCancelled
	if err := e.store.PutCombo(ctx, combo); err != nil {
		return nil, err
	}

	return ComboCancelled{ComboID: combo.ID, Owner: combo.Owner, Stake: combo.Stake}, nil
}

// cascadeResolution varre todos os combos ainda em aberto e marca as pernas
// que referenciam o mercado resolvido. Lost é pegajoso: uma perna perdida
// decide o combo na hora, independente das demais.
func (e *Engine) cascadeResolution(ctx context.Context, marketID uint64, outcome bool) ([]*Combo, error) {
	combos, err := e.store.ListCombos(ctx)
	if err != nil {
		return nil, err
	}

	var settled []*Combo
	for _, combo := range combos {
		if combo.Status != ComboStatusActive && combo.Status != ComboStatusPartiallyResolved {
			continue
		}

		updated := false
		allResolved := true
		anyLost := false

		for i := range combo.Legs {
			leg := &combo.Legs[i]
			if leg.MarketID == marketID && !leg.Resolved {
				won := leg.Prediction == outcome
				leg.Resolved = true
				leg.Won = &won
				updated = true
			}
			if !leg.Resolved {
				allResolved = false
			} else if leg.Won != nil && !*leg.Won {
				anyLost = true
			}
		}

		if !updated {
			continue
		}

		switch {
		case anyLost:
			combo.Status = ComboStatusLost
		case allResolved:
			combo.Status = ComboStatusWon
		default:
			combo.Status = ComboStatusPartiallyResolved
		}

		if err := e.store.PutCombo(ctx, combo); err != nil {
			return nil, err
		}
		settled = append(settled, combo)

		e.log.Debug("combo updated by resolution",
			zap.Uint64("comboId", combo.ID),
			zap.Uint64("marketId", marketID),
			zap.String("status", string(combo.Status)),
		)
	}

	return settled, nil
}
