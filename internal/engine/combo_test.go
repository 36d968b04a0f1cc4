package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/prediction-market-poc/internal/engine"
)

func newCombo(t *testing.T, e *engine.Engine, owner string, stake uint64, legs ...engine.ComboLegInput) *engine.Combo {
	t.Helper()
	resp, err := e.Apply(context.Background(), owner, t0, engine.CreateCombo{
		Name:  "parlay",
		Legs:  legs,
		Stake: u64(stake),
	})
	require.NoError(t, err)
	return resp.(engine.ComboCreated).Combo
}

func TestCreateComboLocksOdds(t *testing.T) {
	e := newTestEngine()
	m1 := newMarket(t, e, "alice")
	m2 := newMarket(t, e, "alice")

	// dois mercados 50/50: multiplicador combinado 4x, stake 100 paga 400
	combo := newCombo(t, e, "bob", 100,
		engine.ComboLegInput{MarketID: m1, Prediction: true},
		engine.ComboLegInput{MarketID: m2, Prediction: false},
	)

	assert.Equal(t, engine.ComboStatusActive, combo.Status)
	assert.Equal(t, u64(400), combo.PotentialPayout)
	require.Len(t, combo.Legs, 2)
	assert.Equal(t, "500000000000000000", combo.Legs[0].Odds.Dec())
	assert.Equal(t, "500000000000000000", combo.Legs[1].Odds.Dec())

	// trades posteriores não reprecificam as pernas já congeladas
	buy(t, e, "carol", m1, true, 100, 1000)
	again := newCombo(t, e, "dave", 100,
		engine.ComboLegInput{MarketID: m1, Prediction: true},
		engine.ComboLegInput{MarketID: m2, Prediction: true},
	)
	assert.Equal(t, "609756097560975609", again.Legs[0].Odds.Dec())
	assert.Equal(t, "500000000000000000", combo.Legs[0].Odds.Dec())
}

func TestCreateComboLegCountBounds(t *testing.T) {
	e := newTestEngine()
	m1 := newMarket(t, e, "alice")

	_, err := e.Apply(context.Background(), "bob", t0, engine.CreateCombo{
		Name:  "single",
		Legs:  []engine.ComboLegInput{{MarketID: m1, Prediction: true}},
		Stake: u64(100),
	})
	assert.ErrorIs(t, err, engine.ErrInvalidLegCount)

	legs := make([]engine.ComboLegInput, 11)
	for i := range legs {
		legs[i] = engine.ComboLegInput{MarketID: m1, Prediction: true}
	}
	_, err = e.Apply(context.Background(), "bob", t0, engine.CreateCombo{
		Name:  "too many",
		Legs:  legs,
		Stake: u64(100),
	})
	assert.ErrorIs(t, err, engine.ErrInvalidLegCount)
}

func TestCreateComboRejectsResolvedLeg(t *testing.T) {
	e := newTestEngine()
	m1 := newMarket(t, e, "alice")
	m2 := newMarket(t, e, "alice")

	_, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: m2, Outcome: true})
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), "bob", t0, engine.CreateCombo{
		Name: "stale",
		Legs: []engine.ComboLegInput{
			{MarketID: m1, Prediction: true},
			{MarketID: m2, Prediction: true},
		},
		Stake: u64(100),
	})
	assert.ErrorIs(t, err, engine.ErrAlreadyResolved)
}

func TestCascadeWinsOnlyWhenAllLegsWin(t *testing.T) {
	e := newTestEngine()
	m1 := newMarket(t, e, "alice")
	m2 := newMarket(t, e, "alice")

	combo := newCombo(t, e, "bob", 100,
		engine.ComboLegInput{MarketID: m1, Prediction: true},
		engine.ComboLegInput{MarketID: m2, Prediction: true},
	)

	resp, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: m1, Outcome: true})
	require.NoError(t, err)
	settled := resp.(engine.MarketResolved).SettledCombos
	require.Len(t, settled, 1)
	assert.Equal(t, combo.ID, settled[0].ID)
	assert.Equal(t, engine.ComboStatusPartiallyResolved, settled[0].Status)

	resp, err = e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: m2, Outcome: true})
	require.NoError(t, err)
	settled = resp.(engine.MarketResolved).SettledCombos
	require.Len(t, settled, 1)
	assert.Equal(t, engine.ComboStatusWon, settled[0].Status)
}

func TestCascadeLostIsSticky(t *testing.T) {
	e := newTestEngine()
	m1 := newMarket(t, e, "alice")
	m2 := newMarket(t, e, "alice")

	combo := newCombo(t, e, "bob", 100,
		engine.ComboLegInput{MarketID: m1, Prediction: true},
		engine.ComboLegInput{MarketID: m2, Prediction: true},
	)

	// primeira perna perde: combo decidido na hora, sem esperar a segunda
	resp, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: m1, Outcome: false})
	require.NoError(t, err)
	settled := resp.(engine.MarketResolved).SettledCombos
	require.Len(t, settled, 1)
	assert.Equal(t, engine.ComboStatusLost, settled[0].Status)

	// a segunda resolução não reabre um combo perdido, mesmo ganhando a perna
	resp, err = e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: m2, Outcome: true})
	require.NoError(t, err)
	assert.Empty(t, resp.(engine.MarketResolved).SettledCombos)

	got, err := e.Apply(context.Background(), "bob", t0, engine.CancelCombo{ComboID: combo.ID})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, engine.ErrNotCancellable)
}

func TestCancelComboRules(t *testing.T) {
	e := newTestEngine()
	m1 := newMarket(t, e, "alice")
	m2 := newMarket(t, e, "alice")

	combo := newCombo(t, e, "bob", 100,
		engine.ComboLegInput{MarketID: m1, Prediction: true},
		engine.ComboLegInput{MarketID: m2, Prediction: true},
	)

	// só o dono cancela
	_, err := e.Apply(context.Background(), "carol", t0, engine.CancelCombo{ComboID: combo.ID})
	assert.ErrorIs(t, err, engine.ErrNotAuthorized)

	resp, err := e.Apply(context.Background(), "bob", t0, engine.CancelCombo{ComboID: combo.ID})
	require.NoError(t, err)
	cancelled := resp.(engine.ComboCancelled)
	assert.Equal(t, combo.ID, cancelled.ComboID)
	assert.Equal(t, "bob", cancelled.Owner)
	assert.Equal(t, u64(100), cancelled.Stake)

	// cancelar de novo falha
	_, err = e.Apply(context.Background(), "bob", t0, engine.CancelCombo{ComboID: combo.ID})
	assert.ErrorIs(t, err, engine.ErrNotCancellable)
}

func TestCancelComboBlockedAfterLegResolves(t *testing.T) {
	e := newTestEngine()
	m1 := newMarket(t, e, "alice")
	m2 := newMarket(t, e, "alice")

	combo := newCombo(t, e, "bob", 100,
		engine.ComboLegInput{MarketID: m1, Prediction: true},
		engine.ComboLegInput{MarketID: m2, Prediction: true},
	)

	_, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: m1, Outcome: true})
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), "bob", t0, engine.CancelCombo{ComboID: combo.ID})
	assert.ErrorIs(t, err, engine.ErrNotCancellable)
}
