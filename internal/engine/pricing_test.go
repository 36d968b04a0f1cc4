package engine_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/prediction-market-poc/internal/engine"
)

func TestCostToBuy(t *testing.T) {
	// pools 500/500, compra 100: 500*100/(500-100) = 125
	cost, err := engine.CostToBuy(u64(500), u64(500), u64(100))
	require.NoError(t, err)
	assert.Equal(t, u64(125), cost)
}

func TestCostToBuyCannotDrainPool(t *testing.T) {
	_, err := engine.CostToBuy(u64(500), u64(500), u64(500))
	assert.ErrorIs(t, err, engine.ErrInsufficientLiquidity)

	_, err = engine.CostToBuy(u64(500), u64(500), u64(600))
	assert.ErrorIs(t, err, engine.ErrInsufficientLiquidity)

	// uma share a menos que o pool ainda é negociável (caro, mas válido)
	_, err = engine.CostToBuy(u64(500), u64(500), u64(499))
	assert.NoError(t, err)
}

func TestProceedsFromSell(t *testing.T) {
	// estado pós-compra do caso acima: yes=400, no=625; vender 100 de volta
	// devolve exatamente o custo pago: 625*100/(400+100) = 125
	proceeds, err := engine.ProceedsFromSell(u64(400), u64(625), u64(100))
	require.NoError(t, err)
	assert.Equal(t, u64(125), proceeds)
}

func TestSellRoundTripNeverProfits(t *testing.T) {
	for _, shares := range []uint64{1, 10, 250, 999} {
		yes, no := u64(1000), u64(1000)

		cost, err := engine.CostToBuy(no, yes, u64(shares))
		require.NoError(t, err)

		newYes := new(uint256.Int).Sub(yes, u64(shares))
		newNo := new(uint256.Int).Add(no, cost)

		// vender de volta logo em seguida nunca rende mais que o custo
		proceeds, err := engine.ProceedsFromSell(newYes, newNo, u64(shares))
		require.NoError(t, err)
		assert.LessOrEqual(t, proceeds.Cmp(cost), 0, "shares=%d", shares)
	}
}

func TestImpliedProbability(t *testing.T) {
	// pools iguais: 50% dos dois lados
	p, err := engine.ImpliedProbability(u64(500), u64(500), true)
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", p.Dec())

	// yes=400, no=625: preço do YES é proporcional ao pool NO
	p, err = engine.ImpliedProbability(u64(400), u64(625), true)
	require.NoError(t, err)
	assert.Equal(t, "609756097560975609", p.Dec()) // 625/1025

	q, err := engine.ImpliedProbability(u64(400), u64(625), false)
	require.NoError(t, err)
	assert.Equal(t, "390243902439024390", q.Dec()) // 400/1025
}

func TestImpliedProbabilityZeroLiquidity(t *testing.T) {
	_, err := engine.ImpliedProbability(u64(0), u64(0), true)
	assert.ErrorIs(t, err, engine.ErrZeroLiquidity)
}
