package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/prediction-market-poc/internal/engine"
	"github.com/radieske/prediction-market-poc/internal/store/memstore"
)

var (
	t0      = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	endTime = t0.Add(24 * time.Hour)
)

func newTestEngine() *engine.Engine {
	return engine.New(memstore.New(), zap.NewNop())
}

// newMarket cria um mercado padrão com liquidez 1000 (pools 500/500) e
// devolve o id atribuído.
func newMarket(t *testing.T, e *engine.Engine, creator string) uint64 {
	t.Helper()
	resp, err := e.Apply(context.Background(), creator, t0, engine.CreateMarket{
		Question:         "Will it happen?",
		Categories:       []string{"test"},
		EndTime:          endTime,
		InitialLiquidity: u64(1000),
	})
	require.NoError(t, err)
	return resp.(engine.MarketCreated).Market.ID
}

func buy(t *testing.T, e *engine.Engine, user string, marketID uint64, isYes bool, shares, maxCost uint64) engine.SharesPurchased {
	t.Helper()
	resp, err := e.Apply(context.Background(), user, t0, engine.BuyShares{
		MarketID: marketID,
		IsYes:    isYes,
		Shares:   u64(shares),
		MaxCost:  u64(maxCost),
	})
	require.NoError(t, err)
	return resp.(engine.SharesPurchased)
}

func TestCreateMarketSeedsPools(t *testing.T) {
	e := newTestEngine()
	resp, err := e.Apply(context.Background(), "alice", t0, engine.CreateMarket{
		Question:         "Q",
		EndTime:          endTime,
		InitialLiquidity: u64(1000),
	})
	require.NoError(t, err)

	m := resp.(engine.MarketCreated).Market
	assert.Equal(t, "alice", m.Creator)
	assert.Equal(t, u64(500), m.YesPool)
	assert.Equal(t, u64(500), m.NoPool)
	assert.Equal(t, u64(500), m.TotalYesShares)
	assert.Equal(t, u64(500), m.TotalNoShares)
	assert.True(t, m.Volume.IsZero())
	assert.False(t, m.Resolved)
}

func TestBuySharesMovesPoolsAndVolume(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")

	got := buy(t, e, "bob", id, true, 100, 1000)

	assert.Equal(t, u64(125), got.Cost)
	assert.Equal(t, u64(400), got.Market.YesPool)
	assert.Equal(t, u64(625), got.Market.NoPool)
	assert.Equal(t, u64(600), got.Market.TotalYesShares)
	assert.Equal(t, u64(500), got.Market.TotalNoShares)
	assert.Equal(t, u64(125), got.Market.Volume)
}

func TestBuySharesRespectsMaxCost(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")

	_, err := e.Apply(context.Background(), "bob", t0, engine.BuyShares{
		MarketID: id,
		IsYes:    true,
		Shares:   u64(100),
		MaxCost:  u64(124), // custo real é 125
	})
	assert.ErrorIs(t, err, engine.ErrCostExceedsLimit)
}

func TestBuySharesAfterEndTime(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")

	_, err := e.Apply(context.Background(), "bob", endTime.Add(time.Second), engine.BuyShares{
		MarketID: id,
		IsYes:    true,
		Shares:   u64(10),
		MaxCost:  u64(1000),
	})
	assert.ErrorIs(t, err, engine.ErrMarketEnded)
}

func TestSellSharesAllowedAfterEndTime(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")
	buy(t, e, "bob", id, true, 100, 1000)

	// vender depois do prazo é permitido até a resolução
	resp, err := e.Apply(context.Background(), "bob", endTime.Add(time.Hour), engine.SellShares{
		MarketID:    id,
		IsYes:       true,
		Shares:      u64(100),
		MinProceeds: u64(0),
	})
	require.NoError(t, err)

	sold := resp.(engine.SharesSold)
	assert.Equal(t, u64(125), sold.Proceeds)
	assert.Equal(t, u64(500), sold.Market.YesPool)
	assert.Equal(t, u64(500), sold.Market.NoPool)
	assert.Equal(t, u64(500), sold.Market.TotalYesShares)
	// volume acumula nos dois sentidos
	assert.Equal(t, u64(250), sold.Market.Volume)
}

func TestSellMoreThanHeld(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")
	buy(t, e, "bob", id, true, 100, 1000)

	_, err := e.Apply(context.Background(), "bob", t0, engine.SellShares{
		MarketID:    id,
		IsYes:       true,
		Shares:      u64(101),
		MinProceeds: u64(0),
	})
	assert.ErrorIs(t, err, engine.ErrInsufficientShares)

	// lado errado da posição também não tem saldo
	_, err = e.Apply(context.Background(), "bob", t0, engine.SellShares{
		MarketID:    id,
		IsYes:       false,
		Shares:      u64(1),
		MinProceeds: u64(0),
	})
	assert.ErrorIs(t, err, engine.ErrInsufficientShares)
}

func TestSellWithoutPosition(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")

	_, err := e.Apply(context.Background(), "carol", t0, engine.SellShares{
		MarketID:    id,
		IsYes:       true,
		Shares:      u64(1),
		MinProceeds: u64(0),
	})
	assert.ErrorIs(t, err, engine.ErrPositionNotFound)
}

func TestSellSlippageGuard(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")
	buy(t, e, "bob", id, true, 100, 1000)

	_, err := e.Apply(context.Background(), "bob", t0, engine.SellShares{
		MarketID:    id,
		IsYes:       true,
		Shares:      u64(100),
		MinProceeds: u64(126), // retorno real é 125
	})
	assert.ErrorIs(t, err, engine.ErrProceedsBelowMinimum)
}

func TestResolveOnlyByCreator(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")

	_, err := e.Apply(context.Background(), "bob", t0, engine.ResolveMarket{MarketID: id, Outcome: true})
	assert.ErrorIs(t, err, engine.ErrNotAuthorized)

	resp, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: id, Outcome: true})
	require.NoError(t, err)
	m := resp.(engine.MarketResolved).Market
	assert.True(t, m.Resolved)
	require.NotNil(t, m.Outcome)
	assert.True(t, *m.Outcome)

	// segunda resolução é rejeitada
	_, err = e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: id, Outcome: false})
	assert.ErrorIs(t, err, engine.ErrAlreadyResolved)
}

func TestTradingFrozenAfterResolution(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")
	buy(t, e, "bob", id, true, 100, 1000)

	_, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: id, Outcome: true})
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), "bob", t0, engine.BuyShares{
		MarketID: id, IsYes: true, Shares: u64(10), MaxCost: u64(1000),
	})
	assert.ErrorIs(t, err, engine.ErrAlreadyResolved)

	_, err = e.Apply(context.Background(), "bob", t0, engine.SellShares{
		MarketID: id, IsYes: true, Shares: u64(10), MinProceeds: u64(0),
	})
	assert.ErrorIs(t, err, engine.ErrAlreadyResolved)
}

func TestClaimWinnings(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")
	buy(t, e, "bob", id, true, 100, 1000)

	_, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: id, Outcome: true})
	require.NoError(t, err)

	// pool total 400+625=1025; bob tem 100 das 600 YES shares:
	// 100*1025/600 = 170 (truncado)
	resp, err := e.Apply(context.Background(), "bob", t0, engine.ClaimWinnings{MarketID: id})
	require.NoError(t, err)
	assert.Equal(t, u64(170), resp.(engine.WinningsClaimed).Payout)

	// segundo claim da mesma posição é rejeitado
	_, err = e.Apply(context.Background(), "bob", t0, engine.ClaimWinnings{MarketID: id})
	assert.ErrorIs(t, err, engine.ErrAlreadyClaimed)
}

func TestClaimRequiresResolution(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")
	buy(t, e, "bob", id, true, 100, 1000)

	_, err := e.Apply(context.Background(), "bob", t0, engine.ClaimWinnings{MarketID: id})
	assert.ErrorIs(t, err, engine.ErrMarketNotResolved)
}

func TestClaimLosingSide(t *testing.T) {
	e := newTestEngine()
	id := newMarket(t, e, "alice")
	buy(t, e, "bob", id, true, 100, 1000)

	_, err := e.Apply(context.Background(), "alice", t0, engine.ResolveMarket{MarketID: id, Outcome: false})
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), "bob", t0, engine.ClaimWinnings{MarketID: id})
	assert.ErrorIs(t, err, engine.ErrNoWinningShares)
}

func TestUnauthenticatedCaller(t *testing.T) {
	e := newTestEngine()
	_, err := e.Apply(context.Background(), "", t0, engine.CreateMarket{
		Question:         "Q",
		EndTime:          endTime,
		InitialLiquidity: u64(1000),
	})
	assert.ErrorIs(t, err, engine.ErrUnauthenticated)
}

func TestMarketNotFound(t *testing.T) {
	e := newTestEngine()
	_, err := e.Apply(context.Background(), "bob", t0, engine.BuyShares{
		MarketID: 999, IsYes: true, Shares: u64(1), MaxCost: u64(1),
	})
	assert.ErrorIs(t, err, engine.ErrMarketNotFound)
}

func TestBuyWithAttoScaleAmounts(t *testing.T) {
	e := newTestEngine()

	liquidity, err := uint256.FromDecimal("1000000000000000000000") // 1000 tokens em attos
	require.NoError(t, err)
	resp, err := e.Apply(context.Background(), "alice", t0, engine.CreateMarket{
		Question:         "Q",
		EndTime:          endTime,
		InitialLiquidity: liquidity,
	})
	require.NoError(t, err)
	id := resp.(engine.MarketCreated).Market.ID

	shares, _ := uint256.FromDecimal("100000000000000000000") // 100 tokens
	maxCost, _ := uint256.FromDecimal("500000000000000000000")
	bresp, err := e.Apply(context.Background(), "bob", t0, engine.BuyShares{
		MarketID: id, IsYes: true, Shares: shares, MaxCost: maxCost,
	})
	require.NoError(t, err)

	// mesma razão do caso pequeno: custo = 125 tokens
	assert.Equal(t, "125000000000000000000", bresp.(engine.SharesPurchased).Cost.Dec())
}
