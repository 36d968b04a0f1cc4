package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/prediction-market-poc/internal/engine"
	"github.com/radieske/prediction-market-poc/internal/store/memstore"
)

func testMarket(id uint64) *engine.Market {
	return &engine.Market{
		ID:             id,
		Creator:        "alice",
		Question:       "Q",
		EndTime:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		YesPool:        uint256.NewInt(500),
		NoPool:         uint256.NewInt(500),
		TotalYesShares: uint256.NewInt(500),
		TotalNoShares:  uint256.NewInt(500),
		Volume:         new(uint256.Int),
	}
}

func TestGetsReturnNilOnMissing(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	m, err := s.GetMarket(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, m)

	p, err := s.GetPosition(ctx, "alice", 9)
	require.NoError(t, err)
	assert.Nil(t, p)

	c, err := s.GetCombo(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, c)
}

// Puts e gets copiam a entidade: mutar o ponteiro do chamador depois
// não pode vazar para dentro do store, nem o contrário.
func TestCloneIsolation(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	original := testMarket(1)
	require.NoError(t, s.PutMarket(ctx, original))
	original.YesPool.SetUint64(1)

	stored, err := s.GetMarket(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(500), stored.YesPool)

	stored.NoPool.SetUint64(7)
	again, err := s.GetMarket(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(500), again.NoPool)
}

func TestIDsAreSequential(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	a, err := s.NextMarketID(ctx)
	require.NoError(t, err)
	b, err := s.NextMarketID(ctx)
	require.NoError(t, err)
	assert.Equal(t, a+1, b)

	// contadores são independentes entre entidades
	c, err := s.NextComboID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), c)
}

func TestListCombosSortedByID(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	for _, id := range []uint64{3, 1, 2} {
		require.NoError(t, s.PutCombo(ctx, &engine.Combo{
			ID:              id,
			Owner:           "bob",
			Stake:           uint256.NewInt(10),
			PotentialPayout: uint256.NewInt(40),
			Status:          engine.ComboStatusActive,
		}))
	}

	combos, err := s.ListCombos(ctx)
	require.NoError(t, err)
	require.Len(t, combos, 3)
	for i, c := range combos {
		assert.Equal(t, uint64(i+1), c.ID)
	}
}
