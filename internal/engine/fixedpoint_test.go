package engine_test

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/prediction-market-poc/internal/engine"
)

func u64(v uint64) *uint256.Int { return uint256.NewInt(v) }

// referência exata com math/big para comparar os caminhos do MulDiv
func bigMulDiv(a, b, c *uint256.Int) *uint256.Int {
	prod := new(big.Int).Mul(a.ToBig(), b.ToBig())
	prod.Div(prod, c.ToBig())
	out, _ := uint256.FromBig(prod)
	return out
}

func TestMulDivFastPath(t *testing.T) {
	got, err := engine.MulDiv(u64(500), u64(100), u64(400))
	require.NoError(t, err)
	assert.Equal(t, u64(125), got)
}

func TestMulDivTruncates(t *testing.T) {
	// 7*3/2 = 10.5 -> 10
	got, err := engine.MulDiv(u64(7), u64(3), u64(2))
	require.NoError(t, err)
	assert.Equal(t, u64(10), got)
}

func TestMulDivDivisionByZero(t *testing.T) {
	_, err := engine.MulDiv(u64(1), u64(1), u64(0))
	assert.ErrorIs(t, err, engine.ErrDivisionByZero)
}

// Produto a*b estoura 256 bits mas o quociente final cabe: a decomposição
// (a/c)*b + (a%c)*b/c tem que dar o resultado exato.
func TestMulDivDecomposition(t *testing.T) {
	a := new(uint256.Int).Lsh(u64(1), 200) // 2^200
	b := new(uint256.Int).Lsh(u64(3), 100) // 3*2^100
	c := new(uint256.Int).Lsh(u64(1), 60)  // 2^60

	got, err := engine.MulDiv(a, b, c)
	require.NoError(t, err)
	assert.Equal(t, bigMulDiv(a, b, c), got)
}

func TestMulDivDecompositionWithRemainder(t *testing.T) {
	a := new(uint256.Int).Lsh(u64(1), 200)
	a.Add(a, u64(12345)) // garante resto não nulo
	b := new(uint256.Int).Lsh(u64(1), 130)
	c := u64(7)

	got, err := engine.MulDiv(a, b, c)
	require.NoError(t, err)
	assert.Equal(t, bigMulDiv(a, b, c), got)
}

func TestMulDivOverflow(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	// quociente final não cabe em 256 bits
	_, err := engine.MulDiv(max, max, u64(1))
	assert.ErrorIs(t, err, engine.ErrArithmeticOverflow)
}

func TestMulDivScaleQuantities(t *testing.T) {
	// valores típicos em attos: 10^21 * 10^18 / 10^18
	a, err := uint256.FromDecimal("1000000000000000000000")
	require.NoError(t, err)
	got, err := engine.MulDiv(a, engine.Scale, engine.Scale)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}
