package engine

import "github.com/holiman/uint256"

// CostToBuy calcula o custo de comprar `shares` contra o pool constant-product:
// cost = poolIn * shares / (poolOut - shares). É a inversa exata da invariante
// poolIn*poolOut = (poolIn+cost)*(poolOut-shares).
//
// shares precisa ser menor que poolOut: nenhum trade pode drenar o pool oposto.
func CostToBuy(poolIn, poolOut, shares *uint256.Int) (*uint256.Int, error) {
	if shares.Cmp(poolOut) >= 0 {
		return nil, ErrInsufficientLiquidity
	}
	denominator := new(uint256.Int).Sub(poolOut, shares)
	return MulDiv(poolIn, shares, denominator)
}

// ProceedsFromSell calcula o retorno de vender `shares` de volta ao pool:
// proceeds = poolOut * shares / (poolIn + shares), onde poolIn é o lado
// que recebe as shares vendidas.
func ProceedsFromSell(poolIn, poolOut, shares *uint256.Int) (*uint256.Int, error) {
	newPoolIn := new(uint256.Int).Add(poolIn, shares)
	return MulDiv(poolOut, shares, newPoolIn)
}

// ImpliedProbability retorna a probabilidade implícita do lado previsto,
// escala 10^18: o preço de um lado é proporcional ao pool oposto.
func ImpliedProbability(yesPool, noPool *uint256.Int, prediction bool) (*uint256.Int, error) {
	total := new(uint256.Int).Add(yesPool, noPool)
	if total.IsZero() {
		return nil, ErrZeroLiquidity
	}
	opposing := noPool
	if !prediction {
		opposing = yesPool
	}
	return MulDiv(opposing, Scale, total)
}
