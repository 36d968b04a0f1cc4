package engine

import "github.com/holiman/uint256"

// scaleDown é o fator do último recurso do MulDiv (10^9): divide os dois
// operandos antes de multiplicar, aceitando erro relativo limitado.
var scaleDown = uint256.NewInt(1e9)

// MulDiv calcula ⌊a*b/c⌋ sem estourar 256 bits mesmo quando o produto a*b
// não é representável. Decomposição: a*b/c = (a/c)*b + (a%c)*b/c.
//
// Retorna ErrDivisionByZero quando c = 0 e ErrArithmeticOverflow quando
// (a/c)*b estoura — nesse caso o próprio quociente final não caberia, e o
// chamador deve rejeitar a entrada.
func MulDiv(a, b, c *uint256.Int) (*uint256.Int, error) {
	if c.IsZero() {
		return nil, ErrDivisionByZero
	}

	// Caminho rápido: a*b cabe em 256 bits
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if !overflow {
		return product.Div(product, c), nil
	}

	quotient := new(uint256.Int).Div(a, c)
	remainder := new(uint256.Int).Mod(a, c)

	// (a/c)*b precisa caber: para razões de AMM o quociente é pequeno
	term1, overflow := new(uint256.Int).MulOverflow(quotient, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}

	// (a%c)*b/c: remainder < c, então o termo é menor que b
	term2, overflow := new(uint256.Int).MulOverflow(remainder, b)
	if !overflow {
		term2.Div(term2, c)
		return term1.Add(term1, term2), nil
	}

	// Até o produto do resto estoura: decompõe b = (b/c)*c + (b%c)
	bDivC := new(uint256.Int).Div(b, c)
	bModC := new(uint256.Int).Mod(b, c)

	sub1, overflow := new(uint256.Int).MulOverflow(remainder, bDivC)
	if overflow {
		// Último recurso: escala os operandos para baixo (erro limitado)
		sub1.Div(remainder, scaleDown)
		sub1.Mul(sub1, new(uint256.Int).Div(bDivC, scaleDown))
		sub1.Mul(sub1, scaleDown)
	}

	sub2, overflow := new(uint256.Int).MulOverflow(remainder, bModC)
	if !overflow {
		sub2.Div(sub2, c)
	} else {
		scaleSq := new(uint256.Int).Mul(scaleDown, scaleDown)
		div := new(uint256.Int).Div(c, scaleSq)
		if div.IsZero() {
			div.SetOne()
		}
		sub2.Div(remainder, scaleDown)
		sub2.Mul(sub2, new(uint256.Int).Div(bModC, scaleDown))
		sub2.Div(sub2, div)
	}

	term2 = sub1.Add(sub1, sub2)
	return term1.Add(term1, term2), nil
}
