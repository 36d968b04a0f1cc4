package engine

import "errors"

// Erros retornados pelas operações do núcleo. Cada pré-condição violada
// tem um erro próprio; o handler HTTP traduz para status codes.
var (
	ErrUnauthenticated = errors.New("operation must be authenticated")

	ErrMarketNotFound   = errors.New("market not found")
	ErrPositionNotFound = errors.New("no position found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrComboNotFound    = errors.New("combo not found")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrFeedItemNotFound = errors.New("feed item not found")

	ErrAlreadyResolved   = errors.New("market already resolved")
	ErrMarketNotResolved = errors.New("market not resolved")
	ErrMarketEnded       = errors.New("market has ended")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrOutcomeUnset      = errors.New("market outcome not set")

	ErrInsufficientLiquidity = errors.New("not enough liquidity")
	ErrInsufficientShares    = errors.New("not enough shares in position")
	ErrCostExceedsLimit      = errors.New("cost exceeds maximum")
	ErrProceedsBelowMinimum  = errors.New("proceeds below minimum")

	ErrAlreadyClaimed  = errors.New("already claimed")
	ErrNoWinningShares = errors.New("no winning shares")

	ErrInvalidLegCount                 = errors.New("combo must have between 2 and 10 legs")
	ErrZeroLiquidity                   = errors.New("market has zero liquidity")
	ErrPartialResolutionPreventsCancel = errors.New("cannot cancel: some legs already resolved")
	ErrNotCancellable                  = errors.New("not cancellable")

	ErrDivisionByZero     = errors.New("division by zero")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
