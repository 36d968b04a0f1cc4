package topics

const (
	// Markets
	MarketCreated  = "market_created"
	MarketResolved = "market_resolved"

	// Trades
	TradeExecuted   = "trade_executed"
	WinningsClaimed = "winnings_claimed"

	// Combos
	ComboCreated = "combo_created"
	ComboSettled = "combo_settled"

	// DLQs
	TradeExecutedDLQ = "trade_executed_dlq"
)
