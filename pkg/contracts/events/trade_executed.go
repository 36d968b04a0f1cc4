package events

// Evento publicado pelo market-service a cada compra/venda executada.
// Valores monetários são strings decimais em attos (10^-18).
type TradeExecuted struct {
	TradeID  string `json:"trade_id"`
	MarketID uint64 `json:"market_id"`
	Trader   string `json:"trader"`
	IsYes    bool   `json:"is_yes"`
	Side     string `json:"side"` // "BUY" | "SELL"
	Shares   string `json:"shares"`
	Amount   string `json:"amount"` // custo na compra, proventos na venda
	YesPool  string `json:"yes_pool"`
	NoPool   string `json:"no_pool"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}
