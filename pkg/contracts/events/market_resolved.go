package events

import "time"

// Evento emitido quando o criador resolve um mercado; combos liquidados
// na cascata vão em eventos ComboSettled separados.
type MarketResolved struct {
	MarketID uint64    `json:"marketId"`
	Resolver string    `json:"resolver"`
	Outcome  bool      `json:"outcome"`
	Ts       time.Time `json:"ts"`
}

type WinningsClaimed struct {
	MarketID uint64    `json:"marketId"`
	User     string    `json:"user"`
	Payout   string    `json:"payout"`
	Ts       time.Time `json:"ts"`
}
