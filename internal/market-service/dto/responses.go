package dto

type MarketResponse struct {
	MarketID       uint64   `json:"marketId"`
	Creator        string   `json:"creator"`
	Question       string   `json:"question"`
	Categories     []string `json:"categories"`
	EndTimeUnixMs  int64    `json:"end_time_unix_ms"`
	YesPool        string   `json:"yes_pool"`
	NoPool         string   `json:"no_pool"`
	TotalYesShares string   `json:"total_yes_shares"`
	TotalNoShares  string   `json:"total_no_shares"`
	Volume         string   `json:"volume"`
	Resolved       bool     `json:"resolved"`
	Outcome        *bool    `json:"outcome,omitempty"`
}

type TradeResponse struct {
	MarketID uint64 `json:"marketId"`
	Side     string `json:"side"`
	IsYes    bool   `json:"is_yes"`
	Shares   string `json:"shares"`
	Amount   string `json:"amount"` // custo na compra, proventos na venda
	YesPool  string `json:"yes_pool"`
	NoPool   string `json:"no_pool"`
}

type ResolveResponse struct {
	MarketID      uint64   `json:"marketId"`
	Outcome       bool     `json:"outcome"`
	SettledCombos []uint64 `json:"settled_combos"` // combos cuja cascata mudou o status
}

type ClaimResponse struct {
	MarketID uint64 `json:"marketId"`
	Payout   string `json:"payout"`
}

type OrderResponse struct {
	OrderID uint64 `json:"orderId"`
	Status  string `json:"status"`
}

type ComboResponse struct {
	ComboID         uint64 `json:"comboId"`
	Status          string `json:"status"`
	PotentialPayout string `json:"potential_payout"`
}

type AgentResponse struct {
	AgentID uint64 `json:"agentId"`
	Status  string `json:"status"`
}

type CommentResponse struct {
	FeedID uint64 `json:"feedId"`
}

type AckResponse struct {
	Status string `json:"status"` // "OK"
}

type ErrorResponse struct {
	Error string `json:"error"`
}
