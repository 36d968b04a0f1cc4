package dto

// Valores monetários chegam como strings decimais em attos (10^-18).

type CreateMarketRequest struct {
	UserID           string   `json:"userId"`
	Question         string   `json:"question"`
	Categories       []string `json:"categories"`
	EndTimeUnixMs    int64    `json:"end_time_unix_ms"`
	InitialLiquidity string   `json:"initial_liquidity"`
}

type BuyRequest struct {
	UserID  string `json:"userId"`
	IsYes   bool   `json:"is_yes"`
	Shares  string `json:"shares"`
	MaxCost string `json:"max_cost"` // custo máximo aceito (proteção de slippage)
}

type SellRequest struct {
	UserID      string `json:"userId"`
	IsYes       bool   `json:"is_yes"`
	Shares      string `json:"shares"`
	MinProceeds string `json:"min_proceeds"`
}

type ResolveRequest struct {
	UserID  string `json:"userId"`
	Outcome bool   `json:"outcome"` // true = YES venceu
}

type ClaimRequest struct {
	UserID string `json:"userId"`
}

type PlaceOrderRequest struct {
	UserID   string `json:"userId"`
	IsYes    bool   `json:"is_yes"`
	Side     string `json:"side"`     // "BUY" | "SELL"
	Price    string `json:"price"`    // escala 10^18
	Amount   string `json:"amount"`   // shares
	Duration string `json:"duration"` // "GTC" | "IOC"
}

type ComboLegRequest struct {
	MarketID   uint64 `json:"market_id"`
	Prediction bool   `json:"prediction"`
}

type CreateComboRequest struct {
	UserID string            `json:"userId"`
	Name   string            `json:"name"`
	Stake  string            `json:"stake"`
	Legs   []ComboLegRequest `json:"legs"`
}

type CreateAgentRequest struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Strategy       string `json:"strategy"`
	Config         string `json:"config"` // JSON opaco
	InitialCapital string `json:"initial_capital"`
}

type UpdateAgentConfigRequest struct {
	UserID string `json:"userId"`
	Config string `json:"config"`
}

type ToggleAgentRequest struct {
	UserID string `json:"userId"`
	Active bool   `json:"active"`
}

type FollowAgentRequest struct {
	UserID     string `json:"userId"`
	Allocation string `json:"allocation"`
}

type CommentRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

type FollowUserRequest struct {
	UserID string `json:"userId"`
	Target string `json:"target"`
}

// UserOnlyRequest serve para operações onde só o caller importa
// (claim, cancelamentos, unfollow, like).
type UserOnlyRequest struct {
	UserID string `json:"userId"`
}
