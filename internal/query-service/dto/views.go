package dto

// Views de leitura servidas pelo query-service. Valores monetários são
// strings decimais em attos, exatamente como gravados no Postgres.

type MarketView struct {
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

type PositionView struct {
	MarketID  uint64 `json:"marketId"`
	Owner     string `json:"owner"`
	YesShares string `json:"yes_shares"`
	NoShares  string `json:"no_shares"`
	Claimed   bool   `json:"claimed"`
}

type OrderView struct {
	OrderID        uint64 `json:"orderId"`
	MarketID       uint64 `json:"marketId"`
	Owner          string `json:"owner"`
	IsYes          bool   `json:"is_yes"`
	Side           string `json:"side"`
	Price          string `json:"price"`
	OriginalAmount string `json:"original_amount"`
	FilledAmount   string `json:"filled_amount"`
	Duration       string `json:"duration"`
	Status         string `json:"status"`
}

type ComboLegView struct {
	MarketID   uint64 `json:"market_id"`
	Prediction bool   `json:"prediction"`
	Odds       string `json:"odds"`
	Resolved   bool   `json:"resolved"`
	Won        *bool  `json:"won,omitempty"`
}

type ComboView struct {
	ComboID         uint64         `json:"comboId"`
	Owner           string         `json:"owner"`
	Name            string         `json:"name"`
	Legs            []ComboLegView `json:"legs"`
	Stake           string         `json:"stake"`
	PotentialPayout string         `json:"potential_payout"`
	Status          string         `json:"status"`
}

type AgentView struct {
	AgentID        uint64 `json:"agentId"`
	Owner          string `json:"owner"`
	Name           string `json:"name"`
	Strategy       string `json:"strategy"`
	Capital        string `json:"capital"`
	TotalVolume    string `json:"total_volume"`
	ProfitLoss     int64  `json:"profit_loss"`
	WinRate        uint64 `json:"win_rate"` // base 10000
	TotalTrades    uint64 `json:"total_trades"`
	FollowersCount uint64 `json:"followers_count"`
	IsActive       bool   `json:"is_active"`
}

type FeedItemView struct {
	FeedID        uint64  `json:"feedId"`
	Author        string  `json:"author"`
	ItemType      string  `json:"item_type"`
	MarketID      *uint64 `json:"market_id,omitempty"`
	Content       string  `json:"content"`
	LikesCount    uint64  `json:"likes_count"`
	CommentsCount uint64  `json:"comments_count"`
	CreatedAtUnix int64   `json:"created_at_unix_ms"`
}

type StatsView struct {
	TotalVolume string `json:"total_volume"`
}
