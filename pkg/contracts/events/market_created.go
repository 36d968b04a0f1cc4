package events

type MarketCreated struct {
	MarketID         uint64   `json:"market_id"`
	Creator          string   `json:"creator"`
	Question         string   `json:"question"`
	Categories       []string `json:"categories"`
	EndTimeUnixMs    int64    `json:"end_time_unix_ms"`
	InitialLiquidity string   `json:"initial_liquidity"`
	TsUnixMs         int64    `json:"ts_unix_ms"`
}
