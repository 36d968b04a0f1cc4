package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// MarketID: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type     string `json:"type"`
	MarketID uint64 `json:"marketId"`
}

// MarketUpdate é o snapshot de preço repassado aos clientes inscritos.
// O payload vem pronto do canal Redis (prices.Snapshot serializado).
type MarketUpdate struct {
	MarketID uint64         `json:"marketId"`
	Payload  map[string]any `json:"payload"`
}
