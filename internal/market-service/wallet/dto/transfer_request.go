package dto

// Amount é string decimal em attos; ExternalRef deduplica a transferência
// no wallet-service (tradeID).
type TransferRequest struct {
	UserID      string `json:"userId"`
	Amount      string `json:"amount"`
	ExternalRef string `json:"externalRef"`
}
