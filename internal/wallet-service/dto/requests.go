package dto

// Amount é string decimal em attos (10^-18), mesma escala do núcleo.

type DepositRequest struct {
	UserID      string `json:"userId"`
	Amount      string `json:"amount"`
	ExternalRef string `json:"external_ref,omitempty"` // opcional p/ idempotência simples
}

type TransferRequest struct {
	UserID      string `json:"userId"`
	Amount      string `json:"amount"`
	ExternalRef string `json:"externalRef"` // ex: tradeId
}
