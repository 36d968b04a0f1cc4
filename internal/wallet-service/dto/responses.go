package dto

type WalletResponse struct {
	UserID   string `json:"userId"`
	WalletID string `json:"walletId"`
	Balance  string `json:"balance"`
}

type TransferResponse struct {
	TransferID string `json:"transferId"`
	Balance    string `json:"balance"`
}
