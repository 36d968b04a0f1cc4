package dto

type TransferResponse struct {
	TransferID string `json:"transferId"`
	Balance    string `json:"balance"`
}
