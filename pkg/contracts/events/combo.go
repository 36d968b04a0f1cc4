package events

import "time"

type ComboCreated struct {
	ComboID         uint64    `json:"comboId"`
	Owner           string    `json:"owner"`
	LegCount        int       `json:"legCount"`
	Stake           string    `json:"stake"`
	PotentialPayout string    `json:"potentialPayout"`
	Ts              time.Time `json:"ts"`
}

type ComboSettled struct {
	ComboID uint64    `json:"comboId"`
	Owner   string    `json:"owner"`
	Status  string    `json:"status"` // "WON" | "LOST"
	Payout  string    `json:"payout"` // zero quando LOST
	Ts      time.Time `json:"ts"`
}
