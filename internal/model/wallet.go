package model

// Wallet is the singleton cash record, addressed by a well-known id.
type Wallet struct {
	ID           int64 `json:"id"`
	CurrentCash  int64 `json:"current_cash"`
	SafetyBuffer int64 `json:"safety_buffer"`
}
