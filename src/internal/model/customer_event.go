package model

import "time"

type CustomerEvent struct {
	EventID    string    `json:"event_id"`
	CustomerID int64     `json:"customer_id"`
	Serial     string    `json:"serial"`
	Source     string    `json:"source"`
	ReferrerID int64     `json:"referrer_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *CustomerEvent) GetId() string {
	return e.EventID
}

type WalletTransactionEvent struct {
	EventID      string    `json:"event_id"`
	CustomerID   int64     `json:"customer_id"`
	ReferenceID  string    `json:"reference_id"`
	Type         string    `json:"type"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (e *WalletTransactionEvent) GetId() string {
	return e.EventID
}
