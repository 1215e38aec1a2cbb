package model

import "time"

type WalletResponse struct {
	CustomerID     int64     `json:"customer_id"`
	Balance        int64     `json:"balance"`
	TotalDeposited int64     `json:"total_deposited"`
	TotalSpent     int64     `json:"total_spent"`
	TotalRewarded  int64     `json:"total_rewarded"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TransactionResponse struct {
	ReferenceID  string    `json:"reference_id"`
	Type         string    `json:"type"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

type TransactionPageResponse struct {
	Items  []TransactionResponse `json:"items"`
	Paging PageMetadata          `json:"paging"`
}

type TransactionHistoryRequest struct {
	CustomerID int64 `validate:"required,gt=0"`
	PageRequest
}

type PurchaseRequest struct {
	CustomerID int64  `json:"-" validate:"required,gt=0"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Item       string `json:"item" validate:"required,max=255"`
}

type LedgerResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Balance     int64                `json:"balance"`
}

type ChargeWalletRequest struct {
	Serial      string `json:"serial" validate:"required,max=18"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Type        string `json:"type" validate:"omitempty,oneof=charge bonus"`
	Description string `json:"description" validate:"max=255"`
}
