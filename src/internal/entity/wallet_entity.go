package entity

import (
	"database/sql"
	"time"
)

type Wallet struct {
	ID             int64     `json:"id" db:"id"`
	CustomerID     int64     `json:"customer_id" db:"customer_id"`
	Balance        int64     `json:"balance" db:"balance"`
	TotalDeposited int64     `json:"total_deposited" db:"total_deposited"`
	TotalSpent     int64     `json:"total_spent" db:"total_spent"`
	TotalRewarded  int64     `json:"total_rewarded" db:"total_rewarded"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Consistent checks balance == deposited + rewarded - spent.
func (w *Wallet) Consistent() bool {
	return w.Balance == w.TotalDeposited+w.TotalRewarded-w.TotalSpent
}

type TransactionType string

const (
	TransactionBonus    TransactionType = "bonus"
	TransactionPurchase TransactionType = "purchase"
	TransactionCharge   TransactionType = "charge"
	TransactionRefund   TransactionType = "refund"
	TransactionManual   TransactionType = "manual"
	TransactionReferral TransactionType = "referral"
	TransactionTrial    TransactionType = "trial"
)

func (t TransactionType) CanCredit() bool {
	switch t {
	case TransactionBonus, TransactionCharge, TransactionRefund, TransactionManual, TransactionReferral, TransactionTrial:
		return true
	}
	return false
}

func (t TransactionType) CanDebit() bool {
	return t == TransactionPurchase || t == TransactionManual
}

// Deposit reports whether a credit of this type counts as money paid in rather than a reward.
func (t TransactionType) Deposit() bool {
	return t == TransactionCharge
}

// WalletTransaction is an immutable ledger entry. Amount is negative for debits.
type WalletTransaction struct {
	ID           int64           `json:"id" db:"id"`
	ReferenceID  string          `json:"reference_id" db:"reference_id"`
	CustomerID   int64           `json:"customer_id" db:"customer_id"`
	Type         TransactionType `json:"type" db:"type"`
	Amount       int64           `json:"amount" db:"amount"`
	BalanceAfter int64           `json:"balance_after" db:"balance_after"`
	Description  string          `json:"description" db:"description"`
	SourceID     sql.NullInt64   `json:"-" db:"source_id"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// LedgerMutation is one credit or debit request against a wallet. Amount is always positive.
type LedgerMutation struct {
	CustomerID  int64
	Amount      int64
	Type        TransactionType
	Description string
	SourceID    sql.NullInt64
}
