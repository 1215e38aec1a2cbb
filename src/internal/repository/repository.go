package repository

import (
	"context"
	"errors"
	"time"

	"customer-service/src/internal/entity"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicatePhone    = errors.New("phone already registered")
	ErrDuplicateSerial   = errors.New("serial already taken")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Transactor runs fn inside one database transaction carried by ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CustomerStore interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id int64) (*entity.Customer, error)
	FindBySerial(ctx context.Context, serial string) (*entity.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	ExistsPhone(ctx context.Context, phone string) (bool, error)
	ExpireTrial(ctx context.Context, id int64, now time.Time) (bool, error)
	UpdatePinHash(ctx context.Context, id int64, pinHash string, now time.Time) error
	UpdateName(ctx context.Context, id int64, name string, now time.Time) error
	Deactivate(ctx context.Context, id int64, now time.Time) error
	AddReferralReward(ctx context.Context, id int64, amount int64, now time.Time) error
	ListReferred(ctx context.Context, referrerID int64) ([]entity.ReferredCustomer, error)
}

type WalletStore interface {
	Create(ctx context.Context, customerID int64, now time.Time) (*entity.Wallet, error)
	FindByCustomerID(ctx context.Context, customerID int64) (*entity.Wallet, error)
	Credit(ctx context.Context, m entity.LedgerMutation, now time.Time) (*entity.WalletTransaction, error)
	Debit(ctx context.Context, m entity.LedgerMutation, now time.Time) (*entity.WalletTransaction, error)
	History(ctx context.Context, customerID int64, limit, offset int) ([]entity.WalletTransaction, int64, error)
}

type SourceStore interface {
	FindByPrefix(ctx context.Context, prefix string) (*entity.Source, error)
}

type AuditStore interface {
	Create(ctx context.Context, log *entity.TokenAuditLog) error
}

type StatsStore interface {
	SourceStats(ctx context.Context) ([]entity.SourceStat, error)
	Dashboard(ctx context.Context, since time.Time) (*entity.DashboardStat, error)
}
