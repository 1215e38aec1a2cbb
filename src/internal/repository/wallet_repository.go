package repository

import (
	"context"
	"fmt"
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/pkg/databases/rdbms"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WalletRepository struct {
	DB rdbms.DBInterface
	Tx *rdbms.Transactor
}

func NewWalletRepository(db rdbms.DBInterface) *WalletRepository {
	return &WalletRepository{
		DB: db,
		Tx: rdbms.NewTransactor(db),
	}
}

func (r *WalletRepository) Create(ctx context.Context, customerID int64, now time.Time) (*entity.Wallet, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return nil, err
	}

	id, err := rdbms.InsertReturningID(ctx, q, r.DB.Dialect(), `
		INSERT INTO wallets (customer_id, balance, total_deposited, total_spent, total_rewarded, created_at, updated_at)
		VALUES (?, 0, 0, 0, 0, ?, ?)`, customerID, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert wallet: %w", err)
	}
	return &entity.Wallet{ID: id, CustomerID: customerID, CreatedAt: now, UpdatedAt: now}, nil
}

func (r *WalletRepository) FindByCustomerID(ctx context.Context, customerID int64) (*entity.Wallet, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return nil, err
	}
	var wallet entity.Wallet
	err = sqlxGet(ctx, q, &wallet, `
		SELECT id, customer_id, balance, total_deposited, total_spent, total_rewarded, created_at, updated_at
		FROM wallets WHERE customer_id = ?`, customerID)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Credit adds m.Amount to the wallet and appends the entry in one transaction.
// Charges count towards total_deposited, every other credit towards total_rewarded.
func (r *WalletRepository) Credit(ctx context.Context, m entity.LedgerMutation, now time.Time) (*entity.WalletTransaction, error) {
	var deposited, rewarded int64
	if m.Type.Deposit() {
		deposited = m.Amount
	} else {
		rewarded = m.Amount
	}

	var entry *entity.WalletTransaction
	err := r.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		q, err := rdbms.Querier(ctx, r.DB)
		if err != nil {
			return err
		}
		res, err := q.ExecContext(ctx, q.Rebind(`
			UPDATE wallets
			SET balance = balance + ?, total_deposited = total_deposited + ?, total_rewarded = total_rewarded + ?, updated_at = ?
			WHERE customer_id = ?`), m.Amount, deposited, rewarded, now, m.CustomerID)
		if err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrNotFound
		}

		entry, err = r.appendEntry(ctx, q, m, m.Amount, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Debit subtracts m.Amount only if the balance covers it. The balance check and the
// write are one statement, so concurrent debits cannot overdraw.
func (r *WalletRepository) Debit(ctx context.Context, m entity.LedgerMutation, now time.Time) (*entity.WalletTransaction, error) {
	var entry *entity.WalletTransaction
	err := r.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		q, err := rdbms.Querier(ctx, r.DB)
		if err != nil {
			return err
		}
		res, err := q.ExecContext(ctx, q.Rebind(`
			UPDATE wallets
			SET balance = balance - ?, total_spent = total_spent + ?, updated_at = ?
			WHERE customer_id = ? AND balance >= ?`), m.Amount, m.Amount, now, m.CustomerID, m.Amount)
		if err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var exists int64
			if err := sqlxGet(ctx, q, &exists, "SELECT COUNT(*) FROM wallets WHERE customer_id = ?", m.CustomerID); err != nil {
				return err
			}
			if exists > 0 {
				return ErrInsufficientFunds
			}
			return ErrNotFound
		}

		entry, err = r.appendEntry(ctx, q, m, -m.Amount, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *WalletRepository) appendEntry(ctx context.Context, q sqlx.ExtContext, m entity.LedgerMutation, signed int64, now time.Time) (*entity.WalletTransaction, error) {
	var balance int64
	if err := sqlxGet(ctx, q, &balance, "SELECT balance FROM wallets WHERE customer_id = ?", m.CustomerID); err != nil {
		return nil, err
	}

	entry := &entity.WalletTransaction{
		ReferenceID:  uuid.NewString(),
		CustomerID:   m.CustomerID,
		Type:         m.Type,
		Amount:       signed,
		BalanceAfter: balance,
		Description:  m.Description,
		SourceID:     m.SourceID,
		CreatedAt:    now,
	}
	id, err := rdbms.InsertReturningID(ctx, q, r.DB.Dialect(), `
		INSERT INTO wallet_transactions (reference_id, customer_id, type, amount, balance_after, description, source_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ReferenceID, entry.CustomerID, string(entry.Type), entry.Amount, entry.BalanceAfter,
		entry.Description, entry.SourceID, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert wallet transaction: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// History returns one page of entries, newest first, and the total entry count.
func (r *WalletRepository) History(ctx context.Context, customerID int64, limit, offset int) ([]entity.WalletTransaction, int64, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := sqlxGet(ctx, q, &total, "SELECT COUNT(*) FROM wallet_transactions WHERE customer_id = ?", customerID); err != nil {
		return nil, 0, err
	}

	entries := []entity.WalletTransaction{}
	err = sqlxSelect(ctx, q, &entries, `
		SELECT id, reference_id, customer_id, type, amount, balance_after, description, source_id, created_at
		FROM wallet_transactions
		WHERE customer_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, customerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
