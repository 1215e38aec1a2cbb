package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/pkg/databases/rdbms"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newMock(t *testing.T, dialect rdbms.Dialect) (rdbms.DBInterface, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return rdbms.New(sqlx.NewDb(db, "sqlmock"), dialect), mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

func newCustomer() *entity.Customer {
	return &entity.Customer{
		Name:           "Budi",
		Phone:          "0551234567",
		Serial:         "T1234567890",
		PinHash:        "hash",
		IsActive:       true,
		IsTrialActive:  true,
		TrialExpiresAt: now.Add(72 * time.Hour),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCustomerCreate(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	mock.ExpectExec(q("INSERT INTO customers")).
		WithArgs("Budi", "0551234567", "T1234567890", "hash", nil, nil, true, true, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	c := newCustomer()
	require.NoError(t, NewCustomerRepository(db).Create(context.Background(), c))
	assert.Equal(t, int64(42), c.ID)
}

func TestCustomerCreateDuplicatePhoneMySQL(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	mock.ExpectExec(q("INSERT INTO customers")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '0551234567' for key 'customers.uq_customers_phone'"})

	err := NewCustomerRepository(db).Create(context.Background(), newCustomer())
	assert.ErrorIs(t, err, ErrDuplicatePhone)
}

func TestCustomerCreateDuplicateSerialPostgres(t *testing.T) {
	db, mock := newMock(t, rdbms.Postgres)
	mock.ExpectQuery(q("INSERT INTO customers")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_customers_serial"})

	err := NewCustomerRepository(db).Create(context.Background(), newCustomer())
	assert.ErrorIs(t, err, ErrDuplicateSerial)
}

func TestCustomerFindBySerial(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	repo := NewCustomerRepository(db)

	cols := []string{"id", "name", "phone", "serial", "pin_hash", "source_id", "referrer_id", "is_active",
		"is_trial_active", "trial_expires_at", "total_referrals", "referral_earnings", "created_at", "updated_at"}
	mock.ExpectQuery(q("FROM customers WHERE serial = ?")).WithArgs("T1234567890").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			7, "Budi", "0551234567", "T1234567890", "hash", 1, nil, true, true, now, 2, 60, now, now))
	mock.ExpectQuery(q("FROM customers WHERE serial = ?")).WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(cols))

	c, err := repo.FindBySerial(context.Background(), "T1234567890")
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, sql.NullInt64{Int64: 1, Valid: true}, c.SourceID)
	assert.False(t, c.ReferrerID.Valid)
	assert.Equal(t, int64(60), c.ReferralEarnings)

	_, err = repo.FindBySerial(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerExpireTrial(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	repo := NewCustomerRepository(db)

	mock.ExpectExec(q("UPDATE customers SET is_trial_active = ?, updated_at = ?")).
		WithArgs(false, now, int64(7), true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE customers SET is_trial_active = ?, updated_at = ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := repo.ExpireTrial(context.Background(), 7, now)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.ExpireTrial(context.Background(), 7, now)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCustomerAddReferralReward(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	repo := NewCustomerRepository(db)

	mock.ExpectExec(q("SET total_referrals = total_referrals + 1, referral_earnings = referral_earnings + ?")).
		WithArgs(int64(30), now, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("SET total_referrals = total_referrals + 1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.AddReferralReward(context.Background(), 7, 30, now))
	assert.ErrorIs(t, repo.AddReferralReward(context.Background(), 8, 30, now), ErrNotFound)
}

func TestWalletDebit(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	mock.ExpectBegin()
	mock.ExpectExec(q("SET balance = balance - ?, total_spent = total_spent + ?, updated_at = ?")).
		WithArgs(int64(30), int64(30), now, int64(7), int64(30)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT balance FROM wallets WHERE customer_id = ?")).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(120))
	mock.ExpectExec(q("INSERT INTO wallet_transactions")).
		WithArgs(sqlmock.AnyArg(), int64(7), "purchase", int64(-30), int64(120), "item", nil, now).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	entry, err := NewWalletRepository(db).Debit(context.Background(), entity.LedgerMutation{
		CustomerID: 7, Amount: 30, Type: entity.TransactionPurchase, Description: "item",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(9), entry.ID)
	assert.Equal(t, int64(-30), entry.Amount)
	assert.Equal(t, int64(120), entry.BalanceAfter)
	assert.Len(t, entry.ReferenceID, 36)
}

func TestWalletDebitInsufficientFunds(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	mock.ExpectBegin()
	mock.ExpectExec(q("SET balance = balance - ?")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM wallets WHERE customer_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := NewWalletRepository(db).Debit(context.Background(), entity.LedgerMutation{
		CustomerID: 7, Amount: 500, Type: entity.TransactionPurchase,
	}, now)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestWalletDebitMissingWallet(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	mock.ExpectBegin()
	mock.ExpectExec(q("SET balance = balance - ?")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM wallets WHERE customer_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := NewWalletRepository(db).Debit(context.Background(), entity.LedgerMutation{
		CustomerID: 99, Amount: 1, Type: entity.TransactionPurchase,
	}, now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWalletCreditSplitsDepositAndReward(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	repo := NewWalletRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q("SET balance = balance + ?, total_deposited = total_deposited + ?, total_rewarded = total_rewarded + ?")).
		WithArgs(int64(100), int64(100), int64(0), now, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT balance FROM wallets")).WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(250))
	mock.ExpectExec(q("INSERT INTO wallet_transactions")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(q("SET balance = balance + ?")).
		WithArgs(int64(30), int64(0), int64(30), now, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT balance FROM wallets")).WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(280))
	mock.ExpectExec(q("INSERT INTO wallet_transactions")).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	charge, err := repo.Credit(context.Background(), entity.LedgerMutation{CustomerID: 7, Amount: 100, Type: entity.TransactionCharge}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(250), charge.BalanceAfter)

	referral, err := repo.Credit(context.Background(), entity.LedgerMutation{CustomerID: 7, Amount: 30, Type: entity.TransactionReferral}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(30), referral.Amount)
	assert.Equal(t, int64(280), referral.BalanceAfter)
}

func TestWalletCreditJoinsOuterTransaction(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	repo := NewWalletRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO wallets")).WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec(q("SET balance = balance + ?")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT balance FROM wallets")).WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(150))
	mock.ExpectExec(q("INSERT INTO wallet_transactions")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := rdbms.NewTransactor(db).WithinTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := repo.Create(ctx, 7, now); err != nil {
			return err
		}
		_, err := repo.Credit(ctx, entity.LedgerMutation{CustomerID: 7, Amount: 150, Type: entity.TransactionBonus}, now)
		return err
	})
	require.NoError(t, err)
}

func TestWalletHistory(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM wallet_transactions WHERE customer_id = ?")).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(q("ORDER BY created_at DESC, id DESC")).WithArgs(int64(7), 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference_id", "customer_id", "type", "amount", "balance_after", "description", "source_id", "created_at"}).
			AddRow(15, "ref-15", 7, "purchase", -10, 140, "item", nil, now).
			AddRow(14, "ref-14", 7, "bonus", 150, 150, "signup bonus", 1, now))

	entries, total, err := NewWalletRepository(db).History(context.Background(), 7, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.TransactionPurchase, entries[0].Type)
	assert.Equal(t, int64(14), entries[1].ID)
}

func TestSourceFindByPrefix(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	mock.ExpectQuery(q("FROM sources WHERE prefix = ?")).WithArgs("T").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "prefix", "is_active", "created_at"}).AddRow(1, "Telegram", "T", true, now))

	s, err := NewSourceRepository(db).FindByPrefix(context.Background(), "T")
	require.NoError(t, err)
	assert.Equal(t, "Telegram", s.Name)
}

func TestAuditCreate(t *testing.T) {
	db, mock := newMock(t, rdbms.Postgres)
	mock.ExpectQuery(q("INSERT INTO token_audit_logs")).
		WithArgs(int64(7), entity.AuditTokenGenerated, "abcd", "login", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	l := &entity.TokenAuditLog{CustomerID: 7, Action: entity.AuditTokenGenerated, TokenFingerprint: "abcd", Description: "login", CreatedAt: now}
	require.NoError(t, NewAuditRepository(db).Create(context.Background(), l))
	assert.Equal(t, int64(5), l.ID)
}

func TestStatsDashboard(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	since := now.Add(-24 * time.Hour)
	mock.ExpectQuery(q("AS total_customers")).WithArgs(true, true, since).
		WillReturnRows(sqlmock.NewRows([]string{"total_customers", "active_customers", "trial_customers", "registrations_last_day",
			"total_balance", "total_deposited", "total_spent", "total_rewarded", "total_transactions"}).
			AddRow(10, 9, 4, 2, 1500, 200, 700, 2000, 31))

	stat, err := NewStatsRepository(db).Dashboard(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stat.TotalCustomers)
	assert.Equal(t, stat.TotalBalance, stat.TotalDeposited+stat.TotalRewarded-stat.TotalSpent)
}

func TestStatsSourceStats(t *testing.T) {
	db, mock := newMock(t, rdbms.MySQL)
	mock.ExpectQuery(q("LEFT JOIN customers c ON c.source_id = s.id")).WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"source_id", "name", "prefix", "customers", "active_customers", "total_credited"}).
			AddRow(1, "Telegram", "T", 3, 2, 600).
			AddRow(6, "Unknown", "U", 0, 0, 0))

	stats, err := NewStatsRepository(db).SourceStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(600), stats[0].TotalCredited)
}
