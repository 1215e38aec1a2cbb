package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/pkg/databases/rdbms"
)

type CustomerRepository struct {
	DB rdbms.DBInterface
}

func NewCustomerRepository(db rdbms.DBInterface) *CustomerRepository {
	return &CustomerRepository{
		DB: db,
	}
}

const customerColumns = `id, name, phone, serial, pin_hash, source_id, referrer_id, is_active,
	is_trial_active, trial_expires_at, total_referrals, referral_earnings, created_at, updated_at`

// Create inserts the customer and sets its ID. Unique violations on phone and serial
// come back as ErrDuplicatePhone and ErrDuplicateSerial.
func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO customers (name, phone, serial, pin_hash, source_id, referrer_id, is_active,
			is_trial_active, trial_expires_at, total_referrals, referral_earnings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)`

	id, err := rdbms.InsertReturningID(ctx, q, r.DB.Dialect(), query,
		c.Name, c.Phone, c.Serial, c.PinHash, c.SourceID, c.ReferrerID, c.IsActive,
		c.IsTrialActive, c.TrialExpiresAt, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if hint, ok := rdbms.UniqueViolation(err); ok {
			switch {
			case strings.Contains(hint, "phone"):
				return ErrDuplicatePhone
			case strings.Contains(hint, "serial"):
				return ErrDuplicateSerial
			}
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	c.ID = id
	return nil
}

func (r *CustomerRepository) findOne(ctx context.Context, where string, arg interface{}) (*entity.Customer, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return nil, err
	}

	var customer entity.Customer
	query := "SELECT " + customerColumns + " FROM customers WHERE " + where
	if err := sqlxGet(ctx, q, &customer, query, arg); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *CustomerRepository) FindBySerial(ctx context.Context, serial string) (*entity.Customer, error) {
	return r.findOne(ctx, "serial = ?", serial)
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *CustomerRepository) ExistsPhone(ctx context.Context, phone string) (bool, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return false, err
	}
	var n int64
	if err := sqlxGet(ctx, q, &n, "SELECT COUNT(*) FROM customers WHERE phone = ?", phone); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExpireTrial flips is_trial_active off when the window has passed. It reports
// whether this call made the transition.
func (r *CustomerRepository) ExpireTrial(ctx context.Context, id int64, now time.Time) (bool, error) {
	n, err := r.exec(ctx, `
		UPDATE customers SET is_trial_active = ?, updated_at = ?
		WHERE id = ? AND is_trial_active = ? AND trial_expires_at < ?`,
		false, now, id, true, now)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CustomerRepository) UpdatePinHash(ctx context.Context, id int64, pinHash string, now time.Time) error {
	return r.execOne(ctx, "UPDATE customers SET pin_hash = ?, updated_at = ? WHERE id = ?", pinHash, now, id)
}

func (r *CustomerRepository) UpdateName(ctx context.Context, id int64, name string, now time.Time) error {
	return r.execOne(ctx, "UPDATE customers SET name = ?, updated_at = ? WHERE id = ?", name, now, id)
}

func (r *CustomerRepository) Deactivate(ctx context.Context, id int64, now time.Time) error {
	return r.execOne(ctx, "UPDATE customers SET is_active = ?, updated_at = ? WHERE id = ?", false, now, id)
}

func (r *CustomerRepository) AddReferralReward(ctx context.Context, id int64, amount int64, now time.Time) error {
	return r.execOne(ctx, `
		UPDATE customers
		SET total_referrals = total_referrals + 1, referral_earnings = referral_earnings + ?, updated_at = ?
		WHERE id = ?`, amount, now, id)
}

func (r *CustomerRepository) ListReferred(ctx context.Context, referrerID int64) ([]entity.ReferredCustomer, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return nil, err
	}
	referred := []entity.ReferredCustomer{}
	query := `
		SELECT id, name, serial, created_at FROM customers
		WHERE referrer_id = ?
		ORDER BY created_at DESC, id DESC`
	if err := sqlxSelect(ctx, q, &referred, query, referrerID); err != nil {
		return nil, err
	}
	return referred, nil
}

func (r *CustomerRepository) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	q, err := rdbms.Querier(ctx, r.DB)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// execOne fails with ErrNotFound when no row matched.
func (r *CustomerRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	n, err := r.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
