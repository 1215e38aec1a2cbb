package entity

import (
	"database/sql"
	"time"
)

type Customer struct {
	ID               int64         `json:"id" db:"id"`
	Name             string        `json:"name" db:"name"`
	Phone            string        `json:"phone" db:"phone"`
	Serial           string        `json:"serial" db:"serial"`
	PinHash          string        `json:"-" db:"pin_hash"`
	SourceID         sql.NullInt64 `json:"-" db:"source_id"`
	ReferrerID       sql.NullInt64 `json:"-" db:"referrer_id"`
	IsActive         bool          `json:"is_active" db:"is_active"`
	IsTrialActive    bool          `json:"is_trial_active" db:"is_trial_active"`
	TrialExpiresAt   time.Time     `json:"trial_expires_at" db:"trial_expires_at"`
	TotalReferrals   int64         `json:"total_referrals" db:"total_referrals"`
	ReferralEarnings int64         `json:"referral_earnings" db:"referral_earnings"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// TrialExpired reports whether an active trial has run past its window at now.
func (c *Customer) TrialExpired(now time.Time) bool {
	return c.IsTrialActive && c.TrialExpiresAt.Before(now)
}

// TrialRemaining is zero once the trial is over.
func (c *Customer) TrialRemaining(now time.Time) time.Duration {
	if !c.IsTrialActive || !c.TrialExpiresAt.After(now) {
		return 0
	}
	return c.TrialExpiresAt.Sub(now)
}

// ReferredCustomer is a referral listing row; Serial is masked before it leaves the service.
type ReferredCustomer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Serial    string    `json:"serial" db:"serial"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
