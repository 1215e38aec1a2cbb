package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeDirections(t *testing.T) {
	assert.True(t, TransactionBonus.CanCredit())
	assert.True(t, TransactionReferral.CanCredit())
	assert.False(t, TransactionPurchase.CanCredit())
	assert.True(t, TransactionPurchase.CanDebit())
	assert.True(t, TransactionManual.CanDebit())
	assert.True(t, TransactionManual.CanCredit())
	assert.False(t, TransactionBonus.CanDebit())
	assert.False(t, TransactionType("gift").CanCredit())
	assert.True(t, TransactionCharge.Deposit())
	assert.False(t, TransactionBonus.Deposit())
}

func TestCustomerTrial(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := &Customer{IsTrialActive: true, TrialExpiresAt: now.Add(time.Hour)}
	assert.False(t, c.TrialExpired(now))
	assert.Equal(t, time.Hour, c.TrialRemaining(now))

	assert.True(t, c.TrialExpired(now.Add(2*time.Hour)))
	assert.Zero(t, c.TrialRemaining(now.Add(2*time.Hour)))

	c.IsTrialActive = false
	assert.False(t, c.TrialExpired(now.Add(2*time.Hour)))
}

func TestWalletConsistent(t *testing.T) {
	w := &Wallet{Balance: 170, TotalDeposited: 100, TotalRewarded: 200, TotalSpent: 130}
	assert.True(t, w.Consistent())
	w.Balance++
	assert.False(t, w.Consistent())
}
