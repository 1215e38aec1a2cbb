package usecase

import (
	"context"
	"fmt"
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/internal/model"
	"customer-service/src/internal/model/converter"
	"customer-service/src/internal/repository"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/metrics"
	"customer-service/src/pkg/utils"
)

type ReferralUseCase struct {
	Log                log.Log
	Transactor         repository.Transactor
	CustomerRepository repository.CustomerStore
	Wallet             *WalletUseCase
	Policy             LedgerPolicy
	Now                func() time.Time
}

func NewReferralUseCase(
	logger log.Log,
	transactor repository.Transactor,
	customerRepository repository.CustomerStore,
	wallet *WalletUseCase,
	policy LedgerPolicy,
) *ReferralUseCase {
	return &ReferralUseCase{
		Log:                logger,
		Transactor:         transactor,
		CustomerRepository: customerRepository,
		Wallet:             wallet,
		Policy:             policy,
		Now:                time.Now,
	}
}

// SignupCredit is the bonus entry a new customer starts with. A referred customer
// gets the referred bonus folded into the same entry.
func (c *ReferralUseCase) SignupCredit(customer *entity.Customer, referrer *entity.Customer) entity.LedgerMutation {
	m := entity.LedgerMutation{
		CustomerID:  customer.ID,
		Amount:      c.Policy.SignupBonus,
		Type:        entity.TransactionBonus,
		Description: "signup bonus",
		SourceID:    customer.SourceID,
	}
	if referrer != nil && c.Policy.ReferredBonus > 0 {
		m.Amount += c.Policy.ReferredBonus
		m.Description = fmt.Sprintf("signup bonus %d + referral bonus %d (referred by %s)",
			c.Policy.SignupBonus, c.Policy.ReferredBonus, referrer.Serial)
	}
	return m
}

// CreditReferrer pays the referrer and bumps their counters in one transaction,
// separate from the referred customer's registration. Failures are logged and counted, never returned.
func (c *ReferralUseCase) CreditReferrer(ctx context.Context, referrer *entity.Customer, referred *entity.Customer) {
	if c.Policy.ReferrerBonus <= 0 {
		return
	}

	var entry *entity.WalletTransaction
	err := c.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := c.CustomerRepository.AddReferralReward(ctx, referrer.ID, c.Policy.ReferrerBonus, c.Now().UTC()); err != nil {
			return err
		}
		var err error
		entry, err = c.Wallet.Credit(ctx, entity.LedgerMutation{
			CustomerID:  referrer.ID,
			Amount:      c.Policy.ReferrerBonus,
			Type:        entity.TransactionReferral,
			Description: fmt.Sprintf("referral reward for %s", referred.Serial),
			SourceID:    referrer.SourceID,
		})
		return err
	})
	if err != nil {
		metrics.RecordReferralCreditFailure()
		c.Log.Error("referral-usecase", err.Error(), "CreditReferrer",
			utils.ConvertString(map[string]int64{"referrer_id": referrer.ID, "referred_id": referred.ID}))
		return
	}
	c.Wallet.Publish(entry)
	c.Log.Info("referral-usecase", "referrer credited", "CreditReferrer", referrer.Serial)
}

func (c *ReferralUseCase) Stats(ctx context.Context, customerID int64) utils.Result {
	var result utils.Result

	customer, err := c.CustomerRepository.FindByID(ctx, customerID)
	if err != nil {
		c.Log.Error("referral-usecase", err.Error(), "Stats", utils.ConvertString(customerID))
		result.Error = storeError(err, fmt.Sprintf("customer %d not found", customerID))
		return result
	}

	referred, err := c.CustomerRepository.ListReferred(ctx, customerID)
	if err != nil {
		c.Log.Error("referral-usecase", err.Error(), "Stats", utils.ConvertString(customerID))
		result.Error = storeError(err, "")
		return result
	}

	result.Data = &model.ReferralStatsResponse{
		Serial:           customer.Serial,
		TotalReferrals:   customer.TotalReferrals,
		ReferralEarnings: customer.ReferralEarnings,
		Referred:         converter.ReferredToResponse(referred),
	}
	return result
}
