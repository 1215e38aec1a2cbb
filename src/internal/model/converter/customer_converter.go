package converter

import (
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/internal/model"
	"customer-service/src/pkg/serial"
)

func CustomerToResponse(c *entity.Customer) *model.CustomerResponse {
	return &model.CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		Serial:           c.Serial,
		IsActive:         c.IsActive,
		IsTrialActive:    c.IsTrialActive,
		TrialExpiresAt:   c.TrialExpiresAt,
		TotalReferrals:   c.TotalReferrals,
		ReferralEarnings: c.ReferralEarnings,
		CreatedAt:        c.CreatedAt,
	}
}

func CustomerToStatus(c *entity.Customer, w *entity.Wallet, now time.Time) *model.AccountStatusResponse {
	res := &model.AccountStatusResponse{
		CustomerID:            c.ID,
		IsActive:              c.IsActive,
		IsTrialActive:         c.IsTrialActive,
		TrialExpiresAt:        c.TrialExpiresAt,
		TrialRemainingSeconds: int64(c.TrialRemaining(now).Seconds()),
	}
	if w != nil {
		res.Balance = w.Balance
	}
	return res
}

func CustomerToEvent(eventID string, c *entity.Customer, source string) *model.CustomerEvent {
	return &model.CustomerEvent{
		EventID:    eventID,
		CustomerID: c.ID,
		Serial:     c.Serial,
		Source:     source,
		ReferrerID: c.ReferrerID.Int64,
		OccurredAt: c.CreatedAt,
	}
}

func ReferredToResponse(referred []entity.ReferredCustomer) []model.ReferredCustomerResponse {
	res := make([]model.ReferredCustomerResponse, 0, len(referred))
	for _, r := range referred {
		res = append(res, model.ReferredCustomerResponse{
			Name:     r.Name,
			Serial:   serial.Mask(r.Serial),
			JoinedAt: r.CreatedAt,
		})
	}
	return res
}
