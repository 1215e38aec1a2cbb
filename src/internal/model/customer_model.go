package model

import "time"

type CustomerResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Serial           string    `json:"serial"`
	IsActive         bool      `json:"is_active"`
	IsTrialActive    bool      `json:"is_trial_active"`
	TrialExpiresAt   time.Time `json:"trial_expires_at"`
	TotalReferrals   int64     `json:"total_referrals"`
	ReferralEarnings int64     `json:"referral_earnings"`
	CreatedAt        time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	Customer  *CustomerResponse `json:"customer"`
	Wallet    *WalletResponse   `json:"wallet,omitempty"`
	// Pin is only set when registration generated it.
	Pin string `json:"pin,omitempty"`
}

type AccountStatusResponse struct {
	CustomerID            int64     `json:"customer_id"`
	IsActive              bool      `json:"is_active"`
	IsTrialActive         bool      `json:"is_trial_active"`
	TrialExpiresAt        time.Time `json:"trial_expires_at"`
	TrialRemainingSeconds int64     `json:"trial_remaining_seconds"`
	Balance               int64     `json:"balance"`
}

type RegisterCustomerRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Phone          string `json:"phone" validate:"required,phone"`
	Source         string `json:"source" validate:"omitempty,len=1,alpha"`
	ReferrerSerial string `json:"referrer_serial" validate:"omitempty,max=18"`
	Pin            string `json:"pin" validate:"omitempty,pin"`
}

type LoginCustomerRequest struct {
	Serial string `json:"serial" validate:"required,max=18"`
	Pin    string `json:"pin" validate:"required,pin"`
}

type RecoverSerialRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	Pin   string `json:"pin" validate:"required,pin"`
}

type RecoverSerialResponse struct {
	Serial string `json:"serial"`
	Name   string `json:"name"`
}

type CheckPhoneRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type CheckPhoneResponse struct {
	Phone  string `json:"phone"`
	Exists bool   `json:"exists"`
}

type ChangePinRequest struct {
	CustomerID int64  `json:"-" validate:"required,gt=0"`
	OldPin     string `json:"old_pin" validate:"required,pin"`
	NewPin     string `json:"new_pin" validate:"required,pin,nefield=OldPin"`
}

type UpdateProfileRequest struct {
	CustomerID int64  `json:"-" validate:"required,gt=0"`
	Name       string `json:"name" validate:"required,max=100"`
}

type ReferredCustomerResponse struct {
	Name     string    `json:"name"`
	Serial   string    `json:"serial"`
	JoinedAt time.Time `json:"joined_at"`
}

type ReferralStatsResponse struct {
	Serial           string                     `json:"serial"`
	TotalReferrals   int64                      `json:"total_referrals"`
	ReferralEarnings int64                      `json:"referral_earnings"`
	Referred         []ReferredCustomerResponse `json:"referred"`
}
