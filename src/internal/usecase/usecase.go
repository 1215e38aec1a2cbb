package usecase

import (
	"errors"
	"fmt"
	"time"

	"customer-service/src/internal/repository"
	httpError "customer-service/src/pkg/http-error"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LedgerPolicy holds the amounts credited at registration and the trial window.
type LedgerPolicy struct {
	SignupBonus   int64
	ReferredBonus int64
	ReferrerBonus int64
	TrialDuration time.Duration
}

func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{
		SignupBonus:   150,
		ReferredBonus: 50,
		ReferrerBonus: 30,
		TrialDuration: 72 * time.Hour,
	}
}

func LedgerPolicyFromViper(v *viper.Viper) LedgerPolicy {
	p := DefaultLedgerPolicy()
	if v.IsSet("wallet.signup_bonus") {
		p.SignupBonus = v.GetInt64("wallet.signup_bonus")
	}
	if v.IsSet("referral.referred_bonus") {
		p.ReferredBonus = v.GetInt64("referral.referred_bonus")
	}
	if v.IsSet("referral.referrer_bonus") {
		p.ReferrerBonus = v.GetInt64("referral.referrer_bonus")
	}
	if d := v.GetDuration("trial.duration"); d > 0 {
		p.TrialDuration = d
	}
	return p
}

func validationError(err error) *httpError.CommonError {
	errObj := httpError.NewBadRequest()
	errObj.Message = fmt.Sprintf("validation error: %v", err.Error())

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		errObj.Data = fields
	}
	return errObj
}

// storeError maps repository sentinels onto the error kinds exposed to clients.
func storeError(err error, notFoundMessage string) *httpError.CommonError {
	var errObj *httpError.CommonError
	switch {
	case errors.As(err, &errObj):
		return errObj
	case errors.Is(err, repository.ErrNotFound):
		errObj = httpError.NewNotFound()
		errObj.Message = notFoundMessage
	case errors.Is(err, repository.ErrInsufficientFunds):
		errObj = httpError.NewInsufficientFunds()
	case errors.Is(err, repository.ErrDuplicatePhone):
		errObj = httpError.NewDuplicatePhone()
	default:
		errObj = httpError.NewInternalServerError()
	}
	return errObj
}
