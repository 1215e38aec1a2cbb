package usecase

import (
	"context"
	"errors"
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/internal/model"
	"customer-service/src/internal/repository"
	httpError "customer-service/src/pkg/http-error"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/metrics"
	"customer-service/src/pkg/token"
	"customer-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type TokenUseCase struct {
	Log                log.Log
	Validate           *validator.Validate
	Issuer             *token.Issuer
	CustomerRepository repository.CustomerStore
	AuditRepository    repository.AuditStore
	Now                func() time.Time
}

func NewTokenUseCase(
	logger log.Log,
	validate *validator.Validate,
	issuer *token.Issuer,
	customerRepository repository.CustomerStore,
	auditRepository repository.AuditStore,
) *TokenUseCase {
	return &TokenUseCase{
		Log:                logger,
		Validate:           validate,
		Issuer:             issuer,
		CustomerRepository: customerRepository,
		AuditRepository:    auditRepository,
		Now:                time.Now,
	}
}

func (c *TokenUseCase) audit(ctx context.Context, customerID int64, action, tokenString, description string) {
	if c.AuditRepository == nil || customerID <= 0 {
		return
	}
	err := c.AuditRepository.Create(ctx, &entity.TokenAuditLog{
		CustomerID:       customerID,
		Action:           action,
		TokenFingerprint: token.Fingerprint(tokenString),
		Description:      description,
		CreatedAt:        c.Now().UTC(),
	})
	if err != nil {
		c.Log.Error("token-usecase", err.Error(), "audit", action)
	}
}

// Issue signs a session token for customer and records it in the audit log.
func (c *TokenUseCase) Issue(ctx context.Context, customer *entity.Customer, reason string) (*model.TokenResponse, error) {
	signed, claim, err := c.Issuer.Issue(token.Subject{
		CustomerID: customer.ID,
		Serial:     customer.Serial,
		Phone:      customer.Phone,
	})
	if err != nil {
		c.Log.Error("token-usecase", err.Error(), "Issue", utils.ConvertString(customer.ID))
		return nil, httpError.NewInternalServerError()
	}
	c.audit(ctx, customer.ID, entity.AuditTokenGenerated, signed, reason)
	return &model.TokenResponse{Token: signed, ExpiresAt: claim.ExpiresAt.Time}, nil
}

// Authenticate validates tokenString and returns the active customer it belongs to.
func (c *TokenUseCase) Authenticate(ctx context.Context, tokenString string) (*entity.Customer, *token.Claim, error) {
	claim, err := c.Issuer.Parse(tokenString)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			metrics.RecordTokenValidation(httpError.KindExpired)
			if expired, perr := c.Issuer.ParseIgnoringExpiry(tokenString); perr == nil {
				c.audit(ctx, expired.CustomerID, entity.AuditTokenRejected, tokenString, "expired")
			}
			return nil, nil, httpError.NewExpired()
		}
		metrics.RecordTokenValidation(httpError.KindMalformed)
		c.Log.Info("token-usecase", err.Error(), "Authenticate", "")
		return nil, nil, httpError.NewMalformed()
	}

	customer, err := c.checkCustomer(ctx, claim, tokenString)
	if err != nil {
		return nil, nil, err
	}
	metrics.RecordTokenValidation("ok")
	return customer, claim, nil
}

func (c *TokenUseCase) checkCustomer(ctx context.Context, claim *token.Claim, tokenString string) (*entity.Customer, error) {
	customer, err := c.CustomerRepository.FindByID(ctx, claim.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordTokenValidation(httpError.KindUnauthorized)
			errObj := httpError.NewUnauthorized()
			errObj.Message = "customer no longer exists"
			return nil, errObj
		}
		c.Log.Error("token-usecase", err.Error(), "checkCustomer", utils.ConvertString(claim.CustomerID))
		return nil, httpError.NewInternalServerError()
	}
	if !customer.IsActive {
		metrics.RecordTokenValidation(httpError.KindRevokedAccount)
		c.audit(ctx, customer.ID, entity.AuditTokenRejected, tokenString, "account deactivated")
		return nil, httpError.NewRevokedAccount()
	}
	return customer, nil
}

func (c *TokenUseCase) ValidateToken(ctx context.Context, request *model.TokenRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	customer, claim, err := c.Authenticate(ctx, request.Token)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = &model.TokenValidationResponse{
		Valid:      true,
		CustomerID: customer.ID,
		Serial:     customer.Serial,
		ExpiresAt:  claim.ExpiresAt.Time,
	}
	return result
}

// Refresh exchanges a correctly signed token for a new one, even past its expiry,
// as long as the customer still exists and is active.
func (c *TokenUseCase) Refresh(ctx context.Context, request *model.TokenRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	claim, err := c.Issuer.ParseIgnoringExpiry(request.Token)
	if err != nil {
		metrics.RecordTokenValidation(httpError.KindMalformed)
		result.Error = httpError.NewMalformed()
		return result
	}

	customer, err := c.checkCustomer(ctx, claim, request.Token)
	if err != nil {
		result.Error = err
		return result
	}

	signed, fresh, err := c.Issuer.Issue(token.Subject{
		CustomerID: customer.ID,
		Serial:     customer.Serial,
		Phone:      customer.Phone,
	})
	if err != nil {
		c.Log.Error("token-usecase", err.Error(), "Refresh", utils.ConvertString(customer.ID))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	c.audit(ctx, customer.ID, entity.AuditTokenRefreshed, signed, "refreshed from "+token.Fingerprint(request.Token))

	c.Log.Info("token-usecase", "token refreshed", "Refresh", customer.Serial)
	result.Data = &model.TokenResponse{Token: signed, ExpiresAt: fresh.ExpiresAt.Time}
	return result
}
