package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/internal/gateway/messaging"
	"customer-service/src/internal/model"
	"customer-service/src/internal/model/converter"
	"customer-service/src/internal/repository"
	httpError "customer-service/src/pkg/http-error"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/metrics"
	"customer-service/src/pkg/serial"
	"customer-service/src/pkg/throttle"
	"customer-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxSerialAttempts = 5

var errSerialExhausted = errors.New("could not allocate a unique serial")

type CustomerUseCase struct {
	Log                log.Log
	Validate           *validator.Validate
	Transactor         repository.Transactor
	CustomerRepository repository.CustomerStore
	SourceRepository   repository.SourceStore
	WalletRepository   repository.WalletStore
	Wallet             *WalletUseCase
	Referral           *ReferralUseCase
	Token              *TokenUseCase
	Limiter            throttle.Limiter
	CustomerProducer   *messaging.CustomerProducer
	Policy             LedgerPolicy
	PinCost            int
	Now                func() time.Time
}

func NewCustomerUseCase(
	logger log.Log,
	validate *validator.Validate,
	transactor repository.Transactor,
	customerRepository repository.CustomerStore,
	sourceRepository repository.SourceStore,
	walletRepository repository.WalletStore,
	wallet *WalletUseCase,
	referral *ReferralUseCase,
	tokenUseCase *TokenUseCase,
	limiter throttle.Limiter,
	customerProducer *messaging.CustomerProducer,
	policy LedgerPolicy,
) *CustomerUseCase {
	return &CustomerUseCase{
		Log:                logger,
		Validate:           validate,
		Transactor:         transactor,
		CustomerRepository: customerRepository,
		SourceRepository:   sourceRepository,
		WalletRepository:   walletRepository,
		Wallet:             wallet,
		Referral:           referral,
		Token:              tokenUseCase,
		Limiter:            limiter,
		CustomerProducer:   customerProducer,
		Policy:             policy,
		PinCost:            bcrypt.DefaultCost,
		Now:                time.Now,
	}
}

// Register creates the customer, its wallet and the signup bonus in one transaction,
// then credits the referrer on a best-effort basis.
func (c *CustomerUseCase) Register(ctx context.Context, request *model.RegisterCustomerRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("Register-validation", err.Error(), "request", request.Phone)
		return result
	}

	prefix := request.Source
	if prefix == "" {
		prefix = entity.UnknownSourcePrefix
	}
	source, err := c.SourceRepository.FindByPrefix(ctx, prefix)
	if err != nil || !source.IsActive {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("unknown or inactive source %q", prefix)
		result.Error = errObj
		c.Log.Error("customer-usecase", errObj.Message, "Register", utils.ConvertString(err))
		return result
	}

	referrer := c.resolveReferrer(ctx, request.ReferrerSerial)

	pin := request.Pin
	generatedPin := pin == ""
	if generatedPin {
		if pin, err = serial.GeneratePIN(); err != nil {
			c.Log.Error("customer-usecase", err.Error(), "Register", "GeneratePIN")
			result.Error = httpError.NewInternalServerError()
			return result
		}
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), c.PinCost)
	if err != nil {
		c.Log.Error("customer-usecase", err.Error(), "Register", "bcrypt")
		result.Error = httpError.NewInternalServerError()
		return result
	}

	now := c.Now().UTC()
	customer := &entity.Customer{
		Name:           request.Name,
		Phone:          request.Phone,
		PinHash:        string(pinHash),
		SourceID:       sql.NullInt64{Int64: source.ID, Valid: true},
		IsActive:       true,
		IsTrialActive:  true,
		TrialExpiresAt: now.Add(c.Policy.TrialDuration),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if referrer != nil {
		customer.ReferrerID = sql.NullInt64{Int64: referrer.ID, Valid: true}
	}

	wallet, err := c.createAccount(ctx, customer, source.Prefix, referrer)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicatePhone):
			result.Error = httpError.NewDuplicatePhone()
		case errors.Is(err, errSerialExhausted):
			errObj := httpError.NewInternalServerError()
			errObj.Message = err.Error()
			result.Error = errObj
		default:
			result.Error = storeError(err, "")
		}
		c.Log.Error("customer-usecase", err.Error(), "Register", request.Phone)
		return result
	}

	if referrer != nil {
		c.Referral.CreditReferrer(ctx, referrer, customer)
	}

	metrics.RecordRegistration(source.Prefix)
	if c.CustomerProducer != nil {
		if err := c.CustomerProducer.SendRegistered(converter.CustomerToEvent(uuid.NewString(), customer, source.Prefix)); err != nil {
			c.Log.Error("customer-usecase", err.Error(), "Register", "SendRegistered")
		}
	}

	c.Log.Info("customer-usecase", "customer registered", "Register", customer.Serial)
	res := &model.AuthResponse{
		Customer: converter.CustomerToResponse(customer),
		Wallet:   converter.WalletToResponse(wallet),
	}
	// the account is committed at this point; without a token the client logs in instead
	if tok, err := c.Token.Issue(ctx, customer, "registration"); err == nil {
		res.Token = tok.Token
		res.ExpiresAt = tok.ExpiresAt
	} else {
		c.Log.Warn("customer-usecase", "registered without session token", "Register", customer.Serial)
	}
	if generatedPin {
		res.Pin = pin
	}
	result.Data = res
	return result
}

func (c *CustomerUseCase) resolveReferrer(ctx context.Context, referrerSerial string) *entity.Customer {
	if referrerSerial == "" {
		return nil
	}
	referrer, err := c.CustomerRepository.FindBySerial(ctx, referrerSerial)
	if err != nil {
		c.Log.Warn("customer-usecase", "referrer not found, registering without referrer", "resolveReferrer", referrerSerial)
		return nil
	}
	if !referrer.IsActive {
		c.Log.Warn("customer-usecase", "referrer inactive, registering without referrer", "resolveReferrer", referrerSerial)
		return nil
	}
	return referrer
}

// createAccount retries with a fresh serial on collision. Each attempt is its own
// transaction since a failed statement poisons the transaction on some databases.
func (c *CustomerUseCase) createAccount(ctx context.Context, customer *entity.Customer, prefix string, referrer *entity.Customer) (*entity.Wallet, error) {
	for attempt := 1; attempt <= maxSerialAttempts; attempt++ {
		s, err := serial.Generate(prefix)
		if err != nil {
			return nil, err
		}
		customer.Serial = s

		var wallet *entity.Wallet
		err = c.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := c.CustomerRepository.Create(ctx, customer); err != nil {
				return err
			}
			w, err := c.WalletRepository.Create(ctx, customer.ID, customer.CreatedAt)
			if err != nil {
				return err
			}
			bonus := c.Referral.SignupCredit(customer, referrer)
			if bonus.Amount > 0 {
				entry, err := c.Wallet.Credit(ctx, bonus)
				if err != nil {
					return err
				}
				w.Balance = entry.BalanceAfter
				w.TotalRewarded = entry.Amount
			}
			wallet = w
			return nil
		})
		if errors.Is(err, repository.ErrDuplicateSerial) {
			c.Log.Warn("customer-usecase", "serial collision, retrying", "createAccount", utils.ConvertString(attempt))
			customer.ID = 0
			continue
		}
		if err != nil {
			customer.ID = 0
			return nil, err
		}
		return wallet, nil
	}
	return nil, errSerialExhausted
}

func (c *CustomerUseCase) blocked(ctx context.Context, key string) bool {
	if c.Limiter == nil {
		return false
	}
	blocked, err := c.Limiter.Blocked(ctx, key)
	if err != nil {
		c.Log.Error("customer-usecase", err.Error(), "throttle", key)
		return false
	}
	return blocked
}

func (c *CustomerUseCase) failAttempt(ctx context.Context, key string) {
	metrics.RecordLoginFailure()
	if c.Limiter == nil {
		return
	}
	if err := c.Limiter.Fail(ctx, key); err != nil {
		c.Log.Error("customer-usecase", err.Error(), "throttle", key)
	}
}

func (c *CustomerUseCase) resetAttempts(ctx context.Context, key string) {
	if c.Limiter == nil {
		return
	}
	if err := c.Limiter.Reset(ctx, key); err != nil {
		c.Log.Error("customer-usecase", err.Error(), "throttle", key)
	}
}

func (c *CustomerUseCase) Login(ctx context.Context, request *model.LoginCustomerRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	key := "login:" + request.Serial
	if c.blocked(ctx, key) {
		result.Error = httpError.NewTooManyAttempts()
		return result
	}

	customer, err := c.CustomerRepository.FindBySerial(ctx, request.Serial)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.failAttempt(ctx, key)
			result.Error = httpError.NewInvalidCredential()
			return result
		}
		c.Log.Error("customer-usecase", err.Error(), "Login", request.Serial)
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PinHash), []byte(request.Pin)) != nil {
		c.failAttempt(ctx, key)
		result.Error = httpError.NewInvalidCredential()
		return result
	}
	if !customer.IsActive {
		errObj := httpError.NewUnauthorized()
		errObj.Message = "account is deactivated"
		result.Error = errObj
		return result
	}
	c.resetAttempts(ctx, key)
	c.expireTrial(ctx, customer)

	tok, err := c.Token.Issue(ctx, customer, "login")
	if err != nil {
		result.Error = err
		return result
	}
	res := &model.AuthResponse{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		Customer:  converter.CustomerToResponse(customer),
	}
	if wallet, err := c.WalletRepository.FindByCustomerID(ctx, customer.ID); err == nil {
		res.Wallet = converter.WalletToResponse(wallet)
	}

	c.Log.Info("customer-usecase", "customer logged in", "Login", customer.Serial)
	result.Data = res
	return result
}

func (c *CustomerUseCase) RecoverSerial(ctx context.Context, request *model.RecoverSerialRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	key := "recover:" + request.Phone
	if c.blocked(ctx, key) {
		result.Error = httpError.NewTooManyAttempts()
		return result
	}

	notFound := httpError.NewNotFound()
	notFound.Message = "no account matches this phone and pin"

	customer, err := c.CustomerRepository.FindByPhone(ctx, request.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.failAttempt(ctx, key)
			result.Error = notFound
			return result
		}
		c.Log.Error("customer-usecase", err.Error(), "RecoverSerial", request.Phone)
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PinHash), []byte(request.Pin)) != nil {
		c.failAttempt(ctx, key)
		result.Error = notFound
		return result
	}
	c.resetAttempts(ctx, key)

	result.Data = &model.RecoverSerialResponse{Serial: customer.Serial, Name: customer.Name}
	return result
}

func (c *CustomerUseCase) CheckPhone(ctx context.Context, request *model.CheckPhoneRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	exists, err := c.CustomerRepository.ExistsPhone(ctx, request.Phone)
	if err != nil {
		c.Log.Error("customer-usecase", err.Error(), "CheckPhone", request.Phone)
		result.Error = httpError.NewInternalServerError()
		return result
	}
	result.Data = &model.CheckPhoneResponse{Phone: request.Phone, Exists: exists}
	return result
}

// expireTrial applies the lazy TrialActive -> TrialExpired transition.
func (c *CustomerUseCase) expireTrial(ctx context.Context, customer *entity.Customer) {
	now := c.Now().UTC()
	if !customer.TrialExpired(now) {
		return
	}
	if _, err := c.CustomerRepository.ExpireTrial(ctx, customer.ID, now); err != nil {
		c.Log.Error("customer-usecase", err.Error(), "expireTrial", utils.ConvertString(customer.ID))
	}
	customer.IsTrialActive = false
}

func (c *CustomerUseCase) GetProfile(ctx context.Context, customerID int64) utils.Result {
	var result utils.Result

	customer, err := c.CustomerRepository.FindByID(ctx, customerID)
	if err != nil {
		c.Log.Error("customer-usecase", err.Error(), "GetProfile", utils.ConvertString(customerID))
		result.Error = storeError(err, fmt.Sprintf("customer %d not found", customerID))
		return result
	}
	c.expireTrial(ctx, customer)
	result.Data = converter.CustomerToResponse(customer)
	return result
}

func (c *CustomerUseCase) AccountStatus(ctx context.Context, customerID int64) utils.Result {
	var result utils.Result

	customer, err := c.CustomerRepository.FindByID(ctx, customerID)
	if err != nil {
		c.Log.Error("customer-usecase", err.Error(), "AccountStatus", utils.ConvertString(customerID))
		result.Error = storeError(err, fmt.Sprintf("customer %d not found", customerID))
		return result
	}
	c.expireTrial(ctx, customer)

	wallet, err := c.WalletRepository.FindByCustomerID(ctx, customerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		c.Log.Error("customer-usecase", err.Error(), "AccountStatus", utils.ConvertString(customerID))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	result.Data = converter.CustomerToStatus(customer, wallet, c.Now().UTC())
	return result
}

func (c *CustomerUseCase) ChangePIN(ctx context.Context, request *model.ChangePinRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	customer, err := c.CustomerRepository.FindByID(ctx, request.CustomerID)
	if err != nil {
		result.Error = storeError(err, "customer not found")
		return result
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PinHash), []byte(request.OldPin)) != nil {
		result.Error = httpError.NewInvalidCredential()
		return result
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(request.NewPin), c.PinCost)
	if err != nil {
		c.Log.Error("customer-usecase", err.Error(), "ChangePIN", "bcrypt")
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if err := c.CustomerRepository.UpdatePinHash(ctx, customer.ID, string(pinHash), c.Now().UTC()); err != nil {
		c.Log.Error("customer-usecase", err.Error(), "ChangePIN", customer.Serial)
		result.Error = storeError(err, "customer not found")
		return result
	}

	c.Log.Info("customer-usecase", "pin changed", "ChangePIN", customer.Serial)
	result.Data = converter.CustomerToResponse(customer)
	return result
}

func (c *CustomerUseCase) UpdateProfile(ctx context.Context, request *model.UpdateProfileRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	if err := c.CustomerRepository.UpdateName(ctx, request.CustomerID, request.Name, c.Now().UTC()); err != nil {
		c.Log.Error("customer-usecase", err.Error(), "UpdateProfile", utils.ConvertString(request.CustomerID))
		result.Error = storeError(err, "customer not found")
		return result
	}
	return c.GetProfile(ctx, request.CustomerID)
}

// Deactivate soft-deletes a customer; tokens already issued stop validating.
func (c *CustomerUseCase) Deactivate(ctx context.Context, customerID int64) utils.Result {
	var result utils.Result

	if err := c.CustomerRepository.Deactivate(ctx, customerID, c.Now().UTC()); err != nil {
		c.Log.Error("customer-usecase", err.Error(), "Deactivate", utils.ConvertString(customerID))
		result.Error = storeError(err, fmt.Sprintf("customer %d not found", customerID))
		return result
	}
	c.Log.Info("customer-usecase", "customer deactivated", "Deactivate", utils.ConvertString(customerID))
	return c.GetProfile(ctx, customerID)
}
