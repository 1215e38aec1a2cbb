package usecase

import (
	"context"
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
	"customer-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type WalletUseCase struct {
	Log                log.Log
	Validate           *validator.Validate
	WalletRepository   repository.WalletStore
	CustomerRepository repository.CustomerStore
	WalletProducer     *messaging.WalletProducer
	Now                func() time.Time
}

func NewWalletUseCase(
	logger log.Log,
	validate *validator.Validate,
	walletRepository repository.WalletStore,
	customerRepository repository.CustomerStore,
	walletProducer *messaging.WalletProducer,
) *WalletUseCase {
	return &WalletUseCase{
		Log:                logger,
		Validate:           validate,
		WalletRepository:   walletRepository,
		CustomerRepository: customerRepository,
		WalletProducer:     walletProducer,
		Now:                time.Now,
	}
}

// Credit adds a positive amount to the customer's wallet. Errors are *httpError.CommonError.
func (c *WalletUseCase) Credit(ctx context.Context, m entity.LedgerMutation) (*entity.WalletTransaction, error) {
	if m.Amount <= 0 || !m.Type.CanCredit() {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("invalid credit: amount %d type %q", m.Amount, m.Type)
		metrics.RecordLedger("credit", string(m.Type), errObj.Kind)
		return nil, errObj
	}

	entry, err := c.WalletRepository.Credit(ctx, m, c.Now().UTC())
	if err != nil {
		errObj := storeError(err, "wallet not found")
		metrics.RecordLedger("credit", string(m.Type), errObj.Kind)
		c.Log.Error("wallet-usecase", err.Error(), "Credit", utils.ConvertString(m))
		return nil, errObj
	}
	metrics.RecordLedger("credit", string(m.Type), "ok")
	return entry, nil
}

// Debit subtracts a positive amount; it never takes the balance below zero.
func (c *WalletUseCase) Debit(ctx context.Context, m entity.LedgerMutation) (*entity.WalletTransaction, error) {
	if m.Amount <= 0 || !m.Type.CanDebit() {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("invalid debit: amount %d type %q", m.Amount, m.Type)
		metrics.RecordLedger("debit", string(m.Type), errObj.Kind)
		return nil, errObj
	}

	entry, err := c.WalletRepository.Debit(ctx, m, c.Now().UTC())
	if err != nil {
		errObj := storeError(err, "wallet not found")
		metrics.RecordLedger("debit", string(m.Type), errObj.Kind)
		if errObj.Kind == httpError.KindInsufficientFunds {
			c.Log.Info("wallet-usecase", "debit rejected, insufficient funds", "Debit", utils.ConvertString(m))
		} else {
			c.Log.Error("wallet-usecase", err.Error(), "Debit", utils.ConvertString(m))
		}
		return nil, errObj
	}
	metrics.RecordLedger("debit", string(m.Type), "ok")
	return entry, nil
}

// Publish emits a wallet-transaction event. Delivery failures are only logged.
func (c *WalletUseCase) Publish(entry *entity.WalletTransaction) {
	if c.WalletProducer == nil || entry == nil {
		return
	}
	if err := c.WalletProducer.SendTransaction(converter.TransactionToEvent(uuid.NewString(), entry)); err != nil {
		c.Log.Error("wallet-usecase", err.Error(), "Publish", entry.ReferenceID)
	}
}

func (c *WalletUseCase) GetWallet(ctx context.Context, customerID int64) utils.Result {
	var result utils.Result

	wallet, err := c.WalletRepository.FindByCustomerID(ctx, customerID)
	if err != nil {
		c.Log.Error("wallet-usecase", err.Error(), "GetWallet", utils.ConvertString(customerID))
		result.Error = storeError(err, fmt.Sprintf("wallet for customer %d not found", customerID))
		return result
	}
	result.Data = converter.WalletToResponse(wallet)
	return result
}

// History pages through the ledger newest first. Zero page or size fall back to defaults.
func (c *WalletUseCase) History(ctx context.Context, request *model.TransactionHistoryRequest) utils.Result {
	var result utils.Result

	if request.Page == 0 {
		request.Page = 1
	}
	if request.Size == 0 {
		request.Size = DefaultPageSize
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("History-validation", err.Error(), "request", utils.ConvertString(request))
		return result
	}

	if _, err := c.WalletRepository.FindByCustomerID(ctx, request.CustomerID); err != nil {
		c.Log.Error("wallet-usecase", err.Error(), "History", utils.ConvertString(request))
		result.Error = storeError(err, fmt.Sprintf("wallet for customer %d not found", request.CustomerID))
		return result
	}

	offset := (request.Page - 1) * request.Size
	entries, total, err := c.WalletRepository.History(ctx, request.CustomerID, request.Size, offset)
	if err != nil {
		c.Log.Error("wallet-usecase", err.Error(), "History", utils.ConvertString(request))
		result.Error = storeError(err, "wallet not found")
		return result
	}
	result.Data = converter.TransactionsToPage(entries, request.Page, request.Size, total)
	return result
}

func (c *WalletUseCase) Purchase(ctx context.Context, request *model.PurchaseRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("Purchase-validation", err.Error(), "request", utils.ConvertString(request))
		return result
	}

	entry, err := c.Debit(ctx, entity.LedgerMutation{
		CustomerID:  request.CustomerID,
		Amount:      request.Amount,
		Type:        entity.TransactionPurchase,
		Description: fmt.Sprintf("purchase: %s", request.Item),
	})
	if err != nil {
		result.Error = err
		return result
	}
	c.Publish(entry)

	c.Log.Info("wallet-usecase", "purchase completed", "Purchase", entry.ReferenceID)
	result.Data = &model.LedgerResponse{
		Transaction: converter.TransactionToResponse(entry),
		Balance:     entry.BalanceAfter,
	}
	return result
}

// Charge credits a customer's wallet by serial. Used by admins.
func (c *WalletUseCase) Charge(ctx context.Context, request *model.ChargeWalletRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("Charge-validation", err.Error(), "request", utils.ConvertString(request))
		return result
	}

	customer, err := c.CustomerRepository.FindBySerial(ctx, request.Serial)
	if err != nil {
		c.Log.Error("wallet-usecase", err.Error(), "Charge", request.Serial)
		result.Error = storeError(err, fmt.Sprintf("customer with serial %s not found", request.Serial))
		return result
	}

	kind := entity.TransactionCharge
	if request.Type != "" {
		kind = entity.TransactionType(request.Type)
	}
	description := request.Description
	if description == "" {
		description = fmt.Sprintf("wallet %s by admin", kind)
	}

	entry, err := c.Credit(ctx, entity.LedgerMutation{
		CustomerID:  customer.ID,
		Amount:      request.Amount,
		Type:        kind,
		Description: description,
		SourceID:    customer.SourceID,
	})
	if err != nil {
		result.Error = err
		return result
	}
	c.Publish(entry)

	c.Log.Info("wallet-usecase", "wallet charged", "Charge", entry.ReferenceID)
	result.Data = &model.LedgerResponse{
		Transaction: converter.TransactionToResponse(entry),
		Balance:     entry.BalanceAfter,
	}
	return result
}
