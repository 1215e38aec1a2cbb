package http

import (
	"customer-service/src/internal/delivery/http/middleware"
	"customer-service/src/internal/model"
	"customer-service/src/internal/usecase"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletController struct {
	Log     log.Log
	UseCase *usecase.WalletUseCase
}

func NewWalletController(useCase *usecase.WalletUseCase, logger log.Log) *WalletController {
	return &WalletController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *WalletController) GetWallet(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.GetWallet(ctx.Context(), auth.CustomerID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "GetWallet", fiber.StatusOK, ctx)
}

func (c *WalletController) History(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.TransactionHistoryRequest)
	if err := ctx.QueryParser(&request.PageRequest); err != nil {
		c.Log.Error("WalletController.History", "Failed to parse query", "error", err.Error())
		return utils.ResponseError(badBody(err), ctx)
	}
	request.CustomerID = auth.CustomerID
	result := c.UseCase.History(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "History", fiber.StatusOK, ctx)
}

func (c *WalletController) Purchase(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.PurchaseRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.Purchase", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(badBody(err), ctx)
	}
	request.CustomerID = auth.CustomerID
	result := c.UseCase.Purchase(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Purchase", fiber.StatusOK, ctx)
}
