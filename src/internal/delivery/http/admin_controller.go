package http

import (
	"customer-service/src/internal/model"
	"customer-service/src/internal/usecase"
	httpError "customer-service/src/pkg/http-error"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminController struct {
	Log      log.Log
	Stats    *usecase.StatsUseCase
	Customer *usecase.CustomerUseCase
	Wallet   *usecase.WalletUseCase
}

func NewAdminController(stats *usecase.StatsUseCase, customer *usecase.CustomerUseCase, wallet *usecase.WalletUseCase, logger log.Log) *AdminController {
	return &AdminController{
		Log:      logger,
		Stats:    stats,
		Customer: customer,
		Wallet:   wallet,
	}
}

func (c *AdminController) SourceStats(ctx *fiber.Ctx) error {
	result := c.Stats.SourceStats(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "SourceStats", fiber.StatusOK, ctx)
}

func (c *AdminController) DashboardStats(ctx *fiber.Ctx) error {
	result := c.Stats.DashboardStats(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "DashboardStats", fiber.StatusOK, ctx)
}

func (c *AdminController) ChargeWallet(ctx *fiber.Ctx) error {
	request := new(model.ChargeWalletRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.ChargeWallet", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(badBody(err), ctx)
	}
	result := c.Wallet.Charge(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ChargeWallet", fiber.StatusOK, ctx)
}

func (c *AdminController) Deactivate(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		errObj := httpError.NewBadRequest()
		errObj.Message = "invalid customer id"
		return utils.ResponseError(errObj, ctx)
	}
	result := c.Customer.Deactivate(ctx.Context(), int64(id))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Deactivate", fiber.StatusOK, ctx)
}
