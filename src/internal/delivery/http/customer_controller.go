package http

import (
	"customer-service/src/internal/delivery/http/middleware"
	"customer-service/src/internal/model"
	"customer-service/src/internal/usecase"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type CustomerController struct {
	Log      log.Log
	UseCase  *usecase.CustomerUseCase
	Referral *usecase.ReferralUseCase
}

func NewCustomerController(useCase *usecase.CustomerUseCase, referral *usecase.ReferralUseCase, logger log.Log) *CustomerController {
	return &CustomerController{
		Log:      logger,
		UseCase:  useCase,
		Referral: referral,
	}
}

func (c *CustomerController) Register(ctx *fiber.Ctx) error {
	request := new(model.RegisterCustomerRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("CustomerController.Register", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(badBody(err), ctx)
	}
	result := c.UseCase.Register(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Register", fiber.StatusCreated, ctx)
}

func (c *CustomerController) Login(ctx *fiber.Ctx) error {
	request := new(model.LoginCustomerRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("CustomerController.Login", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(badBody(err), ctx)
	}
	result := c.UseCase.Login(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Login", fiber.StatusOK, ctx)
}

func (c *CustomerController) RecoverSerial(ctx *fiber.Ctx) error {
	request := new(model.RecoverSerialRequest)
	if err := ctx.BodyParser(request); err != nil {
		return utils.ResponseError(badBody(err), ctx)
	}
	result := c.UseCase.RecoverSerial(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "RecoverSerial", fiber.StatusOK, ctx)
}

func (c *CustomerController) CheckPhone(ctx *fiber.Ctx) error {
	request := new(model.CheckPhoneRequest)
	if err := ctx.BodyParser(request); err != nil {
		return utils.ResponseError(badBody(err), ctx)
	}
	result := c.UseCase.CheckPhone(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "CheckPhone", fiber.StatusOK, ctx)
}

func (c *CustomerController) GetProfile(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.GetProfile(ctx.Context(), auth.CustomerID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "GetProfile", fiber.StatusOK, ctx)
}

func (c *CustomerController) AccountStatus(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.AccountStatus(ctx.Context(), auth.CustomerID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "AccountStatus", fiber.StatusOK, ctx)
}

func (c *CustomerController) ChangePIN(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.ChangePinRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("CustomerController.ChangePIN", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(badBody(err), ctx)
	}
	request.CustomerID = auth.CustomerID
	result := c.UseCase.ChangePIN(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ChangePIN", fiber.StatusOK, ctx)
}

func (c *CustomerController) UpdateProfile(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.UpdateProfileRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("CustomerController.UpdateProfile", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(badBody(err), ctx)
	}
	request.CustomerID = auth.CustomerID
	result := c.UseCase.UpdateProfile(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "UpdateProfile", fiber.StatusOK, ctx)
}

func (c *CustomerController) ReferralStats(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.Referral.Stats(ctx.Context(), auth.CustomerID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ReferralStats", fiber.StatusOK, ctx)
}
