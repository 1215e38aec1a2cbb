package http

import (
	"customer-service/src/internal/model"
	"customer-service/src/internal/usecase"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TokenController struct {
	Log     log.Log
	UseCase *usecase.TokenUseCase
}

func NewTokenController(useCase *usecase.TokenUseCase, logger log.Log) *TokenController {
	return &TokenController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *TokenController) Validate(ctx *fiber.Ctx) error {
	request := new(model.TokenRequest)
	if err := ctx.BodyParser(request); err != nil {
		return utils.ResponseError(badBody(err), ctx)
	}
	result := c.UseCase.ValidateToken(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ValidateToken", fiber.StatusOK, ctx)
}

func (c *TokenController) Refresh(ctx *fiber.Ctx) error {
	request := new(model.TokenRequest)
	if err := ctx.BodyParser(request); err != nil {
		return utils.ResponseError(badBody(err), ctx)
	}
	result := c.UseCase.Refresh(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "RefreshToken", fiber.StatusOK, ctx)
}
