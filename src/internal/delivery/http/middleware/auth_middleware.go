package middleware

import (
	"crypto/subtle"
	"strings"

	"customer-service/src/internal/model"
	"customer-service/src/internal/usecase"
	httpError "customer-service/src/pkg/http-error"
	"customer-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const authKey = "auth"

// VerifyBearer authenticates "Authorization: Bearer <token>" against the token usecase
// and stores the caller in locals.
func VerifyBearer(tokenUseCase *usecase.TokenUseCase) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		customer, _, err := tokenUseCase.Authenticate(ctx.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			return utils.ResponseError(err, ctx)
		}

		ctx.Locals(authKey, &model.Auth{
			CustomerID: customer.ID,
			Serial:     customer.Serial,
			Phone:      customer.Phone,
		})
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) *model.Auth {
	auth, _ := ctx.Locals(authKey).(*model.Auth)
	if auth == nil {
		return &model.Auth{}
	}
	return auth
}

// RequireAdminKey guards the admin group with a static X-Admin-Key. An empty key disables the group.
func RequireAdminKey(key string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		given := ctx.Get("X-Admin-Key")
		if key == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			return utils.ResponseError(httpError.NewForbidden(), ctx)
		}
		return ctx.Next()
	}
}
