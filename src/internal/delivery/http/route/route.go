package route

import (
	"customer-service/src/internal/delivery/http"
	"customer-service/src/internal/delivery/http/middleware"
	"customer-service/src/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type RouteConfig struct {
	App                *fiber.App
	CustomerController *http.CustomerController
	WalletController   *http.WalletController
	TokenController    *http.TokenController
	AdminController    *http.AdminController
	AuthMiddleware     fiber.Handler
	AdminMiddleware    fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := c.App.Group("/api/v1")
	c.SetupGuestRoute(api)
	c.SetupAdminRoute(api)
	c.SetupAuthRoute(api)
}

func (c *RouteConfig) SetupGuestRoute(api fiber.Router) {
	api.Post("/register", c.CustomerController.Register)
	api.Post("/login", c.CustomerController.Login)
	api.Post("/recover-serial", c.CustomerController.RecoverSerial)
	api.Post("/check-phone", c.CustomerController.CheckPhone)
	api.Post("/validate-token", c.TokenController.Validate)
	api.Post("/refresh-token", c.TokenController.Refresh)
}

func (c *RouteConfig) SetupAdminRoute(api fiber.Router) {
	admin := api.Group("/admin", c.AdminMiddleware)
	admin.Get("/source-stats", c.AdminController.SourceStats)
	admin.Get("/dashboard-stats", c.AdminController.DashboardStats)
	admin.Post("/charge-wallet", c.AdminController.ChargeWallet)
	admin.Post("/customers/:id/deactivate", c.AdminController.Deactivate)
}

func (c *RouteConfig) SetupAuthRoute(api fiber.Router) {
	api.Get("/profile", c.AuthMiddleware, c.CustomerController.GetProfile)
	api.Get("/account-status", c.AuthMiddleware, c.CustomerController.AccountStatus)
	api.Get("/referral-stats", c.AuthMiddleware, c.CustomerController.ReferralStats)
	api.Post("/change-pin", c.AuthMiddleware, c.CustomerController.ChangePIN)
	api.Post("/update-profile", c.AuthMiddleware, c.CustomerController.UpdateProfile)
	api.Get("/wallet", c.AuthMiddleware, c.WalletController.GetWallet)
	api.Get("/wallet/transactions", c.AuthMiddleware, c.WalletController.History)
	api.Post("/purchase", c.AuthMiddleware, c.WalletController.Purchase)
}
