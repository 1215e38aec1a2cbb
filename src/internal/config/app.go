package config

import (
	"customer-service/src/internal/delivery/http"
	"customer-service/src/internal/delivery/http/middleware"
	"customer-service/src/internal/delivery/http/route"
	"customer-service/src/internal/gateway/messaging"
	"customer-service/src/internal/repository"
	"customer-service/src/internal/usecase"
	"customer-service/src/pkg/databases/rdbms"
	kafkaPkgSarama "customer-service/src/pkg/kafka/sarama"
	"customer-service/src/pkg/log"
	"customer-service/src/pkg/token"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB       rdbms.DBInterface
	App      *fiber.App
	Log      log.Log
	Validate *validator.Validate
	Config   *viper.Viper
	Producer kafkaPkgSarama.Producer
	Redis    redis.UniversalClient
	Issuer   *token.Issuer
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	transactor := rdbms.NewTransactor(config.DB)
	customerRepository := repository.NewCustomerRepository(config.DB)
	walletRepository := repository.NewWalletRepository(config.DB)
	sourceRepository := repository.NewSourceRepository(config.DB)
	auditRepository := repository.NewAuditRepository(config.DB)
	statsRepository := repository.NewStatsRepository(config.DB)
	customerProducer := messaging.NewCustomerProducer(config.Producer, config.Log)
	walletProducer := messaging.NewWalletProducer(config.Producer, config.Log)
	policy := usecase.LedgerPolicyFromViper(config.Config)

	// setup use cases
	walletUseCase := usecase.NewWalletUseCase(
		config.Log,
		config.Validate,
		walletRepository,
		customerRepository,
		walletProducer,
	)
	referralUseCase := usecase.NewReferralUseCase(
		config.Log,
		transactor,
		customerRepository,
		walletUseCase,
		policy,
	)
	tokenUseCase := usecase.NewTokenUseCase(
		config.Log,
		config.Validate,
		config.Issuer,
		customerRepository,
		auditRepository,
	)
	customerUseCase := usecase.NewCustomerUseCase(
		config.Log,
		config.Validate,
		transactor,
		customerRepository,
		sourceRepository,
		walletRepository,
		walletUseCase,
		referralUseCase,
		tokenUseCase,
		NewLimiter(config.Config, config.Redis),
		customerProducer,
		policy,
	)
	statsUseCase := usecase.NewStatsUseCase(config.Log, statsRepository)

	// setup controller
	customerController := http.NewCustomerController(customerUseCase, referralUseCase, config.Log)
	walletController := http.NewWalletController(walletUseCase, config.Log)
	tokenController := http.NewTokenController(tokenUseCase, config.Log)
	adminController := http.NewAdminController(statsUseCase, customerUseCase, walletUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(tokenUseCase)
	adminMiddleware := middleware.RequireAdminKey(config.Config.GetString("admin.api_key"))

	routeConfig := route.RouteConfig{
		App:                config.App,
		CustomerController: customerController,
		WalletController:   walletController,
		TokenController:    tokenController,
		AdminController:    adminController,
		AuthMiddleware:     authMiddleware,
		AdminMiddleware:    adminMiddleware,
	}
	routeConfig.Setup()
}
