package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customer-service/src/internal/config"
	"customer-service/src/pkg/databases/migration"
	"customer-service/src/pkg/log"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "customer-service",
		Short:        "Customer accounts, wallets and session tokens",
		SilenceUsage: true,
	}
	root.AddCommand(serveCommand(), migrateCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and seed the default sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			viperConfig := config.NewViper()
			log.InitLogger(viperConfig)
			logger := log.GetLogger()

			db, err := config.NewDatabase(viperConfig, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			sqlDB, err := db.GetDB()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			if err := migration.Apply(ctx, sqlDB, db.Dialect()); err != nil {
				logger.Error("main", err.Error(), "migrate", string(db.Dialect()))
				return err
			}
			logger.Info("main", "schema applied", "migrate", string(db.Dialect()))
			return nil
		},
	}
}

func serve() error {
	viperConfig := config.NewViper()
	log.InitLogger(viperConfig)
	logger := log.GetLogger()

	db, err := config.NewDatabase(viperConfig, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := config.NewRedis(viperConfig, logger)
	if err != nil {
		logger.Error("main", fmt.Sprintf("redis unavailable, falling back to in-memory throttle: %v", err), "serve", "")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	producer, err := config.NewKafkaProducer(viperConfig, logger)
	if err != nil {
		return err
	}
	if producer != nil {
		defer producer.Close()
	}

	issuer, err := config.NewTokenIssuer(viperConfig)
	if err != nil {
		return err
	}

	app := config.NewFiber(viperConfig)
	config.Bootstrap(&config.BootstrapConfig{
		DB:       db,
		App:      app,
		Log:      logger,
		Validate: config.NewValidator(viperConfig),
		Config:   viperConfig,
		Producer: producer,
		Redis:    redisClient,
		Issuer:   issuer,
	})

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("main", "Server customer-service is shutting down...", "graceful", "")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
		}
		close(done)
	}()

	webPort := viperConfig.GetInt("web.port")
	if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
		logger.Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
		return err
	}

	<-done
	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "graceful", "")
	return nil
}
