package middleware

import (
	"fmt"
	"time"

	"customer-service/src/pkg/log"
	"customer-service/src/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

const slowRequest = time.Second

func NewLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		if err != nil {
			if handlerErr := ctx.App().ErrorHandler(ctx, err); handlerErr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		took := time.Since(start)
		status := ctx.Response().StatusCode()
		metrics.ObserveHTTP(ctx.Method(), ctx.Route().Path, status, took)

		logger := log.GetLogger()
		meta := fmt.Sprintf("%s %s %d %s", ctx.Method(), ctx.OriginalURL(), status, took)
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("http", "request failed", "middleware", meta)
		case took > slowRequest:
			logger.Slow("http", "slow request", "middleware", meta)
		default:
			logger.Info("http", "request", "middleware", meta)
		}
		return nil
	}
}
