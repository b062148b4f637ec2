package middlewares

import (
	"time"

	"operator_console/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	//HeaderRequestID request id header name
	HeaderRequestID = "X-Request-Id"

	//LocalRequestID request id, set c.locals name
	LocalRequestID = "RequestID"
)

// RequestIDMiddleware 沿用 client 帶來的 request id，沒有則產生一個
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Locals(LocalRequestID, requestID)
		c.Set(HeaderRequestID, requestID)

		return c.Next()
	}
}

// AccessLogMiddleware 每個請求一行 log
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		requestID, _ := c.Locals(LocalRequestID).(string)
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		}
		if status >= fiber.StatusInternalServerError {
			logger.Log.Error("request failed", fields...)
		} else {
			logger.Log.Debug("request", fields...)
		}
		return err
	}
}

// RequestID 取得目前請求的 request id
func RequestID(c *fiber.Ctx) string {
	requestID, _ := c.Locals(LocalRequestID).(string)
	return requestID
}
