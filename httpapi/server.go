package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authflow "github.com/inflowhq/authflow"
)

const requestIDKey = "request_id"

// New initializes the Fiber application with middlewares and routes.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(engine *authflow.Engine, logger *zap.SugaredLogger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Use(requestID())
	app.Use(requestLogger(logger))

	handler := NewHandler(engine, logger)

	api := app.Group("/api/auth")
	api.Post("/register", handler.Register)
	api.Post("/login", handler.Login)
	api.Post("/forgot-password", handler.ForgotPassword)
	api.Post("/verify-resetcode", handler.VerifyResetCode)
	api.Post("/reset-password", handler.ResetPassword)

	return app
}

// requestID tags every request with a UUID, echoed in X-Request-ID.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}

func requestLogger(logger *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)
		status := c.Response().StatusCode()
		requestID, _ := c.Locals(requestIDKey).(string)

		if err != nil {
			logger.Errorw("http request error",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"latency", latency,
				"request_id", requestID,
				"error", err,
			)
			return err
		}
		logger.Infow("http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", latency,
			"request_id", requestID,
		)
		return nil
	}
}
