package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	authflow "github.com/inflowhq/authflow"
)

// Handler defines a public type used by authflow APIs.
//
// Handler instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Handler struct {
	engine *authflow.Engine
	logger *zap.SugaredLogger
}

// NewHandler describes the newhandler operation and its observable behavior.
//
// NewHandler does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewHandler(engine *authflow.Engine, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{engine: engine, logger: logger}
}

type registerReq struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordReq struct {
	Email string `json:"email"`
}

type verifyResetCodeReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetPasswordReq struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type resultResp struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	res, err := h.engine.Register(c.Context(), authflow.RegisterRequest{
		FirstName: req.FirstName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	return h.respond(c, res, err, fiber.StatusBadRequest)
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	res, err := h.engine.Login(c.Context(), req.Email, req.Password)
	return h.respond(c, res, err, fiber.StatusBadRequest)
}

// ForgotPassword describes the forgotpassword operation and its observable behavior.
//
// An unknown email responds 404; the engine's outcome key travels in the body
// either way.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	res, err := h.engine.ForgotPassword(c.Context(), req.Email)
	return h.respond(c, res, err, fiber.StatusNotFound)
}

// VerifyResetCode describes the verifyresetcode operation and its observable behavior.
//
// VerifyResetCode may return an error when input validation, dependency calls, or security checks fail.
func (h *Handler) VerifyResetCode(c *fiber.Ctx) error {
	var req verifyResetCodeReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	res, err := h.engine.VerifyResetCode(c.Context(), req.Email, req.Code)
	return h.respond(c, res, err, fiber.StatusBadRequest)
}

// ResetPassword describes the resetpassword operation and its observable behavior.
//
// ResetPassword may return an error when input validation, dependency calls, or security checks fail.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	res, err := h.engine.ResetPassword(c.Context(), req.Email, req.Code, req.NewPassword)
	return h.respond(c, res, err, fiber.StatusBadRequest)
}

// respond maps an engine outcome onto the HTTP envelope. rejectStatus is the
// status used for business rejections of this operation.
func (h *Handler) respond(c *fiber.Ctx, res authflow.Result, err error, rejectStatus int) error {
	if err != nil {
		requestID, _ := c.Locals(requestIDKey).(string)
		h.logger.Errorw("engine operation failed",
			"path", c.Path(),
			"request_id", requestID,
			"error", err,
		)

		if errors.Is(err, authflow.ErrNotifyFailed) {
			// The reset code is persisted; only delivery failed.
			return c.Status(fiber.StatusBadGateway).JSON(resultResp{
				Success: false,
				Key:     authflow.KeyResetCodeSent.String(),
				Message: "reset code stored but notification delivery failed",
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	status := fiber.StatusOK
	if !res.Success {
		status = rejectStatus
	}
	return c.Status(status).JSON(resultResp{
		Success: res.Success,
		Key:     res.Key.String(),
		Message: res.Message,
	})
}
