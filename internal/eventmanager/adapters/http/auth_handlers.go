package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"eventmanager/internal/eventmanager/adapters/http/dto"
	"eventmanager/internal/eventmanager/app"
	"eventmanager/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerLogin    = "handling login request"
	LogHandlerRegister = "handling register request"
	LogHandlerLogout   = "handling logout request"
	LogHandlerSession  = "handling session request"
)

// AuthHandler обрабатывает HTTP-запросы аутентификации.
type AuthHandler struct {
	auth *app.AuthUseCase
}

// NewAuthHandler создает новый обработчик аутентификации.
func NewAuthHandler(auth *app.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login обрабатывает запрос на вход. Любая пара email/пароль принимается.
func (h *AuthHandler) Login(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "AuthHandler.Login"))
	log.Debug(reqCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if req.Email == "" {
		return badRequest(ctx, "email is required")
	}

	user, err := h.auth.Login(reqCtx, req.Email, req.Password)
	if err != nil {
		log.Error(reqCtx, "failed to log in", zap.Error(err))
		return handleError(ctx, err)
	}

	resp := dto.SessionResponse{State: string(app.SessionAuthenticated), User: dto.FromUser(user)}
	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Register обрабатывает запрос на регистрацию.
func (h *AuthHandler) Register(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "AuthHandler.Register"))
	log.Debug(reqCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if req.Email == "" {
		return badRequest(ctx, "email is required")
	}

	user, err := h.auth.Register(reqCtx, app.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		log.Error(reqCtx, "failed to register", zap.Error(err))
		return handleError(ctx, err)
	}

	resp := dto.SessionResponse{State: string(app.SessionAuthenticated), User: dto.FromUser(user)}
	if err := ctx.Status(fiber.StatusCreated).JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос на выход.
func (h *AuthHandler) Logout(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "AuthHandler.Logout"))
	log.Debug(reqCtx, LogHandlerLogout)

	if err := h.auth.Logout(reqCtx); err != nil {
		log.Error(reqCtx, "failed to log out", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.SessionResponse{State: string(app.SessionUnauthenticated)}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Session возвращает состояние активной сессии.
func (h *AuthHandler) Session(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "AuthHandler.Session"))
	log.Debug(reqCtx, LogHandlerSession)

	resp := dto.SessionResponse{State: string(h.auth.State())}
	if user, ok := h.auth.CurrentUser(); ok {
		resp.User = dto.FromUser(user)
	}

	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
