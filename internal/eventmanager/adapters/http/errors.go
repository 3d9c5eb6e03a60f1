// Package http содержит HTTP-обработчики поверх бизнес-логики менеджера событий.
package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"eventmanager/internal/eventmanager/adapters/http/middleware"
	"eventmanager/internal/eventmanager/domain/entities"
)

// Сообщения об ошибках для клиента.
const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidEventID     = "invalid event id"
)

// requestContext извлекает обогащенный контекст запроса из Locals.
func requestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context); ok {
		return reqCtx
	}
	return ctx.Context() // Запасной вариант
}

// handleError преобразует доменные ошибки в HTTP-статусы.
func handleError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, entities.ErrNoActiveSession):
		status = fiber.StatusUnauthorized
	case errors.Is(err, entities.ErrEventNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, entities.ErrEmailAlreadyRegistered):
		status = fiber.StatusConflict
	case errors.Is(err, entities.ErrEmptyEventName),
		errors.Is(err, entities.ErrInvalidDate),
		errors.Is(err, entities.ErrInvalidTime),
		errors.Is(err, entities.ErrInvalidDuration):
		status = fiber.StatusBadRequest
	}

	if sendErr := ctx.Status(status).JSON(fiber.Map{"error": err.Error()}); sendErr != nil {
		return fmt.Errorf("error sending response: %w", sendErr)
	}
	return nil
}

func badRequest(ctx fiber.Ctx, msg string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}
