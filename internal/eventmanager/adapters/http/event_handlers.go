package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"eventmanager/internal/eventmanager/adapters/http/dto"
	"eventmanager/internal/eventmanager/app"
	"eventmanager/internal/eventmanager/domain/entities"
	"eventmanager/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerCreateEvent   = "handling create event request"
	LogHandlerGetEvent      = "handling get event request"
	LogHandlerUpdateEvent   = "handling update event request"
	LogHandlerDeleteEvent   = "handling delete event request"
	LogHandlerListEvents    = "handling list events request"
	LogHandlerListUpcoming  = "handling list upcoming events request"
	LogHandlerListPastEvent = "handling list past events request"
)

// EventHandler обрабатывает HTTP-запросы управления событиями.
type EventHandler struct {
	events *app.EventUseCase
}

// NewEventHandler создает новый обработчик событий.
func NewEventHandler(events *app.EventUseCase) *EventHandler {
	return &EventHandler{events: events}
}

// bindEventInput разбирает и проверяет тело запроса события.
func bindEventInput(ctx fiber.Ctx) (app.EventInput, error) {
	var req dto.EventRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return app.EventInput{}, fmt.Errorf("%s: %w", ErrMsgInvalidRequestBody, err)
	}

	if req.Name == "" {
		return app.EventInput{}, entities.ErrEmptyEventName
	}
	if err := entities.ValidateDate(req.Date); err != nil {
		return app.EventInput{}, err
	}
	if err := entities.ValidateTime(req.Time); err != nil {
		return app.EventInput{}, err
	}
	duration, err := entities.ParseDuration(req.Duration)
	if err != nil {
		return app.EventInput{}, err
	}

	return app.EventInput{
		Name:        req.Name,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    duration,
		Location:    req.Location,
		Description: req.Description,
	}, nil
}

// Create обрабатывает запрос на создание события.
func (h *EventHandler) Create(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "EventHandler.Create"))
	log.Debug(reqCtx, LogHandlerCreateEvent)

	input, err := bindEventInput(ctx)
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleError(ctx, err)
	}

	event, err := h.events.Create(reqCtx, input)
	if err != nil {
		log.Error(reqCtx, "failed to create event", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.FromEvent(event)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Get обрабатывает запрос события по ID.
func (h *EventHandler) Get(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "EventHandler.Get"))
	log.Debug(reqCtx, LogHandlerGetEvent)

	eventID := ctx.Params("event_id")
	if eventID == "" {
		return badRequest(ctx, ErrMsgInvalidEventID)
	}

	event, err := h.events.Get(eventID)
	if err != nil {
		log.Debug(reqCtx, "failed to get event", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.FromEvent(event)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Update обрабатывает запрос на обновление события.
func (h *EventHandler) Update(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "EventHandler.Update"))
	log.Debug(reqCtx, LogHandlerUpdateEvent)

	eventID := ctx.Params("event_id")
	if eventID == "" {
		return badRequest(ctx, ErrMsgInvalidEventID)
	}

	input, err := bindEventInput(ctx)
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleError(ctx, err)
	}

	event, err := h.events.Update(reqCtx, eventID, input)
	if err != nil {
		log.Error(reqCtx, "failed to update event", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.FromEvent(event)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Delete обрабатывает запрос на удаление события.
func (h *EventHandler) Delete(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "EventHandler.Delete"))
	log.Debug(reqCtx, LogHandlerDeleteEvent)

	eventID := ctx.Params("event_id")
	if eventID == "" {
		return badRequest(ctx, ErrMsgInvalidEventID)
	}

	if err := h.events.Delete(reqCtx, eventID); err != nil {
		log.Error(reqCtx, "failed to delete event", zap.Error(err))
		return handleError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// List возвращает все события активного пользователя в порядке добавления.
func (h *EventHandler) List(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "EventHandler.List"))
	log.Debug(reqCtx, LogHandlerListEvents)

	if err := ctx.JSON(dto.FromEvents(h.events.Events())); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Upcoming возвращает предстоящие события по возрастанию даты.
func (h *EventHandler) Upcoming(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "EventHandler.Upcoming"))
	log.Debug(reqCtx, LogHandlerListUpcoming)

	if err := ctx.JSON(dto.FromEvents(h.events.Upcoming())); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Past возвращает прошедшие события по убыванию даты.
func (h *EventHandler) Past(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "EventHandler.Past"))
	log.Debug(reqCtx, LogHandlerListPastEvent)

	if err := ctx.JSON(dto.FromEvents(h.events.Past())); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
