package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"eventmanager/internal/eventmanager/adapters/http/dto"
	"eventmanager/internal/eventmanager/catalog"
	"eventmanager/pkg/logger"
)

// VenueHandler отдает статический каталог площадок.
type VenueHandler struct{}

// NewVenueHandler создает обработчик каталога площадок.
func NewVenueHandler() *VenueHandler {
	return &VenueHandler{}
}

// List возвращает каталог площадок.
func (h *VenueHandler) List(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "VenueHandler.List"))

	venues, err := catalog.Venues()
	if err != nil {
		log.Error(reqCtx, "failed to load venue catalog", zap.Error(err))
		return handleError(ctx, err)
	}

	resp := dto.VenuesResponse{Venues: make([]dto.Venue, 0, len(venues))}
	for _, v := range venues {
		resp.Venues = append(resp.Venues, dto.Venue{
			ID:        v.ID,
			Name:      v.Name,
			Capacity:  v.Capacity,
			Amenities: v.Amenities,
		})
	}

	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
