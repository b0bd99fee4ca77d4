package services

import (
	"errors"
	"time"

	"mma-stats-system/models"
	"mma-stats-system/repository"

	"github.com/gofiber/fiber/v2"
)

// EventService serves the direct event endpoints.
type EventService struct {
	store repository.EventStore
	now   func() time.Time
}

func NewEventService(store repository.EventStore) *EventService {
	return &EventService{store: store, now: time.Now}
}

// GetByID answers GET /api/events/:id with the card's fights preloaded
func (s *EventService) GetByID(c *fiber.Ctx) error {
	event, err := s.store.GetByID(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(event)
}

// GetNext answers GET /api/events/next
func (s *EventService) GetNext(c *fiber.Ctx) error {
	return s.byDirection(c, DirectionNext)
}

// GetLast answers GET /api/events/last
func (s *EventService) GetLast(c *fiber.Ctx) error {
	return s.byDirection(c, DirectionLast)
}

func (s *EventService) byDirection(c *fiber.Ctx, direction string) error {
	var (
		event *models.Event
		err   error
	)
	if direction == DirectionLast {
		event, err = s.store.Last(c.Context(), s.now())
	} else {
		event, err = s.store.Next(c.Context(), s.now())
	}

	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no event found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(event)
}
