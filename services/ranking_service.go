package services

import (
	"errors"
	"net/url"

	"mma-stats-system/repository"

	"github.com/gofiber/fiber/v2"
)

// RankingService serves division rankings directly.
type RankingService struct {
	store repository.RankingStore
}

func NewRankingService(store repository.RankingStore) *RankingService {
	return &RankingService{store: store}
}

// GetDivision answers GET /api/rankings/:division (division name, URL-encoded)
func (s *RankingService) GetDivision(c *fiber.Ctx) error {
	name := c.Params("division")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	division, err := s.store.DivisionByName(c.Context(), name)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "division not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	entries, err := s.store.Entries(c.Context(), division.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	SortRanking(entries)

	return c.JSON(RankingData{Division: division.Name, Entries: entries})
}
