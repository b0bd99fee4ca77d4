package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"mma-stats-system/models"
	"mma-stats-system/repository"
	"mma-stats-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FighterService serves the direct fighter endpoints and the maintenance
// write surface the out-of-band importers use.
type FighterService struct {
	DB    *gorm.DB
	store repository.FighterStore
}

func NewFighterService(db *gorm.DB, store repository.FighterStore) *FighterService {
	return &FighterService{DB: db, store: store}
}

// GetByID answers GET /api/fighters/:id
func (s *FighterService) GetByID(c *fiber.Ctx) error {
	fighter, err := s.store.GetByID(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "fighter not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fighter)
}

// GetBySlug answers GET /api/fighters/slug/:slug
func (s *FighterService) GetBySlug(c *fiber.Ctx) error {
	fighter, err := s.store.GetBySlug(c.Context(), c.Params("slug"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "fighter not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fighter)
}

// Upsert answers POST /admin/fighters with a fighter JSON body. The
// maintenance scrapers push through here; name lookups depend on the
// normalized column this path maintains.
func (s *FighterService) Upsert(c *fiber.Ctx) error {
	var fighter models.Fighter
	if err := c.BodyParser(&fighter); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid fighter payload"})
	}
	if fighter.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "name is required"})
	}

	if fighter.ID == "" {
		fighter.ID = uuid.NewString()
	}
	prepareFighter(&fighter)

	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&fighter).Error; err != nil {
		log.Error().Err(err).Str("fighter", fighter.Name).Msg("fighter upsert failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upsert fighter"})
	}

	return c.Status(fiber.StatusCreated).JSON(fighter)
}

// UploadImage answers POST /admin/fighters/:id/image with a multipart "image"
// file, stored in the media bucket (or local uploads when unconfigured).
func (s *FighterService) UploadImage(c *fiber.Ctx) error {
	var fighter models.Fighter
	if err := s.DB.First(&fighter, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "fighter not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "image file is required"})
	}

	key := "fighters/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	url, err := utils.StoreMedia(fileHeader, key)
	if err != nil {
		log.Error().Err(err).Str("fighter_id", fighter.ID).Msg("image upload failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store image"})
	}

	fighter.ImageURL = url
	if err := s.DB.Save(&fighter).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update fighter"})
	}

	return c.JSON(fiber.Map{"id": fighter.ID, "image_url": url})
}

// prepareFighter fills the derived columns every write path must maintain.
func prepareFighter(fighter *models.Fighter) {
	fighter.NameNormalized = repository.NormalizeName(fighter.Name)
	if fighter.Slug == "" {
		fighter.Slug = slug.Make(fighter.Name)
	}
	fighter.UpdatedAt = time.Now()
}

// upsertFighters bulk-upserts an imported batch; shared with the dataset
// importer.
func upsertFighters(db *gorm.DB, fighters []models.Fighter) (int, error) {
	count := 0
	for i := range fighters {
		if fighters[i].Name == "" {
			continue
		}
		if fighters[i].ID == "" {
			fighters[i].ID = uuid.NewString()
		}
		prepareFighter(&fighters[i])
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&fighters[i]).Error; err != nil {
			return count, fmt.Errorf("failed to upsert fighter %q: %w", fighters[i].Name, err)
		}
		count++
	}
	return count, nil
}
