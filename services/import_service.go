package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mma-stats-system/models"
	"mma-stats-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImportService ingests dataset archives produced by the out-of-band
// maintenance scrapers: a zip holding fighters.json, events.json (fights
// embedded) and odds.json, any subset.
type ImportService struct {
	DB *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{DB: db}
}

// HandleImport answers POST /admin/import with a multipart "dataset" zip.
func (s *ImportService) HandleImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("dataset")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "dataset file is required"})
	}

	workDir, err := os.MkdirTemp("", "dataset-import-*")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to stage import"})
	}
	defer os.RemoveAll(workDir)

	archivePath := filepath.Join(workDir, "dataset.zip")
	if err := c.SaveFile(fileHeader, archivePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save archive"})
	}

	extractDir := filepath.Join(workDir, "extracted")
	if err := utils.ExtractArchive(archivePath, extractDir); err != nil {
		log.Warn().Err(err).Msg("dataset archive rejected")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid dataset archive"})
	}

	counts, err := s.importDir(extractDir)
	if err != nil {
		log.Error().Err(err).Msg("dataset import failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "import failed"})
	}

	log.Info().
		Int("fighters", counts.Fighters).
		Int("events", counts.Events).
		Int("fights", counts.Fights).
		Int("odds", counts.Odds).
		Msg("dataset imported")
	return c.JSON(counts)
}

// ImportCounts reports what one archive contributed.
type ImportCounts struct {
	Fighters int `json:"fighters"`
	Events   int `json:"events"`
	Fights   int `json:"fights"`
	Odds     int `json:"odds"`
}

func (s *ImportService) importDir(dir string) (*ImportCounts, error) {
	counts := &ImportCounts{}

	var fighters []models.Fighter
	if ok, err := decodeIfPresent(filepath.Join(dir, "fighters.json"), &fighters); err != nil {
		return nil, err
	} else if ok {
		n, err := upsertFighters(s.DB, fighters)
		if err != nil {
			return nil, err
		}
		counts.Fighters = n
	}

	var events []models.Event
	if ok, err := decodeIfPresent(filepath.Join(dir, "events.json"), &events); err != nil {
		return nil, err
	} else if ok {
		for i := range events {
			if err := s.upsertEvent(&events[i], counts); err != nil {
				return nil, err
			}
			counts.Events++
		}
	}

	var odds []models.FightOdds
	if ok, err := decodeIfPresent(filepath.Join(dir, "odds.json"), &odds); err != nil {
		return nil, err
	} else if ok {
		for i := range odds {
			if odds[i].ID == "" {
				odds[i].ID = uuid.NewString()
			}
			if err := s.DB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "fight_id"}, {Name: "fighter_id"}},
				UpdateAll: true,
			}).Create(&odds[i]).Error; err != nil {
				return nil, fmt.Errorf("failed to upsert odds: %w", err)
			}
			counts.Odds++
		}
	}

	return counts, nil
}

func (s *ImportService) upsertEvent(event *models.Event, counts *ImportCounts) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	fights := event.Fights
	event.Fights = nil

	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(event).Error; err != nil {
		return fmt.Errorf("failed to upsert event %q: %w", event.Name, err)
	}

	for i := range fights {
		fight := &fights[i]
		if fight.Fighter1ID == "" || fight.Fighter2ID == "" || fight.Fighter1ID == fight.Fighter2ID {
			return fmt.Errorf("fight on %q must reference two distinct fighters", event.Name)
		}
		if fight.ID == "" {
			fight.ID = uuid.NewString()
		}
		fight.EventID = event.ID
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(fight).Error; err != nil {
			return fmt.Errorf("failed to upsert fight on %q: %w", event.Name, err)
		}
		counts.Fights++
	}
	return nil
}

// decodeIfPresent decodes the JSON file into out when it exists; the bool
// reports presence.
func decodeIfPresent(path string, out any) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
