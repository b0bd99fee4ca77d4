package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mma-stats-system/models"

	"gorm.io/gorm"
)

// NewGormStore wires the GORM-backed implementations of every store.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Fighters: &gormFighterStore{db: db},
		Fights:   &gormFightStore{db: db},
		Events:   &gormEventStore{db: db},
		Rankings: &gormRankingStore{db: db},
		Odds:     &gormOddsStore{db: db},
	}
}

type gormFighterStore struct {
	db *gorm.DB
}

func (s *gormFighterStore) GetByID(ctx context.Context, id string) (*models.Fighter, error) {
	var fighter models.Fighter
	if err := s.db.WithContext(ctx).First(&fighter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get fighter: %w", err)
	}
	return &fighter, nil
}

func (s *gormFighterStore) GetBySlug(ctx context.Context, slug string) (*models.Fighter, error) {
	var fighter models.Fighter
	if err := s.db.WithContext(ctx).First(&fighter, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get fighter by slug: %w", err)
	}
	return &fighter, nil
}

func (s *gormFighterStore) SearchByName(ctx context.Context, name string) ([]models.Fighter, error) {
	needle := NormalizeName(name)
	if needle == "" {
		return nil, nil
	}
	var fighters []models.Fighter
	if err := s.db.WithContext(ctx).
		Where("name_normalized LIKE ?", "%"+needle+"%").
		Order("name").
		Find(&fighters).Error; err != nil {
		return nil, fmt.Errorf("failed to search fighters: %w", err)
	}
	return fighters, nil
}

func (s *gormFighterStore) ActivePool(ctx context.Context) ([]models.Fighter, error) {
	var fighters []models.Fighter
	if err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Where("weight_class <> ''").
		Where("nationality <> ''").
		Where("age IS NOT NULL").
		Where("height_inches IS NOT NULL").
		Where("reach_inches IS NOT NULL").
		Order("id").
		Find(&fighters).Error; err != nil {
		return nil, fmt.Errorf("failed to load active fighter pool: %w", err)
	}
	return fighters, nil
}

type gormFightStore struct {
	db *gorm.DB
}

func (s *gormFightStore) ByFighter(ctx context.Context, fighterID string) ([]models.Fight, error) {
	var fights []models.Fight
	if err := s.db.WithContext(ctx).
		Preload("Event").
		Preload("Fighter1").
		Preload("Fighter2").
		Joins("JOIN events ON events.id = fights.event_id").
		Where("fights.fighter1_id = ? OR fights.fighter2_id = ?", fighterID, fighterID).
		Order("events.date DESC").
		Find(&fights).Error; err != nil {
		return nil, fmt.Errorf("failed to list fights for fighter: %w", err)
	}
	return fights, nil
}

func (s *gormFightStore) Finished(ctx context.Context) ([]models.Fight, error) {
	var fights []models.Fight
	if err := s.db.WithContext(ctx).
		Where("winner_id IS NOT NULL OR draw = ?", true).
		Find(&fights).Error; err != nil {
		return nil, fmt.Errorf("failed to list finished fights: %w", err)
	}
	return fights, nil
}

type gormEventStore struct {
	db *gorm.DB
}

func (s *gormEventStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).
		Preload("Fights").
		Preload("Fights.Fighter1").
		Preload("Fights.Fighter2").
		First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (s *gormEventStore) Next(ctx context.Context, after time.Time) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).
		Where("date >= ?", after).
		Order("date ASC").
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get next event: %w", err)
	}
	return &event, nil
}

func (s *gormEventStore) Last(ctx context.Context, before time.Time) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).
		Where("date < ?", before).
		Order("date DESC").
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get last event: %w", err)
	}
	return &event, nil
}

type gormRankingStore struct {
	db *gorm.DB
}

func (s *gormRankingStore) DivisionByName(ctx context.Context, name string) (*models.Division, error) {
	var division models.Division
	if err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&division).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get division: %w", err)
	}
	return &division, nil
}

func (s *gormRankingStore) Entries(ctx context.Context, divisionID string) ([]models.RankingEntry, error) {
	var entries []models.RankingEntry
	if err := s.db.WithContext(ctx).
		Preload("Fighter").
		Where("division_id = ?", divisionID).
		Order("rank ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list ranking entries: %w", err)
	}
	return entries, nil
}

type gormOddsStore struct {
	db *gorm.DB
}

func (s *gormOddsStore) ByFight(ctx context.Context, fightID string) ([]models.FightOdds, error) {
	var odds []models.FightOdds
	if err := s.db.WithContext(ctx).
		Where("fight_id = ?", fightID).
		Find(&odds).Error; err != nil {
		return nil, fmt.Errorf("failed to list odds for fight: %w", err)
	}
	return odds, nil
}
