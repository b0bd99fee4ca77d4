package services

import (
	"context"
	"fmt"
	"time"

	"mma-stats-system/metrics"
	"mma-stats-system/models"
	"mma-stats-system/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsService aggregates betting outcomes (did the closing favorite
// win?) into per-league and per-division snapshots, refreshed on a schedule.
type AnalyticsService struct {
	DB     *gorm.DB
	fights repository.FightStore
	odds   repository.OddsStore
	events repository.EventStore
}

func NewAnalyticsService(db *gorm.DB, store *repository.Store) *AnalyticsService {
	return &AnalyticsService{DB: db, fights: store.Fights, odds: store.Odds, events: store.Events}
}

// fightOutcome pairs a decided fight with its favorite's result.
type fightOutcome struct {
	league      string
	weightClass string
	favoriteWon bool
	draw        bool
}

// AggregateOutcomes folds decided fights with known odds into per-key tallies.
// Fights without a favored corner are skipped.
func AggregateOutcomes(outcomes []fightOutcome) map[string]*models.AnalyticsSnapshot {
	snapshots := make(map[string]*models.AnalyticsSnapshot)

	bump := func(scope, key string, o fightOutcome) {
		if key == "" {
			return
		}
		id := scope + ":" + key
		snap, ok := snapshots[id]
		if !ok {
			snap = &models.AnalyticsSnapshot{Scope: scope, Key: key}
			snapshots[id] = snap
		}
		snap.SampleSize++
		switch {
		case o.draw:
			snap.Draws++
		case o.favoriteWon:
			snap.FavoriteWins++
		default:
			snap.UnderdogWins++
		}
		if decided := snap.FavoriteWins + snap.UnderdogWins; decided > 0 {
			snap.FavoriteWinRate = float64(snap.FavoriteWins) / float64(decided)
		}
	}

	for _, o := range outcomes {
		bump(models.AnalyticsScopeLeague, o.league, o)
		bump(models.AnalyticsScopeDivision, o.weightClass, o)
	}
	return snapshots
}

// Refresh recomputes every snapshot from the finished fights that carry odds.
func (s *AnalyticsService) Refresh(ctx context.Context) error {
	fights, err := s.fights.Finished(ctx)
	if err != nil {
		return fmt.Errorf("failed to load finished fights: %w", err)
	}

	var outcomes []fightOutcome
	for _, fight := range fights {
		lines, err := s.odds.ByFight(ctx, fight.ID)
		if err != nil {
			return fmt.Errorf("failed to load odds: %w", err)
		}

		var favoriteID string
		best := 0
		for _, line := range lines {
			if line.Closing < best {
				best = line.Closing
				favoriteID = line.FighterID
			}
		}
		if favoriteID == "" {
			continue // pick'em or no line recorded
		}

		league := ""
		if event, err := s.events.GetByID(ctx, fight.EventID); err == nil {
			league = event.League
		}

		outcomes = append(outcomes, fightOutcome{
			league:      league,
			weightClass: fight.WeightClass,
			favoriteWon: fight.WinnerID != nil && *fight.WinnerID == favoriteID,
			draw:        fight.Draw,
		})
	}

	now := time.Now()
	for _, snap := range AggregateOutcomes(outcomes) {
		snap.ID = uuid.NewString()
		snap.ComputedAt = now
		if err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "scope"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"favorite_wins", "underdog_wins", "draws",
				"favorite_win_rate", "sample_size", "computed_at",
			}),
		}).Create(snap).Error; err != nil {
			return fmt.Errorf("failed to upsert snapshot %s/%s: %w", snap.Scope, snap.Key, err)
		}
	}

	metrics.AnalyticsRunsTotal.Inc()
	log.Info().Int("fights", len(outcomes)).Msg("betting analytics refreshed")
	return nil
}

// GetSnapshots answers GET /api/analytics/betting?scope=league|division
func (s *AnalyticsService) GetSnapshots(c *fiber.Ctx) error {
	scope := c.Query("scope", models.AnalyticsScopeLeague)
	if scope != models.AnalyticsScopeLeague && scope != models.AnalyticsScopeDivision {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "scope must be league or division",
		})
	}

	var snapshots []models.AnalyticsSnapshot
	if err := s.DB.Where("scope = ?", scope).Order("key").Find(&snapshots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fiber.Map{"scope": scope, "snapshots": snapshots})
}
