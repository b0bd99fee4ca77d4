package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"mma-stats-system/metrics"
	"mma-stats-system/models"
	"mma-stats-system/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Hint values produced per compared attribute.
const (
	HintCorrect = "correct"
	HintHigher  = "higher"  // guess is below the target: go higher
	HintLower   = "lower"
	HintClose   = "close"
	HintWrong   = "wrong"
	HintUnknown = "unknown" // attribute missing on either side; no direction to give
)

// closeTolerance is the window, per numeric attribute, inside which a miss
// reads "close" instead of higher/lower.
var closeTolerance = map[string]float64{
	"age":    2,
	"height": 2,
	"reach":  2,
}

// HintSet maps attribute name to hint value for one guess.
type HintSet map[string]string

// ErrEmptyPool is returned when no fighter qualifies for the daily puzzle.
var ErrEmptyPool = errors.New("no eligible fighters for the daily puzzle")

// WordleService runs the daily guess-the-fighter game. Selection is a pure
// function of the calendar date and the eligible pool: no persisted state, no
// RNG, so concurrent requests and restarts always agree.
type WordleService struct {
	fighters repository.FighterStore
	location *time.Location
	now      func() time.Time
}

func NewWordleService(fighters repository.FighterStore, location *time.Location) *WordleService {
	if location == nil {
		location = time.UTC
	}
	return &WordleService{fighters: fighters, location: location, now: time.Now}
}

// puzzleDate formats the date in the reference timezone; this string is the
// whole seed, so the same calendar day picks the same fighter everywhere.
func (s *WordleService) puzzleDate(t time.Time) string {
	return t.In(s.location).Format("2006-01-02")
}

// DailyFighter deterministically selects the fighter for the given date:
// FNV-1a over the ISO date string, modulo the eligible pool. The pool is
// restricted to active fighters with every compared attribute present and is
// read in stable id order, so the pick only moves when the pool itself does.
func (s *WordleService) DailyFighter(ctx context.Context, date time.Time) (*models.Fighter, error) {
	pool, err := s.fighters.ActivePool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(s.puzzleDate(date)))
	idx := h.Sum64() % uint64(len(pool))

	fighter := pool[idx]
	return &fighter, nil
}

// ScoreGuess compares a guess against the target attribute by attribute.
// Guessing the target yields "correct" on every field. The daily target
// always carries the numeric attributes, but any fighter is a valid guess,
// so a missing number reads "unknown" instead of a direction.
func ScoreGuess(guess, target *models.Fighter) HintSet {
	hints := HintSet{
		"weight_class": categoricalHint(guess.WeightClass, target.WeightClass),
		"nationality":  categoricalHint(guess.Nationality, target.Nationality),
		"stance":       categoricalHint(guess.Stance, target.Stance),
	}

	hints["age"] = numericHint(intPointer(guess.Age), intPointer(target.Age), closeTolerance["age"])
	hints["height"] = numericHint(guess.HeightInches, target.HeightInches, closeTolerance["height"])
	hints["reach"] = numericHint(guess.ReachInches, target.ReachInches, closeTolerance["reach"])

	return hints
}

func categoricalHint(guess, target string) string {
	if guess == target {
		return HintCorrect
	}
	return HintWrong
}

func numericHint(guess, target *float64, tolerance float64) string {
	if guess == nil || target == nil {
		return HintUnknown
	}
	diff := *guess - *target
	switch {
	case diff == 0:
		return HintCorrect
	case math.Abs(diff) <= tolerance:
		return HintClose
	case diff < 0:
		return HintHigher
	default:
		return HintLower
	}
}

func intPointer(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// HandleDaily answers GET /api/wordle/daily
func (s *WordleService) HandleDaily(c *fiber.Ctx) error {
	today := s.now()
	target, err := s.DailyFighter(c.Context(), today)
	if err != nil {
		return s.poolError(c, err)
	}

	return c.JSON(fiber.Map{
		"date": s.puzzleDate(today),
		"hint": fmt.Sprintf("Today's fighter competes at %s.", target.WeightClass),
	})
}

// HandleGuess answers POST /api/wordle/guess?guess_id=<fighter_id>
func (s *WordleService) HandleGuess(c *fiber.Ctx) error {
	guessID := c.Query("guess_id")
	if guessID == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "guess_id parameter is required",
		})
	}

	guess, err := s.fighters.GetByID(c.Context(), guessID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "fighter not found",
		})
	}
	if err != nil {
		log.Error().Err(err).Str("guess_id", guessID).Msg("guess lookup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	target, err := s.DailyFighter(c.Context(), s.now())
	if err != nil {
		return s.poolError(c, err)
	}

	correct := guess.ID == target.ID
	outcome := "miss"
	if correct {
		outcome = "hit"
	}
	metrics.WordleGuessesTotal.WithLabelValues(outcome).Inc()

	return c.JSON(fiber.Map{
		"correct": correct,
		"guess":   fiber.Map{"id": guess.ID, "name": guess.Name},
		"hints":   ScoreGuess(guess, target),
	})
}

// HandleReveal answers GET /api/wordle/reveal; repeated calls on the same day
// return the identical fighter.
func (s *WordleService) HandleReveal(c *fiber.Ctx) error {
	target, err := s.DailyFighter(c.Context(), s.now())
	if err != nil {
		return s.poolError(c, err)
	}
	return c.JSON(target)
}

func (s *WordleService) poolError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrEmptyPool) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no puzzle available today",
		})
	}
	log.Error().Err(err).Msg("daily fighter selection failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
}
