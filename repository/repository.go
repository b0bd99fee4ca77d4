package repository

import (
	"context"
	"errors"
	"time"

	"mma-stats-system/models"
)

// ErrNotFound is returned by lookups that matched nothing.
var ErrNotFound = errors.New("record not found")

// FighterStore is the read surface the query core needs for fighters.
type FighterStore interface {
	GetByID(ctx context.Context, id string) (*models.Fighter, error)
	GetBySlug(ctx context.Context, slug string) (*models.Fighter, error)
	// SearchByName returns fighters whose normalized name contains the
	// normalized needle (case- and accent-insensitive).
	SearchByName(ctx context.Context, name string) ([]models.Fighter, error)
	// ActivePool returns active fighters carrying every puzzle attribute,
	// in stable id order.
	ActivePool(ctx context.Context) ([]models.Fighter, error)
}

// FightStore lists bouts.
type FightStore interface {
	// ByFighter returns all fights involving the fighter, event preloaded,
	// ordered by event date descending.
	ByFighter(ctx context.Context, fighterID string) ([]models.Fight, error)
	// Finished returns all fights with a decided outcome (winner or draw).
	Finished(ctx context.Context) ([]models.Fight, error)
}

// EventStore resolves events by date window.
type EventStore interface {
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// Next returns the chronologically nearest event with date >= after.
	Next(ctx context.Context, after time.Time) (*models.Event, error)
	// Last returns the chronologically nearest event with date < before.
	Last(ctx context.Context, before time.Time) (*models.Event, error)
}

// RankingStore resolves division rankings.
type RankingStore interface {
	// DivisionByName matches a division case-insensitively by name.
	DivisionByName(ctx context.Context, name string) (*models.Division, error)
	// Entries returns the division's entries with fighters preloaded,
	// champion first, then rank ascending.
	Entries(ctx context.Context, divisionID string) ([]models.RankingEntry, error)
}

// OddsStore lists betting lines for the analytics aggregation.
type OddsStore interface {
	ByFight(ctx context.Context, fightID string) ([]models.FightOdds, error)
}

// Store bundles the read-only stores the services consume.
type Store struct {
	Fighters FighterStore
	Fights   FightStore
	Events   EventStore
	Rankings RankingStore
	Odds     OddsStore
}
