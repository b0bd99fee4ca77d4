package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID      string    `json:"id" gorm:"primaryKey"`
	Name    string    `json:"name" gorm:"not null"`
	Date    time.Time `json:"date" gorm:"index;not null"`
	Venue   string    `json:"venue,omitempty"`
	City    string    `json:"city,omitempty"`
	Country string    `json:"country,omitempty"`
	League  string    `json:"league" gorm:"default:'UFC';index"`

	Fights []Fight `json:"fights" gorm:"foreignKey:EventID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Fight is a single bout on an event card. Fighter1ID and Fighter2ID always
// reference two distinct fighters. WinnerID is nil for draws, no-contests and
// bouts not yet fought.
type Fight struct {
	ID         string `json:"id" gorm:"primaryKey"`
	EventID    string `json:"event_id" gorm:"index;not null"`
	Fighter1ID string `json:"fighter1_id" gorm:"index;not null"`
	Fighter2ID string `json:"fighter2_id" gorm:"index;not null"`

	WinnerID *string `json:"winner_id,omitempty"`
	Draw     bool    `json:"draw" gorm:"default:false"`

	WeightClass string `json:"weight_class"`
	Method      string `json:"method,omitempty"` // e.g. "KO/TKO", "Submission", "Decision"
	Round       *int   `json:"round,omitempty"`
	Time        string `json:"time,omitempty"`   // clock time of the finish, "4:20"
	CardOrder   int    `json:"card_order" gorm:"default:0"`

	Event    *Event   `json:"event,omitempty" gorm:"foreignKey:EventID"`
	Fighter1 *Fighter `json:"fighter1,omitempty" gorm:"foreignKey:Fighter1ID"`
	Fighter2 *Fighter `json:"fighter2,omitempty" gorm:"foreignKey:Fighter2ID"`

	Odds []FightOdds `json:"odds,omitempty" gorm:"foreignKey:FightID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Involves reports whether the fighter fought in this bout.
func (f *Fight) Involves(fighterID string) bool {
	return f.Fighter1ID == fighterID || f.Fighter2ID == fighterID
}

// OpponentOf returns the other corner's fighter id, or "" when the fighter
// was not part of the bout.
func (f *Fight) OpponentOf(fighterID string) string {
	switch fighterID {
	case f.Fighter1ID:
		return f.Fighter2ID
	case f.Fighter2ID:
		return f.Fighter1ID
	}
	return ""
}

// ResultFor classifies the bout outcome from one fighter's corner.
func (f *Fight) ResultFor(fighterID string) string {
	if f.Draw {
		return "draw"
	}
	if f.WinnerID == nil {
		return "no contest"
	}
	if *f.WinnerID == fighterID {
		return "win"
	}
	return "loss"
}
