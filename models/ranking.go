package models

import "time"

const (
	// ChampionRank is the sentinel rank for a division's champion.
	ChampionRank = 0

	GenderMale   = "male"
	GenderFemale = "female"
)

// Division groups ranked fighters under one weight class (or a P4P list).
type Division struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"uniqueIndex;not null"`
	League string `json:"league" gorm:"default:'UFC'"`

	// P4P lists are cross-division and gender-partitioned
	PoundForPound bool   `json:"pound_for_pound" gorm:"default:false"`
	Gender        string `json:"gender" gorm:"default:'male'"`

	Entries []RankingEntry `json:"entries" gorm:"foreignKey:DivisionID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RankingEntry places one fighter in a division. Rank is a unique positive
// integer within the division, or ChampionRank for a champion. The interim
// flag is part of the slot key: a division can hold an undisputed and an
// interim champion at once, and both carry ChampionRank.
type RankingEntry struct {
	ID         string `json:"id" gorm:"primaryKey"`
	DivisionID string `json:"division_id" gorm:"index:idx_division_rank,unique;not null"`
	Rank       int    `json:"rank" gorm:"index:idx_division_rank,unique"`
	FighterID  string `json:"fighter_id" gorm:"index;not null"`
	Interim    bool   `json:"interim" gorm:"default:false;index:idx_division_rank,unique"`

	Fighter *Fighter `json:"fighter,omitempty" gorm:"foreignKey:FighterID"`

	UpdatedAt time.Time `json:"updated_at"`
}

// IsChampion reports whether the entry holds the division's belt.
func (e *RankingEntry) IsChampion() bool {
	return e.Rank == ChampionRank
}
