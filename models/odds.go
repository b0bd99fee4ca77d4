package models

import "time"

// FightOdds mirrors one sportsbook line for one corner of a fight, pulled by
// the odds sync worker. American odds: negative lays the favorite.
type FightOdds struct {
	ID        string `json:"id" gorm:"primaryKey"`
	FightID   string `json:"fight_id" gorm:"index:idx_fight_fighter_odds,unique;not null"`
	FighterID string `json:"fighter_id" gorm:"index:idx_fight_fighter_odds,unique;not null"`

	Opening int `json:"opening"`
	Closing int `json:"closing"`

	Sportsbook string    `json:"sportsbook,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Favorite reports whether the closing line had this corner favored.
func (o *FightOdds) Favorite() bool {
	return o.Closing < 0
}

const (
	AnalyticsScopeLeague   = "league"
	AnalyticsScopeDivision = "division"
)

// AnalyticsSnapshot is one row of the nightly betting aggregation: how often
// the closing favorite actually won within a league or division.
type AnalyticsSnapshot struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Scope string `json:"scope" gorm:"index:idx_scope_key,unique;not null"`
	Key   string `json:"key" gorm:"index:idx_scope_key,unique;not null"`

	FavoriteWins    int     `json:"favorite_wins"`
	UnderdogWins    int     `json:"underdog_wins"`
	Draws           int     `json:"draws"`
	FavoriteWinRate float64 `json:"favorite_win_rate"`
	SampleSize      int     `json:"sample_size"`

	ComputedAt time.Time `json:"computed_at"`
}
