package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StanceOrthodox = "orthodox"
	StanceSouthpaw = "southpaw"
	StanceSwitch   = "switch"
)

// Weight classes recognized across rankings, fights and question parsing.
// Ordered lightest to heaviest; the women's divisions carry their prefix so
// keyword extraction can tell them apart.
var WeightClasses = []string{
	"flyweight",
	"bantamweight",
	"featherweight",
	"lightweight",
	"welterweight",
	"middleweight",
	"light heavyweight",
	"heavyweight",
	"women's strawweight",
	"women's flyweight",
	"women's bantamweight",
	"women's featherweight",
}

type Fighter struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;index"`

	// NameNormalized is the lowercased, accent-folded form of Name, kept in
	// step by the write paths so name search stays accent-insensitive in SQL.
	NameNormalized string `json:"-" gorm:"index"`

	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Nickname    string `json:"nickname,omitempty"`
	WeightClass string `json:"weight_class"`

	// Physical attributes; nullable because older records are incomplete
	HeightInches *float64 `json:"height_inches,omitempty"`
	ReachInches  *float64 `json:"reach_inches,omitempty"`
	Age          *int     `json:"age,omitempty"`
	Stance       string   `json:"stance,omitempty"`
	Nationality  string   `json:"nationality,omitempty"`

	// Cached record columns, maintained by the maintenance importers.
	// Query answers tally the fights table instead of trusting these.
	Wins   int `json:"wins" gorm:"default:0"`
	Losses int `json:"losses" gorm:"default:0"`
	Draws  int `json:"draws" gorm:"default:0"`

	Active   bool   `json:"active" gorm:"default:true;index"`
	ImageURL string `json:"image_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// HasCoreAttributes reports whether the fighter carries every attribute the
// guessing game compares, so hints never degenerate into blanks.
func (f *Fighter) HasCoreAttributes() bool {
	return f.WeightClass != "" &&
		f.Nationality != "" &&
		f.Age != nil &&
		f.HeightInches != nil &&
		f.ReachInches != nil
}
