package services

import (
	"time"

	"mma-stats-system/models"
	"mma-stats-system/repository"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// seedStore builds the in-memory store the pipeline tests share.
func seedStore() *repository.Memory {
	mem := repository.NewMemory()

	mem.AddFighter(models.Fighter{
		ID: "f1", Name: "Jon Jones", Slug: "jon-jones",
		WeightClass: "heavyweight", Nationality: "United States",
		Age: intPtr(37), HeightInches: floatPtr(76), ReachInches: floatPtr(84.5),
		Stance: models.StanceOrthodox, Active: true,
	})
	mem.AddFighter(models.Fighter{
		ID: "f2", Name: "Alexander Volkanovski", Slug: "alexander-volkanovski",
		WeightClass: "featherweight", Nationality: "Australia",
		Age: intPtr(36), HeightInches: floatPtr(66), ReachInches: floatPtr(71.5),
		Stance: models.StanceOrthodox, Active: true,
	})
	mem.AddFighter(models.Fighter{
		ID: "f3", Name: "Islam Makhachev", Slug: "islam-makhachev",
		WeightClass: "lightweight", Nationality: "Russia",
		Age: intPtr(33), HeightInches: floatPtr(70), ReachInches: floatPtr(70.5),
		Stance: models.StanceSouthpaw, Active: true,
	})
	mem.AddFighter(models.Fighter{
		ID: "f4", Name: "José Aldo", Slug: "jose-aldo",
		WeightClass: "bantamweight", Nationality: "Brazil",
		Age: intPtr(38), HeightInches: floatPtr(67), ReachInches: floatPtr(70),
		Stance: models.StanceOrthodox, Active: true,
	})
	mem.AddFighter(models.Fighter{
		ID: "f5", Name: "Anderson Silva", Slug: "anderson-silva",
		WeightClass: "middleweight", Nationality: "Brazil", Active: false,
	})
	mem.AddFighter(models.Fighter{
		ID: "f6", Name: "Wanderlei Silva", Slug: "wanderlei-silva",
		WeightClass: "middleweight", Nationality: "Brazil", Active: false,
	})
	// active but missing core attributes: must stay out of the puzzle pool
	mem.AddFighter(models.Fighter{
		ID: "f7", Name: "Prospect Unknown", Slug: "prospect-unknown",
		WeightClass: "lightweight", Active: true,
	})

	mem.EventList = []models.Event{
		{ID: "e1", Name: "UFC 309", Date: date("2024-11-16"), Venue: "Madison Square Garden", City: "New York", League: "UFC"},
		{ID: "e2", Name: "UFC 294", Date: date("2023-10-21"), City: "Abu Dhabi", League: "UFC"},
		{ID: "e3", Name: "UFC 320", Date: date("2030-06-01"), City: "Las Vegas", League: "UFC"},
	}

	mem.FightList = []models.Fight{
		// Jones beats Makhachev at UFC 309
		{ID: "b1", EventID: "e1", Fighter1ID: "f1", Fighter2ID: "f3", WinnerID: strPtr("f1"), WeightClass: "heavyweight", Method: "Decision", Round: intPtr(5)},
		// Makhachev beats Volkanovski at UFC 294
		{ID: "b2", EventID: "e2", Fighter1ID: "f3", Fighter2ID: "f2", WinnerID: strPtr("f3"), WeightClass: "lightweight", Method: "KO/TKO", Round: intPtr(1)},
		// Aldo draws with Volkanovski at UFC 294
		{ID: "b3", EventID: "e2", Fighter1ID: "f4", Fighter2ID: "f2", Draw: true, WeightClass: "featherweight", Method: "Decision"},
	}

	mem.Divisions = []models.Division{
		{ID: "d1", Name: "lightweight", League: "UFC", Gender: models.GenderMale},
		{ID: "d2", Name: "men's pound-for-pound", League: "UFC", PoundForPound: true, Gender: models.GenderMale},
	}
	mem.RankingList = []models.RankingEntry{
		{ID: "r1", DivisionID: "d1", Rank: 2, FighterID: "f2"},
		{ID: "r2", DivisionID: "d1", Rank: models.ChampionRank, FighterID: "f3"},
		{ID: "r3", DivisionID: "d1", Rank: 1, FighterID: "f1"},
	}

	return mem
}

// fixedClock pins the synthesizer's notion of now between the past and
// future seeded events.
var fixedClock = func() time.Time { return date("2025-01-01") }
