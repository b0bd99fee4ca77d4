package services

import (
	"testing"

	"mma-stats-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateOutcomes(t *testing.T) {
	outcomes := []fightOutcome{
		{league: "UFC", weightClass: "lightweight", favoriteWon: true},
		{league: "UFC", weightClass: "lightweight", favoriteWon: false},
		{league: "UFC", weightClass: "heavyweight", favoriteWon: true},
		{league: "UFC", weightClass: "heavyweight", draw: true},
		{league: "PFL", weightClass: "lightweight", favoriteWon: true},
	}

	snapshots := AggregateOutcomes(outcomes)

	ufc := snapshots[models.AnalyticsScopeLeague+":UFC"]
	require.NotNil(t, ufc)
	assert.Equal(t, 4, ufc.SampleSize)
	assert.Equal(t, 2, ufc.FavoriteWins)
	assert.Equal(t, 1, ufc.UnderdogWins)
	assert.Equal(t, 1, ufc.Draws)
	// draws stay out of the win-rate denominator
	assert.InDelta(t, 2.0/3.0, ufc.FavoriteWinRate, 1e-9)

	pfl := snapshots[models.AnalyticsScopeLeague+":PFL"]
	require.NotNil(t, pfl)
	assert.Equal(t, 1, pfl.SampleSize)
	assert.Equal(t, 1.0, pfl.FavoriteWinRate)

	lw := snapshots[models.AnalyticsScopeDivision+":lightweight"]
	require.NotNil(t, lw)
	assert.Equal(t, 3, lw.SampleSize, "division tallies cross league lines")
	assert.Equal(t, 2, lw.FavoriteWins)

	hw := snapshots[models.AnalyticsScopeDivision+":heavyweight"]
	require.NotNil(t, hw)
	assert.Equal(t, 1, hw.Draws)
	assert.Equal(t, 1.0, hw.FavoriteWinRate)
}

func TestAggregateOutcomesSkipsBlankKeys(t *testing.T) {
	outcomes := []fightOutcome{
		{league: "", weightClass: "lightweight", favoriteWon: true},
		{league: "UFC", weightClass: "", favoriteWon: true},
	}

	snapshots := AggregateOutcomes(outcomes)
	assert.Len(t, snapshots, 2)
	assert.Contains(t, snapshots, models.AnalyticsScopeLeague+":UFC")
	assert.Contains(t, snapshots, models.AnalyticsScopeDivision+":lightweight")
}

func TestAggregateOutcomesEmpty(t *testing.T) {
	assert.Empty(t, AggregateOutcomes(nil))
}
