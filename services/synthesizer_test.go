package services

import (
	"context"
	"testing"

	"mma-stats-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryService(t *testing.T) *QueryService {
	t.Helper()
	store := seedStore().AsStore()
	svc := NewQueryService(store, nil)
	svc.synthesizer.now = fixedClock
	return svc
}

func TestTallyRecord(t *testing.T) {
	fights := []models.Fight{
		{Fighter1ID: "a", Fighter2ID: "b", WinnerID: strPtr("a")},
		{Fighter1ID: "b", Fighter2ID: "a", WinnerID: strPtr("a")},
		{Fighter1ID: "a", Fighter2ID: "c", WinnerID: strPtr("c")},
		{Fighter1ID: "a", Fighter2ID: "d", Draw: true},
		// no contest lands in the draws bucket
		{Fighter1ID: "a", Fighter2ID: "e"},
	}

	wins, losses, draws := TallyRecord("a", fights)
	assert.Equal(t, 2, wins)
	assert.Equal(t, 1, losses)
	assert.Equal(t, 2, draws)
	assert.Equal(t, len(fights), wins+losses+draws, "every bout is counted exactly once")
}

func TestAskRecord(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "What is Jon Jones's record?")
	require.NoError(t, err)
	assert.Equal(t, QueryFighterRecord, result.QueryType)
	assert.Equal(t, "Jon Jones has a record of 1-0-0.", result.Answer)

	data, ok := result.Data.(*RecordData)
	require.True(t, ok)
	assert.Equal(t, 1, data.Wins)
	assert.Equal(t, 0, data.Losses)
	assert.Equal(t, 0, data.Draws)
}

func TestAskRecordCountsDraws(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "What is Alexander Volkanovski's record?")
	require.NoError(t, err)
	assert.Equal(t, "Alexander Volkanovski has a record of 0-1-1.", result.Answer)
}

func TestAskStats(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "How tall is Jon Jones?")
	require.NoError(t, err)
	assert.Equal(t, QueryFighterStats, result.QueryType)
	assert.Contains(t, result.Answer, "6'4\"")
	assert.Contains(t, result.Answer, "heavyweight")
	assert.Contains(t, result.Answer, "37 years old")
}

func TestAskStatsOmitsMissingFields(t *testing.T) {
	mem := seedStore()
	svc := NewQueryService(mem.AsStore(), nil)
	svc.synthesizer.now = fixedClock

	// Anderson Silva is seeded without height, reach or age
	result, err := svc.Ask(context.Background(), "How tall is Anderson Silva?")
	require.NoError(t, err)
	assert.NotContains(t, result.Answer, "stands")
	assert.NotContains(t, result.Answer, "reach")
	assert.NotContains(t, result.Answer, "years old")
	assert.Contains(t, result.Answer, "middleweight")
}

func TestAskEvent(t *testing.T) {
	svc := newTestQueryService(t)
	ctx := context.Background()

	result, err := svc.Ask(ctx, "When is the next UFC event?")
	require.NoError(t, err)
	assert.Equal(t, QueryEvent, result.QueryType)
	assert.Equal(t, "The next event is UFC 320 on June 1, 2030 in Las Vegas.", result.Answer)

	result, err = svc.Ask(ctx, "What was the last card?")
	require.NoError(t, err)
	assert.Equal(t, "The last event was UFC 309 on November 16, 2024 at Madison Square Garden in New York.", result.Answer)
}

func TestAskEventNoneScheduled(t *testing.T) {
	mem := seedStore()
	mem.EventList = nil
	svc := NewQueryService(mem.AsStore(), nil)
	svc.synthesizer.now = fixedClock

	result, err := svc.Ask(context.Background(), "When is the next UFC event?")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't find any upcoming event.", result.Answer)
	assert.Nil(t, result.Data)
}

func TestAskRankings(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "Show the lightweight rankings")
	require.NoError(t, err)
	assert.Equal(t, QueryRankings, result.QueryType)

	data, ok := result.Data.(*RankingData)
	require.True(t, ok)
	require.Len(t, data.Entries, 3)
	assert.True(t, data.Entries[0].IsChampion(), "champion is listed first")
	assert.Equal(t, "Islam Makhachev", data.Entries[0].Fighter.Name)
	assert.Equal(t, 1, data.Entries[1].Rank)
	assert.Equal(t, 2, data.Entries[2].Rank)
	assert.Contains(t, result.Answer, "C: Islam Makhachev")
}

func TestAskRankingsUnknownDivision(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "Show the heavyweight rankings")
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "couldn't find")
	assert.Nil(t, result.Data)
}

func TestAskFightHistory(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "Show Islam Makhachev's last 3 fights")
	require.NoError(t, err)
	assert.Equal(t, QueryFighterFights, result.QueryType)

	data, ok := result.Data.(*FightHistoryData)
	require.True(t, ok)
	require.Len(t, data.Fights, 2, "only two fights on record")

	// most recent first
	assert.Equal(t, "Jon Jones", data.Fights[0].Opponent)
	assert.Equal(t, "loss", data.Fights[0].Result)
	assert.Equal(t, "UFC 309", data.Fights[0].EventName)
	assert.Equal(t, "Alexander Volkanovski", data.Fights[1].Opponent)
	assert.Equal(t, "win", data.Fights[1].Result)
}

func TestAskFightHistoryDefaultsToOne(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "What is Islam Makhachev's fight history?")
	require.NoError(t, err)
	data, ok := result.Data.(*FightHistoryData)
	require.True(t, ok)
	assert.Len(t, data.Fights, 1)
}

func TestAskUnknown(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "Tell me about pizza")
	require.NoError(t, err)
	assert.Equal(t, QueryUnknown, result.QueryType)
	assert.Contains(t, result.Answer, "not sure I understand")
	assert.Nil(t, result.Data)
	assert.Equal(t, ExampleQueries, result.Suggestions)
}

func TestAskUnknownFighter(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "What is Bruce Wayne's record?")
	require.NoError(t, err)
	assert.Equal(t, QueryFighterRecord, result.QueryType)
	assert.Contains(t, result.Answer, "couldn't find")
	assert.Contains(t, result.Answer, "Bruce Wayne")
	assert.Nil(t, result.Data)
}

func TestAskAmbiguousFighter(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Ask(context.Background(), "What is Silva's record?")
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "Anderson Silva")
	assert.Contains(t, result.Answer, "Wanderlei Silva")
	assert.Contains(t, result.Answer, "Which one did you mean?")
	assert.Nil(t, result.Data)
}

func TestAskIsDeterministic(t *testing.T) {
	svc := newTestQueryService(t)
	ctx := context.Background()

	for _, question := range []string{
		"What is Jon Jones's record?",
		"Show the lightweight rankings",
		"When is the next UFC event?",
	} {
		first, err := svc.Ask(ctx, question)
		require.NoError(t, err)
		second, err := svc.Ask(ctx, question)
		require.NoError(t, err)
		assert.Equal(t, first, second, "same question, same data, same answer")
	}
}

func TestSortRanking(t *testing.T) {
	entries := []models.RankingEntry{
		{Rank: 3},
		{Rank: models.ChampionRank, Interim: true},
		{Rank: 1},
		{Rank: models.ChampionRank},
		{Rank: 2},
	}
	SortRanking(entries)

	assert.True(t, entries[0].IsChampion())
	assert.False(t, entries[0].Interim, "undisputed champion sorts above the interim one")
	assert.True(t, entries[1].Interim)
	assert.Equal(t, []int{1, 2, 3}, []int{entries[2].Rank, entries[3].Rank, entries[4].Rank})
}

func TestFormatHeight(t *testing.T) {
	assert.Equal(t, "6'4\"", formatHeight(76))
	assert.Equal(t, "5'6\"", formatHeight(66))
}
