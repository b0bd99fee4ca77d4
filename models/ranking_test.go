package models

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A division can hold both an undisputed and an interim champion, and both
// carry ChampionRank, so the ranked-slot uniqueness key must include the
// interim flag or the second title holder is unstorable.
func TestRankingSlotKeyIncludesInterim(t *testing.T) {
	typ := reflect.TypeOf(RankingEntry{})
	for _, name := range []string{"DivisionID", "Rank", "Interim"} {
		field, ok := typ.FieldByName(name)
		require.True(t, ok, "field %s", name)
		assert.Contains(t, field.Tag.Get("gorm"), "index:idx_division_rank,unique", "field %s", name)
	}
}

func TestIsChampion(t *testing.T) {
	undisputed := RankingEntry{Rank: ChampionRank}
	interim := RankingEntry{Rank: ChampionRank, Interim: true}
	contender := RankingEntry{Rank: 1}

	assert.True(t, undisputed.IsChampion())
	assert.True(t, interim.IsChampion())
	assert.False(t, contender.IsChampion())
}
