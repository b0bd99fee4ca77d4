package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCachedEchoesCallerPhrasing(t *testing.T) {
	stored := &QueryResult{
		Question:  "What is Jon Jones's record?",
		QueryType: QueryFighterRecord,
		Answer:    "Jon Jones has a record of 1-0-0.",
	}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)

	// the cache key normalizes casing, so a differently-cased repeat of the
	// question can hit an entry stored under another phrasing
	asked := "WHAT IS JON JONES'S RECORD?"
	result := decodeCached(raw, asked)
	require.NotNil(t, result)
	assert.Equal(t, asked, result.Question)
	assert.Equal(t, stored.Answer, result.Answer)
	assert.Equal(t, stored.QueryType, result.QueryType)
}

func TestDecodeCachedRejectsGarbage(t *testing.T) {
	assert.Nil(t, decodeCached([]byte("{not json"), "question"))
}

func TestAnswerCacheNilIsNoOp(t *testing.T) {
	var cache *AnswerCache
	ctx := context.Background()

	assert.Nil(t, cache.Get(ctx, "anything"))
	cache.Set(ctx, "anything", &QueryResult{}) // must not panic
	assert.Nil(t, NewAnswerCache(nil, 0))
}
