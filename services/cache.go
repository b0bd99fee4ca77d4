package services

import (
	"context"
	"encoding/json"
	"time"

	"mma-stats-system/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AnswerCache keeps answered queries in Redis keyed by normalized question
// text. Answers are deterministic for a fixed dataset, so a short TTL only
// bounds staleness after imports. A nil *AnswerCache is a no-op.
type AnswerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAnswerCache(rdb *redis.Client, ttl time.Duration) *AnswerCache {
	if rdb == nil {
		return nil
	}
	return &AnswerCache{rdb: rdb, ttl: ttl}
}

func (c *AnswerCache) key(question string) string {
	return "query:answer:" + repository.NormalizeName(question)
}

// Get returns the cached result for the question, or nil on miss or error.
func (c *AnswerCache) Get(ctx context.Context, question string) *QueryResult {
	if c == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, c.key(question)).Bytes()
	if err != nil {
		return nil
	}
	result := decodeCached(raw, question)
	if result == nil {
		log.Warn().Msg("dropping undecodable cached answer")
	}
	return result
}

// decodeCached rebuilds a cached envelope around the caller's own phrasing:
// the key is normalized, so the stored Question may differ in casing or
// spacing from the question actually asked.
func decodeCached(raw []byte, question string) *QueryResult {
	var result QueryResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	result.Question = question
	return &result
}

// Set stores the result; cache failures are logged, never surfaced.
func (c *AnswerCache) Set(ctx context.Context, question string, result *QueryResult) {
	if c == nil || result == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(question), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to cache answer")
	}
}
