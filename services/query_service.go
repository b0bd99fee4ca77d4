package services

import (
	"context"
	"errors"
	"strings"

	"mma-stats-system/metrics"
	"mma-stats-system/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// QueryService answers natural-language questions: classify, resolve,
// synthesize. All reads go through the repository interfaces so the whole
// pipeline runs against the in-memory store in tests.
type QueryService struct {
	resolver    *Resolver
	synthesizer *Synthesizer
	cache       *AnswerCache
}

func NewQueryService(store *repository.Store, cache *AnswerCache) *QueryService {
	return &QueryService{
		resolver:    NewResolver(store.Fighters),
		synthesizer: NewSynthesizer(store),
		cache:       cache,
	}
}

// Ask runs the full pipeline for one question. It never returns an error for
// bad questions; only store failures propagate.
func (s *QueryService) Ask(ctx context.Context, question string) (*QueryResult, error) {
	intent := Classify(question)
	if intent.Type == QueryUnknown {
		return unknownResult(question), nil
	}

	entities, err := s.resolver.Resolve(ctx, question, intent)
	if err != nil {
		var failure *ResolveFailure
		if errors.As(err, &failure) {
			if failure.Kind == "ambiguous" {
				return ambiguousResult(question, intent.Type, failure), nil
			}
			subject := failure.Subject
			if subject == "fighter" || subject == "division" {
				subject = "the " + subject + " you asked about"
			}
			return notFoundResult(question, intent.Type, subject), nil
		}
		return nil, err
	}

	return s.synthesizer.Answer(ctx, question, intent, entities)
}

// HandleQuery answers POST /api/query/?question=<text>
func (s *QueryService) HandleQuery(c *fiber.Ctx) error {
	question := strings.TrimSpace(c.Query("question"))
	if question == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "question parameter is required",
		})
	}

	if cached := s.cache.Get(c.Context(), question); cached != nil {
		metrics.QueryCacheHits.Inc()
		metrics.QueriesTotal.WithLabelValues(string(cached.QueryType)).Inc()
		return c.JSON(cached)
	}

	result, err := s.Ask(c.Context(), question)
	if err != nil {
		log.Error().Err(err).Str("question", question).Msg("query pipeline failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to answer question",
		})
	}

	metrics.QueriesTotal.WithLabelValues(string(result.QueryType)).Inc()
	s.cache.Set(c.Context(), question, result)
	return c.JSON(result)
}

// HandleExamples answers GET /api/query/examples
func (s *QueryService) HandleExamples(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"examples": ExampleQueries})
}
