package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the stats service

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mma_queries_total",
			Help: "Natural-language queries answered, by classified type",
		},
		[]string{"query_type"},
	)

	QueryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mma_query_cache_hits_total",
			Help: "Query answers served from the Redis cache",
		},
	)

	WordleGuessesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mma_wordle_guesses_total",
			Help: "Daily-puzzle guesses, by outcome",
		},
		[]string{"outcome"},
	)

	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mma_sync_runs_total",
			Help: "Upstream sync worker runs, by worker and result",
		},
		[]string{"worker", "result"},
	)

	AnalyticsRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mma_analytics_runs_total",
			Help: "Betting-analytics aggregation runs",
		},
	)
)
