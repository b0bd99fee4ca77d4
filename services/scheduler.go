package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// StartAggregationScheduler refreshes the betting snapshots on an interval,
// with one immediate run so the endpoint has data right after boot.
func (s *AnalyticsService) StartAggregationScheduler(interval time.Duration) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Error().Err(err).Msg("failed to create analytics scheduler")
		return
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := s.Refresh(ctx); err != nil {
				log.Error().Err(err).Msg("analytics refresh failed")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to schedule analytics refresh")
		return
	}

	sched.Start()
	log.Info().Dur("interval", interval).Msg("analytics aggregation scheduler started")
}
