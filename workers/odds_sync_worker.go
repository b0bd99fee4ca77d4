package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mma-stats-system/metrics"
	"mma-stats-system/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OddsSyncClient pulls betting lines from the odds service and mirrors them
// into fight_odds.
type OddsSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewOddsSyncClient(db *gorm.DB, baseURL, token string) *OddsSyncClient {
	return &OddsSyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetChangedOdds fetches lines that moved since the given time.
func (c *OddsSyncClient) GetChangedOdds(ctx context.Context, since time.Time) ([]models.FightOdds, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/v1/odds", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse odds service URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create odds request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("X-Service-Token", c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call odds service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("odds service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Odds []models.FightOdds `json:"odds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode odds response: %w", err)
	}

	return response.Odds, nil
}

// PollOdds mirrors lines on an interval until the context ends. The sync
// window only advances after a successful upsert, so a failed batch is
// retried on the next tick.
func PollOdds(ctx context.Context, client *OddsSyncClient, pollInterval time.Duration) {
	log.Info().Str("base_url", client.BaseURL).Msg("starting odds polling")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("odds polling stopped")
			return
		case <-ticker.C:
			tickTime := time.Now().UTC()

			odds, err := client.GetChangedOdds(ctx, lastSyncTime)
			if err != nil {
				metrics.SyncRunsTotal.WithLabelValues("odds", "error").Inc()
				log.Error().Err(err).Msg("odds poll failed")
				continue
			}

			if len(odds) == 0 {
				metrics.SyncRunsTotal.WithLabelValues("odds", "ok").Inc()
				continue
			}

			for i := range odds {
				if odds[i].ID == "" {
					odds[i].ID = uuid.NewString()
				}
			}

			if err := client.DB.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "fight_id"}, {Name: "fighter_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"opening", "closing", "sportsbook", "updated_at",
				}),
			}).Create(&odds).Error; err != nil {
				metrics.SyncRunsTotal.WithLabelValues("odds", "error").Inc()
				log.Error().Err(err).Int("count", len(odds)).Msg("failed to upsert odds batch")
				continue
			}

			lastSyncTime = tickTime
			metrics.SyncRunsTotal.WithLabelValues("odds", "ok").Inc()
			log.Info().Int("count", len(odds)).Msg("odds batch mirrored")
		}
	}
}
