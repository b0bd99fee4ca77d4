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

// RemoteRankingEntry matches one ranked slot in the rankings service response.
type RemoteRankingEntry struct {
	Rank      int    `json:"rank"`
	FighterID string `json:"fighter_id"`
	Interim   bool   `json:"interim"`
}

// RemoteDivision matches one division in the rankings service response.
type RemoteDivision struct {
	Name          string               `json:"name"`
	League        string               `json:"league"`
	PoundForPound bool                 `json:"pound_for_pound"`
	Gender        string               `json:"gender"`
	Entries       []RemoteRankingEntry `json:"entries"`
}

// GetRankingsResponse is the top-level structure of the rankings service
// response.
type GetRankingsResponse struct {
	Divisions []RemoteDivision `json:"divisions"`
}

// RankingsSyncWorker periodically mirrors division rankings from the upstream
// rankings service into the local tables. Each division's entries are
// replaced wholesale so ranks stay unique.
type RankingsSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

func NewRankingsSyncWorker(db *gorm.DB, baseURL, serviceToken string, interval time.Duration) *RankingsSyncWorker {
	return &RankingsSyncWorker{
		db:           db,
		interval:     interval,
		baseURL:      baseURL,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *RankingsSyncWorker) Start(ctx context.Context) {
	log.Info().Str("base_url", w.baseURL).Msg("starting rankings sync worker")
	go w.run(ctx)
}

func (w *RankingsSyncWorker) run(ctx context.Context) {
	if err := w.syncOnce(ctx); err != nil {
		log.Warn().Err(err).Msg("initial rankings sync failed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncOnce(ctx); err != nil {
				metrics.SyncRunsTotal.WithLabelValues("rankings", "error").Inc()
				log.Error().Err(err).Msg("rankings sync failed")
				continue
			}
			metrics.SyncRunsTotal.WithLabelValues("rankings", "ok").Inc()
		case <-ctx.Done():
			log.Info().Msg("rankings sync worker stopped")
			return
		}
	}
}

func (w *RankingsSyncWorker) syncOnce(ctx context.Context) error {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid rankings service URL %q: %w", w.baseURL, err)
	}
	endpoint := base.JoinPath("/api/v1/rankings").String()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create rankings request: %w", err)
	}
	if w.serviceToken != "" {
		req.Header.Set("X-Service-Token", w.serviceToken)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rankings service request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("rankings service returned %d: %s", resp.StatusCode, string(body))
	}

	var response GetRankingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode rankings response: %w", err)
	}

	for _, remote := range response.Divisions {
		if err := w.upsertDivision(remote); err != nil {
			return err
		}
	}

	log.Info().Int("divisions", len(response.Divisions)).Msg("rankings synced")
	return nil
}

func (w *RankingsSyncWorker) upsertDivision(remote RemoteDivision) error {
	if remote.Name == "" {
		return nil
	}

	return w.db.Transaction(func(tx *gorm.DB) error {
		division := models.Division{
			ID:            uuid.NewString(),
			Name:          remote.Name,
			League:        remote.League,
			PoundForPound: remote.PoundForPound,
			Gender:        remote.Gender,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"league", "pound_for_pound", "gender", "updated_at"}),
		}).Create(&division).Error; err != nil {
			return fmt.Errorf("failed to upsert division %q: %w", remote.Name, err)
		}

		// the upsert may have kept the existing row's id
		if err := tx.Where("name = ?", remote.Name).First(&division).Error; err != nil {
			return fmt.Errorf("failed to reload division %q: %w", remote.Name, err)
		}

		if err := tx.Where("division_id = ?", division.ID).Delete(&models.RankingEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear entries for %q: %w", remote.Name, err)
		}

		for _, e := range remote.Entries {
			entry := models.RankingEntry{
				ID:         uuid.NewString(),
				DivisionID: division.ID,
				Rank:       e.Rank,
				FighterID:  e.FighterID,
				Interim:    e.Interim,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to insert entry %d for %q: %w", e.Rank, remote.Name, err)
			}
		}
		return nil
	})
}
