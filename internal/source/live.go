package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/clientdata"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/normalize"
)

// LiveSource fetches from the fraud platform REST API.
// If the API fails, it falls back to the last-good cached payload if one
// exists (stale data > no data).
type LiveSource struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
}

// NewLiveSource creates a live API source.
// cacheRepo is optional - if nil, the stale fallback is disabled.
func NewLiveSource(baseURL, apiKey string, cacheRepo *clientdata.Repository, log zerolog.Logger) *LiveSource {
	return &LiveSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("client", "fraud-api").Logger(),
		cacheRepo: cacheRepo,
	}
}

// Name identifies the source.
func (s *LiveSource) Name() string { return "live" }

// fetch performs one GET and decodes the body into out. On any failure it
// tries the cached payload for the group before giving up.
func (s *LiveSource) fetch(ctx context.Context, path, group string, out any) error {
	url := s.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if s.fromCache(group, out) {
			s.log.Warn().Err(err).Str("group", group).Msg("API failed, using cached payload")
			return nil
		}
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if s.fromCache(group, out) {
			s.log.Warn().Int("status", resp.StatusCode).Str("group", group).Msg("API error, using cached payload")
			return nil
		}
		return fmt.Errorf("API returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response for %s: %w", path, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		if s.fromCache(group, out) {
			s.log.Warn().Err(err).Str("group", group).Msg("Failed to parse API response, using cached payload")
			return nil
		}
		return fmt.Errorf("failed to parse response for %s: %w", path, err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Store(group, json.RawMessage(body), clientdata.TTLPayload); err != nil {
			s.log.Warn().Err(err).Str("group", group).Msg("Failed to cache payload")
		}
	}
	return nil
}

// fromCache decodes the cached payload (fresh or stale) for the group.
func (s *LiveSource) fromCache(group string, out any) bool {
	if s.cacheRepo == nil {
		return false
	}
	var raw json.RawMessage
	found, err := s.cacheRepo.Get(group, &raw)
	if err != nil || !found {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *LiveSource) Metrics(ctx context.Context) (normalize.RawRecord, error) {
	var out normalize.RawRecord
	if err := s.fetch(ctx, "/api/v1/dashboard/metrics", "metrics", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LiveSource) FraudTrends(ctx context.Context) ([]normalize.RawRecord, error) {
	return s.fetchList(ctx, "/api/v1/dashboard/fraud-trends", "trends")
}

func (s *LiveSource) DetectionPosture(ctx context.Context) ([]normalize.RawRecord, error) {
	return s.fetchList(ctx, "/api/v1/dashboard/detection-posture", "posture")
}

func (s *LiveSource) RecentAlerts(ctx context.Context, limit int) ([]normalize.RawRecord, error) {
	path := "/api/v1/fraud/alerts"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return s.fetchList(ctx, path, "alerts")
}

func (s *LiveSource) MonitoredAccounts(ctx context.Context) ([]normalize.RawRecord, error) {
	return s.fetchList(ctx, "/api/v1/accounts/monitored", "accounts")
}

func (s *LiveSource) ComplianceFrameworks(ctx context.Context) ([]normalize.RawRecord, error) {
	return s.fetchList(ctx, "/api/v1/compliance/frameworks", "frameworks")
}

func (s *LiveSource) ComplianceActivities(ctx context.Context) ([]normalize.RawRecord, error) {
	return s.fetchList(ctx, "/api/v1/compliance/activities", "activities")
}

func (s *LiveSource) GraphData(ctx context.Context) (domain.GraphPayload, error) {
	var out domain.GraphPayload
	if err := s.fetch(ctx, "/api/v1/graph", "graph", &out); err != nil {
		return domain.GraphPayload{}, err
	}
	return out, nil
}

func (s *LiveSource) RiskProfiles(ctx context.Context) ([]normalize.RawRecord, error) {
	return s.fetchList(ctx, "/api/v1/risk/profiles", "risk")
}

func (s *LiveSource) fetchList(ctx context.Context, path, group string) ([]normalize.RawRecord, error) {
	var out []normalize.RawRecord
	if err := s.fetch(ctx, path, group, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []normalize.RawRecord{}
	}
	return out, nil
}
