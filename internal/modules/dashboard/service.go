// Package dashboard serves the headline metrics, the 24h activity trend
// and the detection posture views.
package dashboard

import (
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/analytics"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

// TrendsView is the raw trend buckets plus the smoothed activity line.
type TrendsView struct {
	Buckets  []domain.TrendBucket `json:"buckets"`
	Smoothed []float64            `json:"smoothed"`
}

// Service computes dashboard views from the current snapshot.
type Service struct {
	store *snapshot.Store
	log   zerolog.Logger
}

// NewService creates a dashboard service.
func NewService(store *snapshot.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "dashboard").Logger(),
	}
}

// Metrics returns the headline detection numbers.
func (s *Service) Metrics() domain.DashboardMetrics {
	return s.store.Metrics()
}

// FraudTrends returns the trend buckets with the smoothed total line.
func (s *Service) FraudTrends() TrendsView {
	buckets := s.store.Trends()
	return TrendsView{
		Buckets:  buckets,
		Smoothed: analytics.SmoothedTotals(buckets),
	}
}

// DetectionPosture returns the per-category capability scores.
func (s *Service) DetectionPosture() []domain.PostureScoreRecord {
	return s.store.Posture()
}

// RiskIndex returns the aggregate risk index over the posture scores.
func (s *Service) RiskIndex() int {
	posture := s.store.Posture()
	scores := make([]int, len(posture))
	for i, p := range posture {
		scores[i] = p.Score
	}
	return analytics.RiskIndex(scores)
}
