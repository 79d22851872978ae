// Package graph forwards the fraud relationship graph. The payload is
// opaque to this service; only element counts feed the clustering
// estimate.
package graph

import (
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/analytics"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

// Service serves the graph view.
type Service struct {
	store *snapshot.Store
	log   zerolog.Logger
}

// NewService creates a graph service.
func NewService(store *snapshot.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "graph").Logger(),
	}
}

// View returns the current graph with its clustering estimate.
func (s *Service) View() domain.GraphView {
	payload := s.store.Graph()
	return domain.GraphView{
		GraphPayload:   payload,
		ClusterSeconds: analytics.ClusterSeconds(payload),
	}
}
