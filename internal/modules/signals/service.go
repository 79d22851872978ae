// Package signals serves the live operational signal feed derived from
// the current alert snapshot, over REST and a WebSocket stream.
package signals

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/analytics"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

// Service computes the signal feed.
type Service struct {
	store *snapshot.Store
	log   zerolog.Logger

	now func() time.Time
}

// NewService creates a signals service.
func NewService(store *snapshot.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "signals").Logger(),
		now:   time.Now,
	}
}

// Feed returns one signal per alert in the current snapshot.
func (s *Service) Feed() []domain.SignalRecord {
	return analytics.SignalFeed(s.store.Alerts(), s.now())
}
