package source

import (
	"sync"

	"github.com/rs/zerolog"
)

// Selector picks the active DataSource from the presentation-mode flag.
// Presentation mode on means fixtures; off means the live API. The choice
// is swapped atomically so in-flight refreshes keep the source they
// started with.
type Selector struct {
	mu      sync.RWMutex
	live    DataSource
	fixture DataSource
	current DataSource
	log     zerolog.Logger
}

// NewSelector creates a selector. presentationMode picks the initial
// strategy.
func NewSelector(live, fixture DataSource, presentationMode bool, log zerolog.Logger) *Selector {
	s := &Selector{
		live:    live,
		fixture: fixture,
		log:     log.With().Str("component", "source-selector").Logger(),
	}
	s.SetPresentationMode(presentationMode)
	return s
}

// Current returns the active source.
func (s *Selector) Current() DataSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetPresentationMode swaps the active strategy.
func (s *Selector) SetPresentationMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.current = s.fixture
	} else {
		s.current = s.live
	}
	s.log.Info().Bool("presentation_mode", on).Str("source", s.current.Name()).Msg("Data source selected")
}
