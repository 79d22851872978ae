package settings

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/events"
)

// Service is the injectable UI preference store. Reads fail open to the
// hard-coded defaults; updates merge a partial object over the current
// state, persist the result and notify subscribers on the event bus
// before returning. Concurrent updates are last-write-wins under one
// mutex.
type Service struct {
	mu   sync.Mutex
	repo *Repository
	bus  *events.Bus
	log  zerolog.Logger
}

// NewService creates a settings service.
func NewService(repo *Repository, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		bus:  bus,
		log:  log.With().Str("service", "settings").Logger(),
	}
}

// UIPreferences returns the current preferences, or the defaults when
// nothing is stored or the stored JSON fails to parse. Never errors.
func (s *Service) UIPreferences() UIPreferences {
	stored, err := s.repo.Get(keyUIPreferences)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read UI preferences, using defaults")
		return DefaultUIPreferences()
	}
	if stored == nil {
		return DefaultUIPreferences()
	}

	prefs := DefaultUIPreferences()
	if err := json.Unmarshal([]byte(*stored), &prefs); err != nil {
		s.log.Warn().Err(err).Msg("Stored UI preferences corrupt, using defaults")
		return DefaultUIPreferences()
	}
	return prefs
}

// UpdateUI merges the partial JSON object over the current preferences,
// persists the merged result and notifies subscribers synchronously.
// Unknown fields in the partial are ignored.
func (s *Service) UpdateUI(partial map[string]any) (UIPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.UIPreferences()

	// Merge via JSON round-trip so partial fields overlay struct fields
	// without hand-written per-field copying.
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return current, fmt.Errorf("failed to marshal current preferences: %w", err)
	}
	var merged map[string]any
	if err := json.Unmarshal(currentJSON, &merged); err != nil {
		return current, fmt.Errorf("failed to unmarshal current preferences: %w", err)
	}
	for k, v := range partial {
		merged[k] = v
	}

	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return current, fmt.Errorf("failed to marshal merged preferences: %w", err)
	}
	var next UIPreferences
	if err := json.Unmarshal(mergedJSON, &next); err != nil {
		return current, fmt.Errorf("invalid preference value: %w", err)
	}

	return s.persistUI(next)
}

// ResetUI restores the hard-coded defaults, persisting and notifying the
// same way UpdateUI does.
func (s *Service) ResetUI() (UIPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistUI(DefaultUIPreferences())
}

// persistUI stores prefs and publishes the change. Caller holds the lock.
func (s *Service) persistUI(prefs UIPreferences) (UIPreferences, error) {
	data, err := json.Marshal(prefs)
	if err != nil {
		return prefs, fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := s.repo.Set(keyUIPreferences, string(data)); err != nil {
		return prefs, err
	}

	// Subscribers see the new state before the caller's update returns.
	s.bus.Publish(events.TopicSettingsChanged, prefs)
	s.log.Debug().Msg("UI preferences updated")
	return prefs, nil
}

// PresentationMode reports whether the dashboard serves fixture data.
// Missing or corrupt values read as false (live data).
func (s *Service) PresentationMode() bool {
	stored, err := s.repo.Get(keyPresentationMode)
	if err != nil || stored == nil {
		return false
	}
	on, err := strconv.ParseBool(*stored)
	if err != nil {
		return false
	}
	return on
}

// SetPresentationMode persists the flag and notifies subscribers (the
// source selector swaps strategies on this event).
func (s *Service) SetPresentationMode(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(keyPresentationMode, strconv.FormatBool(on)); err != nil {
		return err
	}
	s.bus.Publish(events.TopicPresentationMode, on)
	s.log.Info().Bool("presentation_mode", on).Msg("Presentation mode updated")
	return nil
}
