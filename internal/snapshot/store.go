// Package snapshot holds the latest normalized record set per entity
// group. Aggregates are always recomputed from the snapshot on demand;
// nothing here is incremental.
//
// Refresh passes race by design: entity groups fetch independently and a
// slow pass can finish after a newer one. Each pass takes a generation
// number at start, and a completed fetch only installs its result when no
// newer pass has already installed for that group. A failed fetch leaves
// the previous records in place and records a status string instead.
package snapshot

import (
	"sync"
	"time"

	"github.com/aegisops/aegis/internal/domain"
)

// Group identifies one independently fetched entity group.
type Group string

const (
	GroupMetrics    Group = "metrics"
	GroupTrends     Group = "trends"
	GroupPosture    Group = "posture"
	GroupAlerts     Group = "alerts"
	GroupAccounts   Group = "accounts"
	GroupFrameworks Group = "frameworks"
	GroupActivities Group = "activities"
	GroupGraph      Group = "graph"
	GroupRisk       Group = "risk"
)

// Groups lists every entity group in fetch order.
var Groups = []Group{
	GroupMetrics, GroupTrends, GroupPosture, GroupAlerts,
	GroupAccounts, GroupFrameworks, GroupActivities, GroupGraph,
	GroupRisk,
}

// GroupStatus is the health of one entity group's data.
type GroupStatus struct {
	Status    string    `json:"status,omitempty"` // empty when healthy
	UpdatedAt time.Time `json:"updatedAt"`
	Stale     bool      `json:"stale"`
}

// Store is the in-memory snapshot of all entity groups.
type Store struct {
	mu      sync.RWMutex
	nextGen uint64
	gens    map[Group]uint64
	status  map[Group]GroupStatus

	metrics    domain.DashboardMetrics
	trends     []domain.TrendBucket
	posture    []domain.PostureScoreRecord
	alerts     []domain.AlertRecord
	accounts   []domain.AccountGroupRecord
	frameworks []domain.ComplianceFrameworkRecord
	activities []domain.ComplianceActivityRecord
	graph      domain.GraphPayload
	risks      []domain.CustomerRiskRecord
}

// NewStore creates an empty snapshot store. Until the first refresh
// completes every group reads as its empty default.
func NewStore() *Store {
	return &Store{
		gens:   make(map[Group]uint64),
		status: make(map[Group]GroupStatus),
	}
}

// BeginPass reserves a generation number for one refresh pass.
func (s *Store) BeginPass() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// install reports whether a result from the given pass may be installed
// for the group, and records the installation if so. Caller holds the
// write lock.
func (s *Store) install(gen uint64, group Group) bool {
	if gen < s.gens[group] {
		return false
	}
	s.gens[group] = gen
	s.status[group] = GroupStatus{UpdatedAt: time.Now()}
	return true
}

// MarkFailed records a fetch failure for the group. Previous records stay
// in place; the group is flagged stale with a human-readable status.
func (s *Store) MarkFailed(gen uint64, group Group, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.gens[group] {
		return
	}
	prev := s.status[group]
	s.status[group] = GroupStatus{
		Status:    status,
		UpdatedAt: prev.UpdatedAt,
		Stale:     true,
	}
}

// Status returns the health of every group.
func (s *Store) Status() map[Group]GroupStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Group]GroupStatus, len(s.status))
	for g, st := range s.status {
		out[g] = st
	}
	return out
}

// SetMetrics installs the headline metrics if the pass is still current.
func (s *Store) SetMetrics(gen uint64, m domain.DashboardMetrics) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupMetrics) {
		return false
	}
	s.metrics = m
	return true
}

func (s *Store) SetTrends(gen uint64, t []domain.TrendBucket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupTrends) {
		return false
	}
	s.trends = t
	return true
}

func (s *Store) SetPosture(gen uint64, p []domain.PostureScoreRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupPosture) {
		return false
	}
	s.posture = p
	return true
}

func (s *Store) SetAlerts(gen uint64, a []domain.AlertRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupAlerts) {
		return false
	}
	s.alerts = a
	return true
}

func (s *Store) SetAccounts(gen uint64, a []domain.AccountGroupRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupAccounts) {
		return false
	}
	s.accounts = a
	return true
}

func (s *Store) SetFrameworks(gen uint64, f []domain.ComplianceFrameworkRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupFrameworks) {
		return false
	}
	s.frameworks = f
	return true
}

func (s *Store) SetActivities(gen uint64, a []domain.ComplianceActivityRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupActivities) {
		return false
	}
	s.activities = a
	return true
}

func (s *Store) SetGraph(gen uint64, g domain.GraphPayload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupGraph) {
		return false
	}
	s.graph = g
	return true
}

func (s *Store) SetRisks(gen uint64, r []domain.CustomerRiskRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.install(gen, GroupRisk) {
		return false
	}
	s.risks = r
	return true
}

// Getters return the installed records. Slices are shared: callers treat
// them as read-only snapshots and never mutate.

func (s *Store) Metrics() domain.DashboardMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

func (s *Store) Trends() []domain.TrendBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trends
}

func (s *Store) Posture() []domain.PostureScoreRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posture
}

func (s *Store) Alerts() []domain.AlertRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

func (s *Store) Accounts() []domain.AccountGroupRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts
}

func (s *Store) Frameworks() []domain.ComplianceFrameworkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameworks
}

func (s *Store) Activities() []domain.ComplianceActivityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities
}

func (s *Store) Graph() domain.GraphPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

func (s *Store) Risks() []domain.CustomerRiskRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.risks
}
