// Package refresh runs the fetch -> normalize -> install pipeline over
// all entity groups. Groups fetch independently and in parallel; a failed
// group keeps its previous snapshot and is flagged stale, it never blocks
// the others.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/events"
	"github.com/aegisops/aegis/internal/normalize"
	"github.com/aegisops/aegis/internal/snapshot"
	"github.com/aegisops/aegis/internal/source"
)

// connFailedStatus is the operator-facing status recorded when a group's
// fetch fails.
const connFailedStatus = "Connection failed. Verify API on port 8000."

const (
	passTimeout     = 30 * time.Second
	alertFetchLimit = 25
)

// Refresher runs refresh passes against the active data source.
type Refresher struct {
	selector *source.Selector
	norm     *normalize.Normalizer
	store    *snapshot.Store
	bus      *events.Bus
	log      zerolog.Logger
}

// New creates a refresher.
func New(selector *source.Selector, norm *normalize.Normalizer, store *snapshot.Store, bus *events.Bus, log zerolog.Logger) *Refresher {
	return &Refresher{
		selector: selector,
		norm:     norm,
		store:    store,
		bus:      bus,
		log:      log.With().Str("component", "refresher").Logger(),
	}
}

// Name implements scheduler.Job.
func (r *Refresher) Name() string { return "snapshot_refresh" }

// Run implements scheduler.Job: one full refresh pass.
func (r *Refresher) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()
	r.Refresh(ctx)
	return nil
}

// Refresh executes one pass: every entity group is fetched in parallel
// from the source that was active when the pass started. The pass itself
// never returns an error; failures are recorded per group.
func (r *Refresher) Refresh(ctx context.Context) {
	src := r.selector.Current()
	gen := r.store.BeginPass()
	start := time.Now()

	var wg sync.WaitGroup
	run := func(group snapshot.Group, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				r.log.Warn().Err(err).Str("group", string(group)).Str("source", src.Name()).Msg("Group fetch failed")
				r.store.MarkFailed(gen, group, connFailedStatus)
			}
		}()
	}

	run(snapshot.GroupMetrics, func() error {
		raw, err := src.Metrics(ctx)
		if err != nil {
			return err
		}
		r.store.SetMetrics(gen, r.norm.Metrics(raw))
		return nil
	})
	run(snapshot.GroupTrends, func() error {
		raw, err := src.FraudTrends(ctx)
		if err != nil {
			return err
		}
		r.store.SetTrends(gen, r.norm.Trends(raw))
		return nil
	})
	run(snapshot.GroupPosture, func() error {
		raw, err := src.DetectionPosture(ctx)
		if err != nil {
			return err
		}
		r.store.SetPosture(gen, r.norm.Posture(raw))
		return nil
	})
	run(snapshot.GroupAlerts, func() error {
		raw, err := src.RecentAlerts(ctx, alertFetchLimit)
		if err != nil {
			return err
		}
		r.store.SetAlerts(gen, r.norm.Alerts(raw))
		return nil
	})
	run(snapshot.GroupAccounts, func() error {
		raw, err := src.MonitoredAccounts(ctx)
		if err != nil {
			return err
		}
		r.store.SetAccounts(gen, r.norm.Accounts(raw))
		return nil
	})
	run(snapshot.GroupFrameworks, func() error {
		raw, err := src.ComplianceFrameworks(ctx)
		if err != nil {
			return err
		}
		r.store.SetFrameworks(gen, r.norm.Frameworks(raw))
		return nil
	})
	run(snapshot.GroupActivities, func() error {
		raw, err := src.ComplianceActivities(ctx)
		if err != nil {
			return err
		}
		r.store.SetActivities(gen, r.norm.Activities(raw))
		return nil
	})
	run(snapshot.GroupGraph, func() error {
		payload, err := src.GraphData(ctx)
		if err != nil {
			return err
		}
		r.store.SetGraph(gen, payload)
		return nil
	})
	run(snapshot.GroupRisk, func() error {
		raw, err := src.RiskProfiles(ctx)
		if err != nil {
			return err
		}
		r.store.SetRisks(gen, r.norm.CustomerRisks(raw))
		return nil
	})

	wg.Wait()

	r.log.Info().
		Str("source", src.Name()).
		Uint64("generation", gen).
		Dur("took", time.Since(start)).
		Msg("Refresh pass completed")
	r.bus.Publish(events.TopicSnapshotRefreshed, gen)
}
