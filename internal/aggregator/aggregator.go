// Package aggregator orchestrates the water-level pipeline: one batch
// fetch of every registered station from the USGS feed, per-station
// classification, and an in-process cache so the rate-limited upstream is
// hit at most once per TTL window. Upstream failures degrade to clearly
// flagged synthesized data; nothing in this package is fatal to a request.
package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/moriverguide/river-conditions-service/internal/adapter/usgs"
	"github.com/moriverguide/river-conditions-service/internal/domain"
	"github.com/moriverguide/river-conditions-service/internal/observability"
)

// FeedClient fetches batch readings from the upstream feed.
type FeedClient interface {
	FetchInstantaneous(ctx context.Context, siteIDs, paramCodes []string) ([]usgs.Reading, error)
}

// Recorder persists station readings from a successful refresh. Optional.
type Recorder interface {
	RecordSnapshot(ctx context.Context, data map[string]RiverConditions) (int, error)
}

// AlertPublisher emits station status transitions. Optional.
type AlertPublisher interface {
	PublishStatusChanges(ctx context.Context, changes []StatusChange) error
}

// StationReading is one station's readings for a polling cycle. Nil
// pointer fields mean "no data this cycle"; a nil Status means no
// classification was possible.
type StationReading struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Location       string               `json:"location,omitempty"`
	Lat            float64              `json:"lat,omitempty"`
	Lng            float64              `json:"lng,omitempty"`
	GageHeight     *float64             `json:"gageHeight"`
	GageHeightUnit *string              `json:"gageHeightUnit"`
	Discharge      *float64             `json:"discharge"`
	DischargeUnit  *string              `json:"dischargeUnit"`
	Temperature    *float64             `json:"temperature,omitempty"`
	LastUpdated    *string              `json:"lastUpdated"`
	Status         *domain.StatusResult `json:"status"`
	Flow           *domain.FlowCheck    `json:"flow,omitempty"`
	Error          string               `json:"error,omitempty"`
}

// RiverConditions groups the classified readings of one river.
type RiverConditions struct {
	Name        string           `json:"name"`
	Stations    []StationReading `json:"stations"`
	LastUpdated *string          `json:"lastUpdated"`
	Error       string           `json:"error,omitempty"`
}

// StatusChange records a station moving between status tiers across
// refreshes.
type StatusChange struct {
	RiverID     string        `json:"riverId"`
	StationID   string        `json:"stationId"`
	StationName string        `json:"stationName"`
	Previous    domain.Status `json:"previous"`
	Current     domain.Status `json:"current"`
	GageHeight  float64       `json:"gageHeight"`
	ObservedAt  string        `json:"observedAt"`
}

// Options configures an Aggregator. Zero-value fields receive defaults.
type Options struct {
	Clock     clockwork.Clock
	TTL       time.Duration // aggregate cache window, default 15m
	DetailTTL time.Duration // per-river detail cache window, default 5m
	Rand      *rand.Rand    // fallback data source, seeded by default
	Recorder  Recorder
	Alerts    AlertPublisher
	Logger    *slog.Logger
	Metrics   *observability.Metrics
}

// Aggregator owns the water-level cache and the refresh cycle. All cache
// state sits behind a mutex: the read-check-fetch-write sequence is
// serialized so concurrent callers trigger at most one upstream fetch per
// TTL window.
type Aggregator struct {
	feed      FeedClient
	clock     clockwork.Clock
	ttl       time.Duration
	detailTTL time.Duration
	rngMu     sync.Mutex
	rng       *rand.Rand
	recorder  Recorder
	alerts    AlertPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu           sync.Mutex
	cached       map[string]RiverConditions
	cachedAt     time.Time
	lastStatuses map[string]domain.Status

	detailMu sync.Mutex
	detail   map[string]detailEntry

	ready atomic.Bool
}

type detailEntry struct {
	data RiverConditions
	at   time.Time
}

// New creates an Aggregator over the given feed client.
func New(feed FeedClient, opts Options) *Aggregator {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.TTL <= 0 {
		opts.TTL = 15 * time.Minute
	}
	if opts.DetailTTL <= 0 {
		opts.DetailTTL = 5 * time.Minute
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetricsForTesting()
	}
	return &Aggregator{
		feed:         feed,
		clock:        opts.Clock,
		ttl:          opts.TTL,
		detailTTL:    opts.DetailTTL,
		rng:          opts.Rand,
		recorder:     opts.Recorder,
		alerts:       opts.Alerts,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		lastStatuses: make(map[string]domain.Status),
		detail:       make(map[string]detailEntry),
	}
}

// CheckReadiness returns nil once at least one refresh has succeeded.
func (a *Aggregator) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("no successful water-level refresh yet")
	}
	return nil
}

// WaterLevels returns the classified readings for every registered river.
// Cached data is served while fresh; a cache miss triggers one batch
// fetch. Upstream failures yield synthesized fallback data, never an
// error — the fallback is not cached, so the next uncached call retries
// the real feed.
func (a *Aggregator) WaterLevels(ctx context.Context) map[string]RiverConditions {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil && a.clock.Since(a.cachedAt) < a.ttl {
		a.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return a.cached
	}
	a.metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := time.Now()
	readings, err := a.feed.FetchInstantaneous(ctx, domain.AllStationIDs(),
		[]string{usgs.ParamGageHeight, usgs.ParamDischarge})
	if err != nil {
		a.metrics.FeedFetches.WithLabelValues("error").Inc()
		a.metrics.FallbacksServed.Inc()
		a.logger.Warn("usgs fetch failed, serving simulated data", "error", err)
		return a.fallback()
	}
	a.metrics.FeedFetches.WithLabelValues("success").Inc()
	a.metrics.FeedFetchSeconds.Observe(time.Since(start).Seconds())

	data := a.assemble(readings)
	a.handleStatusChanges(ctx, data)
	a.recordSnapshot(ctx, data)

	a.cached = data
	a.cachedAt = a.clock.Now()
	a.metrics.LastRefresh.Set(float64(a.cachedAt.Unix()))
	a.ready.Store(true)
	return data
}

// assemble reshapes flat feed readings into the per-river structure.
// Every registered river appears in the result; stations the feed never
// mentioned keep all-null readings, and feed sites outside the registry
// are skipped. A river's lastUpdated is the max timestamp across its
// stations.
func (a *Aggregator) assemble(readings []usgs.Reading) map[string]RiverConditions {
	data := make(map[string]RiverConditions, len(domain.Rivers()))
	index := make(map[string]*StationReading)

	for _, river := range domain.Rivers() {
		rc := RiverConditions{
			Name:     river.Name,
			Stations: make([]StationReading, len(river.Stations)),
		}
		for i, st := range river.Stations {
			rc.Stations[i] = StationReading{
				ID:       st.ID,
				Name:     st.Name,
				Location: st.Location,
				Lat:      st.Lat,
				Lng:      st.Lng,
			}
			index[st.ID] = &rc.Stations[i]
		}
		data[river.ID] = rc
	}

	for _, r := range readings {
		rec, ok := index[r.SiteCode]
		if !ok {
			continue // untracked site
		}
		applyReading(rec, r)
	}

	for riverID, rc := range data {
		var last *string
		for i := range rc.Stations {
			st := &rc.Stations[i]
			if st.GageHeight != nil {
				result := domain.ClassifyGageHeight(*st.GageHeight, riverID, st.ID)
				st.Status = &result
			}
			if st.LastUpdated != nil && (last == nil || *st.LastUpdated > *last) {
				last = st.LastUpdated
			}
		}
		rc.LastUpdated = last
		data[riverID] = rc
	}

	return data
}

// applyReading folds one feed reading into a station record.
func applyReading(rec *StationReading, r usgs.Reading) {
	v := r.Value
	unit := r.Unit
	switch r.VariableCode {
	case usgs.ParamGageHeight:
		rec.GageHeight = &v
		rec.GageHeightUnit = &unit
	case usgs.ParamDischarge:
		rec.Discharge = &v
		rec.DischargeUnit = &unit
	case usgs.ParamWaterTemp:
		rec.Temperature = &v
	default:
		return
	}
	if r.DateTime != "" {
		if rec.LastUpdated == nil || r.DateTime > *rec.LastUpdated {
			dt := r.DateTime
			rec.LastUpdated = &dt
		}
	}
}

// handleStatusChanges diffs classified statuses against the previous
// refresh and publishes transitions. Publish failures are logged only.
func (a *Aggregator) handleStatusChanges(ctx context.Context, data map[string]RiverConditions) {
	var changes []StatusChange
	for riverID, rc := range data {
		for _, st := range rc.Stations {
			if st.Status == nil {
				continue
			}
			prev, seen := a.lastStatuses[st.ID]
			a.lastStatuses[st.ID] = st.Status.Status
			if !seen || prev == st.Status.Status {
				continue
			}
			change := StatusChange{
				RiverID:     riverID,
				StationID:   st.ID,
				StationName: st.Name,
				Previous:    prev,
				Current:     st.Status.Status,
				ObservedAt:  a.clock.Now().UTC().Format(time.RFC3339),
			}
			if st.GageHeight != nil {
				change.GageHeight = *st.GageHeight
			}
			changes = append(changes, change)
		}
	}
	if len(changes) == 0 {
		return
	}

	a.metrics.StatusChanges.Add(float64(len(changes)))
	a.logger.Info("station status changes", "count", len(changes))

	if a.alerts == nil {
		return
	}
	if err := a.alerts.PublishStatusChanges(ctx, changes); err != nil {
		a.metrics.AlertsPublished.WithLabelValues("error").Inc()
		a.logger.Warn("publishing status alerts failed", "error", err, "count", len(changes))
		return
	}
	a.metrics.AlertsPublished.WithLabelValues("success").Add(float64(len(changes)))
}

// recordSnapshot persists the refresh when a history store is configured.
func (a *Aggregator) recordSnapshot(ctx context.Context, data map[string]RiverConditions) {
	if a.recorder == nil {
		return
	}
	n, err := a.recorder.RecordSnapshot(ctx, data)
	if err != nil {
		a.logger.Warn("recording reading history failed", "error", err)
		return
	}
	a.metrics.ReadingsRecorded.Add(float64(n))
}
