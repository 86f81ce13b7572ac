package aggregator

import (
	"context"
	"time"

	"github.com/moriverguide/river-conditions-service/internal/adapter/usgs"
	"github.com/moriverguide/river-conditions-service/internal/domain"
)

// RiverDetail returns the classified readings for a single river,
// including water temperature and the independent flow-rate check the
// aggregate view omits. Detail data refreshes on its own shorter cache
// window. The second return is false for unknown river ids.
func (a *Aggregator) RiverDetail(ctx context.Context, riverID string) (RiverConditions, bool) {
	river, ok := domain.RiverByID(riverID)
	if !ok {
		return RiverConditions{}, false
	}

	a.detailMu.Lock()
	defer a.detailMu.Unlock()

	if entry, ok := a.detail[riverID]; ok && a.clock.Since(entry.at) < a.detailTTL {
		a.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return entry.data, true
	}
	a.metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := time.Now()
	readings, err := a.feed.FetchInstantaneous(ctx, domain.StationIDsForRiver(riverID),
		[]string{usgs.ParamGageHeight, usgs.ParamDischarge, usgs.ParamWaterTemp})
	if err != nil {
		a.metrics.FeedFetches.WithLabelValues("error").Inc()
		a.metrics.FallbacksServed.Inc()
		a.logger.Warn("usgs detail fetch failed, serving simulated data",
			"river", riverID, "error", err)
		return a.fallbackRiver(river), true
	}
	a.metrics.FeedFetches.WithLabelValues("success").Inc()
	a.metrics.FeedFetchSeconds.Observe(time.Since(start).Seconds())

	rc := assembleRiver(river, readings)
	a.detail[riverID] = detailEntry{data: rc, at: a.clock.Now()}
	return rc, true
}

// assembleRiver builds one river's conditions from a detail fetch.
func assembleRiver(river domain.River, readings []usgs.Reading) RiverConditions {
	rc := RiverConditions{
		Name:     river.Name,
		Stations: make([]StationReading, len(river.Stations)),
	}
	index := make(map[string]*StationReading, len(river.Stations))
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

	for _, r := range readings {
		rec, ok := index[r.SiteCode]
		if !ok {
			continue
		}
		applyReading(rec, r)
	}

	var last *string
	for i := range rc.Stations {
		st := &rc.Stations[i]
		if st.GageHeight != nil {
			result := domain.ClassifyGageHeight(*st.GageHeight, river.ID, st.ID)
			st.Status = &result
		}
		if st.Discharge != nil {
			flow := domain.ValidateFlowRate(*st.Discharge, river.ID)
			st.Flow = &flow
		}
		if st.LastUpdated != nil && (last == nil || *st.LastUpdated > *last) {
			last = st.LastUpdated
		}
	}
	rc.LastUpdated = last
	return rc
}
