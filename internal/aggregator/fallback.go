package aggregator

import (
	"time"

	"github.com/moriverguide/river-conditions-service/internal/domain"
)

const (
	simulatedStationError = "Using simulated data - USGS API unavailable"
	simulatedRiverError   = "Using simulated data"
)

// fallback synthesizes a plausible dataset when the feed is unreachable.
// Every registered river is populated from the registry with randomized
// readings and a gray "simulated" status so consumers can render something
// while making the degradation obvious. Fallback data is never cached, so
// a real fetch is attempted on the next uncached request.
func (a *Aggregator) fallback() map[string]RiverConditions {
	data := make(map[string]RiverConditions, len(domain.Rivers()))
	for _, river := range domain.Rivers() {
		data[river.ID] = a.fallbackRiver(river)
	}
	return data
}

// fallbackRiver synthesizes one river's conditions.
func (a *Aggregator) fallbackRiver(river domain.River) RiverConditions {
	now := a.clock.Now().UTC().Format(time.RFC3339)
	stations := make([]StationReading, len(river.Stations))
	for i, st := range river.Stations {
		gage, discharge := a.simulatedReading()
		stations[i] = StationReading{
			ID:         st.ID,
			Name:       st.Name,
			Location:   st.Location,
			Lat:        st.Lat,
			Lng:        st.Lng,
			GageHeight: &gage,
			Discharge:  &discharge,
			Status: &domain.StatusResult{
				Status:      domain.StatusOptimal,
				Description: "Simulated - API unavailable",
				Color:       domain.ColorGray,
			},
			Error: simulatedStationError,
		}
	}
	return RiverConditions{
		Name:        river.Name,
		Stations:    stations,
		LastUpdated: &now,
		Error:       simulatedRiverError,
	}
}

// simulatedReading draws a plausible gage height (2-5 ft) and discharge
// (200-700 cfs). The rng has its own lock because both cache paths
// synthesize fallbacks.
func (a *Aggregator) simulatedReading() (gage, discharge float64) {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.rng.Float64()*3 + 2, a.rng.Float64()*500 + 200
}
