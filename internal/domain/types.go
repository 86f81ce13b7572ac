package domain

// Status is the navigability tier derived from a gage height reading.
type Status string

const (
	StatusLow        Status = "low"
	StatusOptimal    Status = "optimal"
	StatusHigh       Status = "high"
	StatusAction     Status = "action"
	StatusMinorFlood Status = "minor-flood"
	StatusFlood      Status = "flood"
)

// Severity orders tiers for display and alerting. optimal is the floor;
// low and high are co-equal caution tiers beneath action.
func (s Status) Severity() int {
	switch s {
	case StatusOptimal:
		return 0
	case StatusLow, StatusHigh:
		return 1
	case StatusAction:
		return 2
	case StatusMinorFlood:
		return 3
	case StatusFlood:
		return 4
	default:
		return 0
	}
}

// Badge colors, monotonically increasing with severity. Gray marks
// synthesized fallback data only.
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorOrange = "orange"
	ColorRed    = "red"
	ColorGray   = "gray"
)

// Range is an inclusive [Low, High] interval in the unit of its context
// (feet for gage height, CFS for discharge).
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Station is one physical USGS monitoring point. Stations are defined at
// build time and never mutated at runtime.
type Station struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`

	// NWS stage thresholds in feet; nil when the station does not define
	// the stage. Where present, ActionStage < MinorFloodStage < FloodStage.
	FloodStage      *float64 `json:"floodStage,omitempty"`
	ActionStage     *float64 `json:"actionStage,omitempty"`
	MinorFloodStage *float64 `json:"minorFloodStage,omitempty"`

	// OptimalRange is the good-floating-conditions band in feet.
	OptimalRange *Range `json:"optimalRange,omitempty"`
}

// River groups the monitoring stations along one river. Every station
// belongs to exactly one river and every river has at least one station.
type River struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Stations []Station `json:"stations"`
}

// StatusResult is the classified navigability of a single reading.
type StatusResult struct {
	Status      Status `json:"status"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// FlowCheck is the result of the independent discharge (CFS) validation.
type FlowCheck struct {
	IsNormal    bool   `json:"isNormal"`
	Description string `json:"description"`
}
