package domain

import (
	"fmt"
	"strconv"
)

// genericRange holds per-river fallback thresholds in feet for rivers
// whose station lacks explicit stage data.
type genericRange struct {
	Low     float64
	Optimal Range
	High    float64
	Flood   float64
}

var genericRanges = map[string]genericRange{
	"current-river":      {Low: 2.5, Optimal: Range{3, 7}, High: 10, Flood: 15},
	"meramec-river":      {Low: 2.5, Optimal: Range{3, 8}, High: 12, Flood: 20},
	"niangua-river":      {Low: 2, Optimal: Range{2.5, 6}, High: 8, Flood: 12},
	"jacks-fork-river":   {Low: 1.5, Optimal: Range{2, 4.5}, High: 6, Flood: 10},
	"eleven-point-river": {Low: 2, Optimal: Range{2.5, 6}, High: 8, Flood: 12},
	"elk-river":          {Low: 3, Optimal: Range{3.5, 8}, High: 12, Flood: 16},
	"gasconade-river":    {Low: 2.5, Optimal: Range{3, 7}, High: 10, Flood: 15},
	"big-piney-river":    {Low: 2, Optimal: Range{2, 5}, High: 7, Flood: 12},
	"black-river":        {Low: 2, Optimal: Range{3, 6}, High: 9, Flood: 14},
	"huzzah-creek":       {Low: 1, Optimal: Range{1.5, 3}, High: 4, Flood: 6},
	"courtois-creek":     {Low: 1, Optimal: Range{1.5, 3}, High: 4, Flood: 6},
	"north-fork-river":   {Low: 2.5, Optimal: Range{3, 5}, High: 7, Flood: 10},
	"james-river":        {Low: 2, Optimal: Range{2.5, 5}, High: 7, Flood: 12},
	"osage-river":        {Low: 3.5, Optimal: Range{4, 9}, High: 14, Flood: 20},
	"spring-river":       {Low: 2.5, Optimal: Range{3, 7}, High: 10, Flood: 16},
	"buffalo-creek":      {Low: 1.5, Optimal: Range{2, 5}, High: 8, Flood: 12},
	"big-river":          {Low: 2, Optimal: Range{2.5, 6}, High: 12, Flood: 18},
	"bourbeuse-river":    {Low: 1.5, Optimal: Range{2, 5}, High: 10, Flood: 15},
	"st-francis-river":   {Low: 2.5, Optimal: Range{3, 7}, High: 11, Flood: 16},
	"white-river":        {Low: 2, Optimal: Range{2.5, 6}, High: 9, Flood: 14},
}

// defaultGenericRange covers river ids missing from the table.
var defaultGenericRange = genericRange{Low: 2, Optimal: Range{3, 6}, High: 9, Flood: 15}

// ClassifyGageHeight maps a gage height in feet to a navigability status.
// Station-specific thresholds take precedence when stationID resolves to
// a known station; otherwise the river's generic table applies, and
// unknown rivers use a hardcoded default. The function is total: every
// numeric input yields exactly one result. The caller must reject NaN
// before invocation.
func ClassifyGageHeight(gageHeight float64, riverID, stationID string) StatusResult {
	if stationID != "" {
		if station, ok := FindStationByID(stationID); ok {
			if result, ok := classifyByStation(gageHeight, station); ok {
				return result
			}
		}
	}
	return classifyByRiver(gageHeight, riverID)
}

// classifyByStation evaluates a station's explicit thresholds, highest
// severity first. Returns false when the station defines neither a
// matching stage nor an optimal range, signalling fallback to the
// generic per-river table.
func classifyByStation(gageHeight float64, station Station) (StatusResult, bool) {
	if station.FloodStage != nil && gageHeight >= *station.FloodStage {
		return StatusResult{
			Status:      StatusFlood,
			Description: fmt.Sprintf("Major Flood Stage (≥%s ft) - DO NOT FLOAT", fmtFeet(*station.FloodStage)),
			Color:       ColorRed,
		}, true
	}
	if station.MinorFloodStage != nil && gageHeight >= *station.MinorFloodStage {
		return StatusResult{
			Status:      StatusMinorFlood,
			Description: fmt.Sprintf("Minor Flood Stage (≥%s ft) - Dangerous conditions", fmtFeet(*station.MinorFloodStage)),
			Color:       ColorRed,
		}, true
	}
	if station.ActionStage != nil && gageHeight >= *station.ActionStage {
		return StatusResult{
			Status:      StatusAction,
			Description: fmt.Sprintf("Action Stage (≥%s ft) - Monitor closely", fmtFeet(*station.ActionStage)),
			Color:       ColorOrange,
		}, true
	}

	if station.OptimalRange == nil {
		return StatusResult{}, false
	}

	low, high := station.OptimalRange.Low, station.OptimalRange.High
	veryLow := low * 0.7
	switch {
	case gageHeight <= veryLow:
		return StatusResult{
			Status:      StatusLow,
			Description: fmt.Sprintf("Very Low (<%.1f ft) - May be too shallow", veryLow),
			Color:       ColorYellow,
		}, true
	case gageHeight < low:
		return StatusResult{
			Status:      StatusLow,
			Description: fmt.Sprintf("Low (<%s ft) - Possible shallow spots", fmtFeet(low)),
			Color:       ColorYellow,
		}, true
	case gageHeight <= high:
		return StatusResult{
			Status:      StatusOptimal,
			Description: fmt.Sprintf("Optimal (%s-%s ft) - Great floating conditions", fmtFeet(low), fmtFeet(high)),
			Color:       ColorGreen,
		}, true
	default:
		// Above the optimal range but beneath any defined stage. Heights in
		// the gap between the range and the action stage land here too.
		return StatusResult{
			Status:      StatusHigh,
			Description: fmt.Sprintf("High (>%s ft) - Faster current than usual", fmtFeet(high)),
			Color:       ColorOrange,
		}, true
	}
}

// classifyByRiver applies the generic per-river table.
func classifyByRiver(gageHeight float64, riverID string) StatusResult {
	r, ok := genericRanges[riverID]
	if !ok {
		r = defaultGenericRange
	}

	switch {
	case gageHeight >= r.Flood:
		return StatusResult{
			Status:      StatusFlood,
			Description: fmt.Sprintf("Flood Stage (≥%s ft) - DO NOT FLOAT", fmtFeet(r.Flood)),
			Color:       ColorRed,
		}
	case gageHeight >= r.High:
		return StatusResult{
			Status:      StatusHigh,
			Description: fmt.Sprintf("High (%s-%s ft) - Use extreme caution", fmtFeet(r.High), fmtFeet(r.Flood)),
			Color:       ColorOrange,
		}
	case gageHeight < r.Low:
		return StatusResult{
			Status:      StatusLow,
			Description: fmt.Sprintf("Low (<%s ft) - May be too shallow in spots", fmtFeet(r.Low)),
			Color:       ColorYellow,
		}
	case gageHeight >= r.Optimal.Low && gageHeight <= r.Optimal.High:
		return StatusResult{
			Status:      StatusOptimal,
			Description: fmt.Sprintf("Optimal (%s-%s ft) - Great conditions", fmtFeet(r.Optimal.Low), fmtFeet(r.Optimal.High)),
			Color:       ColorGreen,
		}
	case gageHeight > r.Optimal.High:
		return StatusResult{
			Status:      StatusHigh,
			Description: fmt.Sprintf("Above Normal (>%s ft) - Faster current", fmtFeet(r.Optimal.High)),
			Color:       ColorOrange,
		}
	default:
		return StatusResult{
			Status:      StatusLow,
			Description: fmt.Sprintf("Below Normal (<%s ft) - Slower current", fmtFeet(r.Optimal.Low)),
			Color:       ColorYellow,
		}
	}
}

// flowRange holds typical discharge bands in CFS per river.
type flowRange struct {
	Low    float64
	Normal Range
	High   float64
}

var flowRanges = map[string]flowRange{
	"current-river":      {Low: 500, Normal: Range{800, 3000}, High: 5000},
	"meramec-river":      {Low: 200, Normal: Range{400, 2000}, High: 4000},
	"niangua-river":      {Low: 100, Normal: Range{200, 1000}, High: 2000},
	"jacks-fork-river":   {Low: 50, Normal: Range{100, 500}, High: 1000},
	"eleven-point-river": {Low: 200, Normal: Range{300, 1500}, High: 3000},
	"elk-river":          {Low: 100, Normal: Range{200, 1200}, High: 2500},
	"gasconade-river":    {Low: 300, Normal: Range{500, 2500}, High: 4500},
	"big-piney-river":    {Low: 80, Normal: Range{150, 800}, High: 1500},
	"black-river":        {Low: 150, Normal: Range{300, 1200}, High: 2500},
	"huzzah-creek":       {Low: 20, Normal: Range{40, 200}, High: 400},
	"courtois-creek":     {Low: 15, Normal: Range{30, 150}, High: 300},
	"north-fork-river":   {Low: 200, Normal: Range{300, 1000}, High: 2000},
	"james-river":        {Low: 150, Normal: Range{250, 1000}, High: 2000},
	"osage-river":        {Low: 800, Normal: Range{1200, 5000}, High: 8000},
	"spring-river":       {Low: 200, Normal: Range{350, 1500}, High: 3000},
	"buffalo-creek":      {Low: 40, Normal: Range{80, 400}, High: 800},
	"big-river":          {Low: 100, Normal: Range{200, 1000}, High: 2000},
	"bourbeuse-river":    {Low: 80, Normal: Range{150, 800}, High: 1500},
	"st-francis-river":   {Low: 200, Normal: Range{400, 1800}, High: 3500},
	"white-river":        {Low: 300, Normal: Range{500, 2000}, High: 4000},
}

var defaultFlowRange = flowRange{Low: 100, Normal: Range{200, 1500}, High: 3000}

// ValidateFlowRate checks a discharge reading (CFS) against the river's
// typical flow bands. Independent of the gage height classification.
func ValidateFlowRate(cfs float64, riverID string) FlowCheck {
	r, ok := flowRanges[riverID]
	if !ok {
		r = defaultFlowRange
	}

	switch {
	case cfs < r.Low:
		return FlowCheck{IsNormal: false, Description: fmt.Sprintf("Very low flow (<%s cfs)", fmtFeet(r.Low))}
	case cfs >= r.Normal.Low && cfs <= r.Normal.High:
		return FlowCheck{IsNormal: true, Description: fmt.Sprintf("Normal flow (%s-%s cfs)", fmtFeet(r.Normal.Low), fmtFeet(r.Normal.High))}
	case cfs > r.High:
		return FlowCheck{IsNormal: false, Description: fmt.Sprintf("Very high flow (>%s cfs) - Dangerous", fmtFeet(r.High))}
	case cfs > r.Normal.High:
		return FlowCheck{IsNormal: true, Description: fmt.Sprintf("Above normal flow (%s-%s cfs)", fmtFeet(r.Normal.High), fmtFeet(r.High))}
	default:
		return FlowCheck{IsNormal: true, Description: fmt.Sprintf("Below normal flow (%s-%s cfs)", fmtFeet(r.Low), fmtFeet(r.Normal.Low))}
	}
}

// fmtFeet renders a threshold without trailing zeros: 3 -> "3", 2.5 -> "2.5".
func fmtFeet(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
