package domain

import (
	"fmt"
	"math"
)

const (
	earthRadiusMiles = 3959

	// riverWindingFactor converts straight-line distance to approximate
	// river miles; Ozark streams meander heavily.
	riverWindingFactor = 1.3

	// DefaultFloatSpeedMPH is the typical drift speed of a canoe or raft
	// at normal water levels.
	DefaultFloatSpeedMPH = 2.5
)

// RiverMiles estimates the paddling distance between two access points
// from their coordinates: great-circle distance scaled by the winding
// factor.
func RiverMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c * riverWindingFactor
}

// EstimateFloatTime renders the expected time on the water for a trip of
// the given length at the given drift speed. A non-positive speed falls
// back to DefaultFloatSpeedMPH.
func EstimateFloatTime(miles, speedMPH float64) string {
	if speedMPH <= 0 {
		speedMPH = DefaultFloatSpeedMPH
	}
	hours := miles / speedMPH
	whole := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}

	switch {
	case whole == 0:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes == 0:
		return fmt.Sprintf("%d %s", whole, pluralHours(whole))
	default:
		return fmt.Sprintf("%d %s %d min", whole, pluralHours(whole), minutes)
	}
}

func pluralHours(n int) string {
	if n == 1 {
		return "hour"
	}
	return "hours"
}
