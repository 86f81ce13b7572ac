// Package domain models USGS river gauge data for Missouri float rivers.
//
// # Data Source
//
// Readings come from the USGS National Water Information System (NWIS)
// Instantaneous Values service, https://waterservices.usgs.gov/nwis/iv/.
// Each monitored site reports one time series per parameter code:
//
//	00065: gage height, feet
//	00060: discharge, cubic feet per second (CFS)
//	00010: water temperature, degrees Celsius (detail views only)
//
// Only the most recent instantaneous value of each series is used.
//
// # Stage Thresholds
//
// Station stage thresholds follow NWS flood terminology and are ordered
// actionStage < minorFloodStage < floodStage where defined. Not every
// station defines every stage; spring-fed gauges often carry only an
// optimal floating range.
//
// # Classification Tiers
//
// Gage heights classify into six tiers used to warn floaters away from
// unsafe water:
//
//	optimal:     inside the station's optimal range, green
//	low:         below the optimal range (a "very low" sub-tier sits at
//	             or below 70% of the range floor), yellow
//	high:        above the optimal range but under the action stage, orange
//	action:      at or above the NWS action stage, orange
//	minor-flood: at or above minor flood stage, red
//	flood:       at or above major flood stage, red
//
// low and high are co-equal caution tiers; severity otherwise increases
// monotonically with gage height. Stations without their own thresholds
// degrade to a generic per-river table, and unknown rivers degrade to a
// hardcoded default, so classification never fails for a numeric input.
//
// Discharge validation is a parallel, independent check over CFS values
// with its own per-river normal ranges. It never influences the gage
// height classification.
package domain
