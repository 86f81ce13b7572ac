package domain

// Static catalog of USGS monitoring stations on Missouri float rivers.
// Stage values are NWS flood stages in feet; optimal ranges reflect good
// floating conditions for each gauge.

func ft(v float64) *float64 { return &v }

func band(low, high float64) *Range { return &Range{Low: low, High: high} }

var rivers = []River{
	{
		ID:   "current-river",
		Name: "Current River",
		Stations: []Station{
			{
				ID: "07067000", Name: "Current River at Van Buren", Location: "Van Buren, MO",
				Lat: 36.9917, Lng: -91.0151,
				FloodStage: ft(20.0), ActionStage: ft(12.0), MinorFloodStage: ft(16.0),
				OptimalRange: band(3.0, 7.0),
			},
			{
				ID: "07066000", Name: "Current River at Doniphan", Location: "Doniphan, MO",
				Lat: 36.6206, Lng: -90.8234,
				FloodStage: ft(16.0), ActionStage: ft(10.0), MinorFloodStage: ft(13.0),
				OptimalRange: band(2.5, 6.0),
			},
			{
				// Spring-fed, more consistent; no published stages.
				ID: "07064533", Name: "Current River at Big Spring", Location: "Big Spring, MO",
				Lat: 36.9561, Lng: -91.1073,
				OptimalRange: band(2.0, 5.0),
			},
		},
	},
	{
		ID:   "meramec-river",
		Name: "Meramec River",
		Stations: []Station{
			{
				ID: "07019000", Name: "Meramec River near Eureka", Location: "Eureka, MO",
				Lat: 38.5047, Lng: -90.6279,
				FloodStage: ft(26.0), ActionStage: ft(19.0), MinorFloodStage: ft(22.0),
				OptimalRange: band(3.0, 8.0),
			},
			{
				ID: "07019130", Name: "Meramec River at Valley Park", Location: "Valley Park, MO",
				Lat: 38.5492, Lng: -90.4923,
				FloodStage: ft(25.0), ActionStage: ft(16.0), MinorFloodStage: ft(21.0),
				OptimalRange: band(2.5, 7.0),
			},
			{
				ID: "07018500", Name: "Meramec River near Sullivan", Location: "Sullivan, MO",
				Lat: 38.1589, Lng: -91.1779,
				FloodStage: ft(18.0), ActionStage: ft(12.0), MinorFloodStage: ft(15.0),
				OptimalRange: band(2.0, 6.0),
			},
		},
	},
	{
		ID:   "niangua-river",
		Name: "Niangua River",
		Stations: []Station{
			{
				ID: "06923700", Name: "Niangua River near Bennett Spring", Location: "Bennett Spring, MO",
				Lat: 37.7142, Lng: -92.8532,
				OptimalRange: band(2.0, 5.0),
			},
			{
				ID: "06923500", Name: "Niangua River at Tunnel Dam", Location: "Tunnel Dam, MO",
				Lat: 37.9711, Lng: -92.9921,
				FloodStage: ft(15.0), ActionStage: ft(9.0), MinorFloodStage: ft(12.0),
				OptimalRange: band(3.0, 7.0),
			},
		},
	},
	{
		ID:   "jacks-fork-river",
		Name: "Jacks Fork River",
		Stations: []Station{
			{
				ID: "07065495", Name: "Jacks Fork at Eminence", Location: "Eminence, MO",
				Lat: 37.1506, Lng: -91.3571,
				FloodStage: ft(12.0), ActionStage: ft(7.0), MinorFloodStage: ft(9.0),
				OptimalRange: band(2.0, 4.5),
			},
			{
				ID: "07065200", Name: "Jacks Fork at Alley Spring", Location: "Alley Spring, MO",
				Lat: 37.1433, Lng: -91.4468,
				OptimalRange: band(1.5, 4.0),
			},
		},
	},
	{
		ID:   "eleven-point-river",
		Name: "Eleven Point River",
		Stations: []Station{
			{
				ID: "07071500", Name: "Eleven Point River near Bardley", Location: "Bardley, MO",
				Lat: 36.6739, Lng: -91.0968,
				FloodStage: ft(14.0), ActionStage: ft(8.0), MinorFloodStage: ft(11.0),
				OptimalRange: band(2.5, 6.0),
			},
			{
				ID: "07071000", Name: "Eleven Point River at Greer", Location: "Greer, MO",
				Lat: 36.7939, Lng: -91.3468,
				OptimalRange: band(2.0, 5.0),
			},
		},
	},
	{
		ID:   "elk-river",
		Name: "Elk River",
		Stations: []Station{
			{
				ID: "07189540", Name: "Elk River near Pineville", Location: "Pineville, MO",
				Lat: 36.5948, Lng: -94.3841,
				FloodStage: ft(18.0), ActionStage: ft(12.0), MinorFloodStage: ft(15.0),
				OptimalRange: band(3.0, 8.0),
			},
			{
				ID: "07189000", Name: "Elk River near Tiff City", Location: "Tiff City, MO",
				Lat: 36.6334, Lng: -94.5902,
				FloodStage: ft(20.0), ActionStage: ft(13.0), MinorFloodStage: ft(16.0),
				OptimalRange: band(3.5, 9.0),
			},
		},
	},
	{
		ID:   "gasconade-river",
		Name: "Gasconade River",
		Stations: []Station{
			{
				ID: "06933500", Name: "Gasconade River at Jerome", Location: "Jerome, MO",
				Lat: 37.9234, Lng: -91.9678,
				FloodStage: ft(15.0), ActionStage: ft(10.0), MinorFloodStage: ft(12.0),
				OptimalRange: band(3.0, 7.0),
			},
			{
				ID: "06934500", Name: "Gasconade River near Rich Fountain", Location: "Rich Fountain, MO",
				Lat: 38.3856, Lng: -91.8234,
				FloodStage: ft(20.0), ActionStage: ft(14.0), MinorFloodStage: ft(17.0),
				OptimalRange: band(4.0, 9.0),
			},
		},
	},
	{
		ID:   "big-piney-river",
		Name: "Big Piney River",
		Stations: []Station{
			{
				ID: "06930800", Name: "Big Piney River near Big Piney", Location: "Big Piney, MO",
				Lat: 37.5678, Lng: -92.1234,
				OptimalRange: band(2.0, 5.0),
			},
		},
	},
	{
		ID:   "black-river",
		Name: "Black River",
		Stations: []Station{
			{
				ID: "07061000", Name: "Black River at Poplar Bluff", Location: "Poplar Bluff, MO",
				Lat: 36.7567, Lng: -90.3929,
				FloodStage: ft(16.0), ActionStage: ft(12.0), MinorFloodStage: ft(14.0),
				OptimalRange: band(3.0, 6.0),
			},
			{
				ID: "07061500", Name: "Black River at Annapolis", Location: "Annapolis, MO",
				Lat: 37.3456, Lng: -90.7123,
				OptimalRange: band(2.5, 5.5),
			},
		},
	},
	{
		ID:   "huzzah-creek",
		Name: "Huzzah Creek",
		Stations: []Station{
			{
				ID: "07019280", Name: "Huzzah Creek near Steelville", Location: "Steelville, MO",
				Lat: 37.9678, Lng: -91.3456,
				OptimalRange: band(1.5, 3.0),
			},
		},
	},
	{
		ID:   "courtois-creek",
		Name: "Courtois Creek",
		Stations: []Station{
			{
				ID: "07019300", Name: "Courtois Creek near Courtois", Location: "Courtois, MO",
				Lat: 37.9123, Lng: -91.1456,
				OptimalRange: band(1.5, 3.0),
			},
		},
	},
	{
		ID:   "north-fork-river",
		Name: "North Fork River",
		Stations: []Station{
			{
				ID: "07057500", Name: "North Fork River near Tecumseh", Location: "Tecumseh, MO",
				Lat: 36.5892, Lng: -92.2793,
				FloodStage: ft(12.0), ActionStage: ft(8.0), MinorFloodStage: ft(10.0),
				OptimalRange: band(3.0, 5.0),
			},
		},
	},
	{
		ID:   "james-river",
		Name: "James River",
		Stations: []Station{
			{
				ID: "07052500", Name: "James River at Galena", Location: "Galena, MO",
				Lat: 36.8034, Lng: -93.4668,
				FloodStage: ft(15.0), ActionStage: ft(10.0), MinorFloodStage: ft(12.0),
				OptimalRange: band(2.5, 5.0),
			},
		},
	},
	{
		ID:   "osage-river",
		Name: "Osage River",
		Stations: []Station{
			{
				ID: "06918250", Name: "Osage River at Taberville", Location: "Taberville, MO",
				Lat: 37.7739, Lng: -93.8818,
				FloodStage: ft(20.0), ActionStage: ft(14.0), MinorFloodStage: ft(17.0),
				OptimalRange: band(4.0, 9.0),
			},
			{
				ID: "06926000", Name: "Osage River near Bagnell", Location: "Bagnell, MO",
				Lat: 38.2111, Lng: -92.5946,
				FloodStage: ft(22.0), ActionStage: ft(15.0), MinorFloodStage: ft(18.0),
				OptimalRange: band(5.0, 12.0),
			},
			{
				ID: "06926510", Name: "Osage River below St. Thomas", Location: "St. Thomas, MO",
				Lat: 38.2567, Lng: -92.4234,
				OptimalRange: band(3.0, 8.0),
			},
		},
	},
	{
		ID:   "spring-river",
		Name: "Spring River",
		Stations: []Station{
			{
				ID: "07185250", Name: "Spring River below Verona", Location: "Verona, MO",
				Lat: 36.9734, Lng: -93.7329,
				FloodStage: ft(16.0), ActionStage: ft(10.0), MinorFloodStage: ft(13.0),
				OptimalRange: band(3.0, 7.0),
			},
			{
				ID: "07185700", Name: "Spring River at La Russell", Location: "La Russell, MO",
				Lat: 37.0456, Lng: -93.8129,
				OptimalRange: band(2.5, 6.0),
			},
		},
	},
	{
		ID:   "buffalo-creek",
		Name: "Buffalo Creek",
		Stations: []Station{
			{
				ID: "07189100", Name: "Buffalo Creek at Tiff City", Location: "Tiff City, MO",
				Lat: 36.6361, Lng: -94.5908,
				FloodStage: ft(12.0), ActionStage: ft(8.0), MinorFloodStage: ft(10.0),
				OptimalRange: band(2.0, 5.0),
			},
		},
	},
	{
		ID:   "big-river",
		Name: "Big River",
		Stations: []Station{
			{
				ID: "07019500", Name: "Big River at Byrnesville", Location: "Byrnesville, MO",
				Lat: 37.9234, Lng: -90.6123,
				FloodStage: ft(18.0), ActionStage: ft(12.0), MinorFloodStage: ft(15.0),
				OptimalRange: band(2.5, 6.0),
			},
		},
	},
	{
		ID:   "bourbeuse-river",
		Name: "Bourbeuse River",
		Stations: []Station{
			{
				ID: "07014500", Name: "Bourbeuse River near Union", Location: "Union, MO",
				Lat: 38.4467, Lng: -91.0045,
				FloodStage: ft(15.0), ActionStage: ft(10.0), MinorFloodStage: ft(12.0),
				OptimalRange: band(2.0, 5.0),
			},
		},
	},
	{
		ID:   "st-francis-river",
		Name: "St. Francis River",
		Stations: []Station{
			{
				ID: "07067500", Name: "St. Francis River near Roselle", Location: "Roselle, MO",
				Lat: 37.0856, Lng: -90.0734,
				FloodStage: ft(16.0), ActionStage: ft(11.0), MinorFloodStage: ft(13.0),
				OptimalRange: band(3.0, 7.0),
			},
		},
	},
	{
		ID:   "white-river",
		Name: "White River",
		Stations: []Station{
			{
				ID: "07052152", Name: "White River at Forsyth", Location: "Forsyth, MO",
				Lat: 36.6856, Lng: -93.1234,
				FloodStage: ft(14.0), ActionStage: ft(9.0), MinorFloodStage: ft(11.0),
				OptimalRange: band(2.5, 6.0),
			},
		},
	},
}

// Rivers returns the full registry in its stable catalog order.
func Rivers() []River { return rivers }

// RiverByID looks up a river by identifier.
func RiverByID(id string) (River, bool) {
	for _, r := range rivers {
		if r.ID == id {
			return r, true
		}
	}
	return River{}, false
}

// AllStationIDs returns every known station id, deduplicated, in catalog
// order. Used to build the single batch request to the USGS feed.
func AllStationIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range rivers {
		for _, s := range r.Stations {
			if _, ok := seen[s.ID]; ok {
				continue
			}
			seen[s.ID] = struct{}{}
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// StationIDsForRiver returns the station ids for one river, or an empty
// slice for an unknown river id. Callers iterate over possibly-stale
// river identifiers, so this never fails.
func StationIDsForRiver(riverID string) []string {
	r, ok := RiverByID(riverID)
	if !ok {
		return nil
	}
	ids := make([]string, len(r.Stations))
	for i, s := range r.Stations {
		ids[i] = s.ID
	}
	return ids
}

// FindStationByID searches all rivers for a station. Absence is an
// expected outcome: not every feed-returned site is tracked.
func FindStationByID(id string) (Station, bool) {
	for _, r := range rivers {
		for _, s := range r.Stations {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Station{}, false
}

// RiverForStation returns the river a station id belongs to.
func RiverForStation(id string) (River, bool) {
	for _, r := range rivers {
		for _, s := range r.Stations {
			if s.ID == id {
				return r, true
			}
		}
	}
	return River{}, false
}
