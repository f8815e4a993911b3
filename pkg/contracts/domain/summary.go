package domain

// RideCoverage reports per-ride data quality for the unified table.
// Closed counts the -999 sentinel observations found at load time; the
// sentinel itself is normalized to missing before serving, so this is the
// only place the open/closed distinction survives.
type RideCoverage struct {
	Ride     Ride   `json:"ride"`
	Label    string `json:"label"`
	Observed int    `json:"observed"`
	Missing  int    `json:"missing"`
	Closed   int    `json:"closed"`
}

// DatasetSummary describes the unified wait-time table built at startup.
type DatasetSummary struct {
	Rows      int            `json:"rows"`
	FirstSeen string         `json:"first_seen"`
	LastSeen  string         `json:"last_seen"`
	Rides     []RideCoverage `json:"rides"`
}
