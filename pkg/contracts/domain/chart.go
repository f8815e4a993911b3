package domain

// HourlyPoint is one point of the hourly average wait-time line chart.
// Hours with no observations on the selected day produce no point, so the
// series is sparse rather than zero-filled.
type HourlyPoint struct {
	Hour    int     `json:"hour" validate:"min=0,max=23"`
	AvgWait float64 `json:"avg_wait" validate:"min=0"`
}

// YearlyPoint is one bar of the yearly average wait-time chart.
type YearlyPoint struct {
	Year    int     `json:"year"`
	AvgWait float64 `json:"avg_wait" validate:"min=0"`
}

// HourlySeries is the hourly line series for a single ride.
type HourlySeries struct {
	Ride   Ride          `json:"ride"`
	Label  string        `json:"label"`
	Points []HourlyPoint `json:"points"`
}

// YearlySeries is the yearly bar series for a single ride. Points are
// ordered by ascending year.
type YearlySeries struct {
	Ride   Ride          `json:"ride"`
	Label  string        `json:"label"`
	Points []YearlyPoint `json:"points"`
}

// ChartData bundles the two chart views computed for one (selector, date)
// request: one series per selected ride in each view.
type ChartData struct {
	Date   string         `json:"date"`
	Hourly []HourlySeries `json:"hourly"`
	Yearly []YearlySeries `json:"yearly"`
}

// RideOption is one entry of the dashboard ride dropdown.
type RideOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// RideCatalog describes the selector options and the supported date range
// for the single-date picker.
type RideCatalog struct {
	Options []RideOption `json:"options"`
	MinDate string       `json:"min_date"`
	MaxDate string       `json:"max_date"`
}
