package dataset

import (
	"parkpulse/internal/config"
	"parkpulse/pkg/contracts/domain"
)

// waitColumnSuffix gives each ride a short column suffix so the unified
// table keeps the original SPOSTMIN_<ride> naming of the source project.
var waitColumnSuffix = map[domain.Ride]string{
	domain.RideDinosaur:           "dino",
	domain.RideExpeditionEverest:  "everest",
	domain.RideFlightOfPassage:    "passage",
	domain.RideKilimanjaroSafaris: "safari",
	domain.RideNaviRiver:          "navi",
}

// WaitColumn returns the unified-table column that holds the ride's posted
// wait, e.g. "SPOSTMIN_dino".
func WaitColumn(ride domain.Ride) string {
	return config.ColumnPostedWait + "_" + waitColumnSuffix[ride]
}

// FileName returns the CSV file name expected in the data directory for the
// given ride, e.g. "dinosaur.csv".
func FileName(ride domain.Ride) string {
	return string(ride) + ".csv"
}

// Derived calendar columns added by the unifier.
const (
	ColumnYear  = "Year"
	ColumnMonth = "Month"
	ColumnDay   = "Day"
	ColumnHour  = "Hour"
)
