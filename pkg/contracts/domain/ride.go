package domain

import (
	"fmt"
	"strings"
)

// Ride identifies one of the five Animal Kingdom attractions covered by the
// wait-time datasets. The string value doubles as the API slug used by the
// ride selector and as the dataset file stem.
type Ride string

const (
	RideDinosaur           Ride = "dinosaur"
	RideExpeditionEverest  Ride = "expedition_everest"
	RideFlightOfPassage    Ride = "flight_of_passage"
	RideKilimanjaroSafaris Ride = "kilimanjaro_safaris"
	RideNaviRiver          Ride = "navi_river"
)

// AllRides lists every ride in dataset order. The order is load-bearing for
// the unifier's pairwise join chain and for multi-series chart responses.
var AllRides = []Ride{
	RideDinosaur,
	RideExpeditionEverest,
	RideFlightOfPassage,
	RideKilimanjaroSafaris,
	RideNaviRiver,
}

// rideNames maps rides to their display names as shown in the dashboard.
var rideNames = map[Ride]string{
	RideDinosaur:           "Dinosaur",
	RideExpeditionEverest:  "Expedition Everest",
	RideFlightOfPassage:    "Flight of Passage",
	RideKilimanjaroSafaris: "Kilimanjaro Safaris",
	RideNaviRiver:          "Navi River Journey",
}

// DisplayName returns the human-readable attraction name.
func (r Ride) DisplayName() string {
	if name, ok := rideNames[r]; ok {
		return name
	}
	return string(r)
}

// Valid reports whether the ride is one of the five known attractions.
func (r Ride) Valid() bool {
	_, ok := rideNames[r]
	return ok
}

// ParseRide converts an API slug into a Ride. The comparison is
// case-insensitive and accepts hyphens in place of underscores.
func ParseRide(s string) (Ride, error) {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	r := Ride(slug)
	if !r.Valid() {
		return "", fmt.Errorf("unknown ride %q", s)
	}
	return r, nil
}

// RideSelector is either a single ride or the "all rides" wildcard used by
// the dashboard dropdown.
type RideSelector struct {
	All  bool
	Ride Ride
}

// SelectorAll is the wildcard slug accepted by the charts endpoint.
const SelectorAll = "all"

// ParseRideSelector converts an API slug into a RideSelector.
func ParseRideSelector(s string) (RideSelector, error) {
	if strings.EqualFold(strings.TrimSpace(s), SelectorAll) {
		return RideSelector{All: true}, nil
	}
	ride, err := ParseRide(s)
	if err != nil {
		return RideSelector{}, err
	}
	return RideSelector{Ride: ride}, nil
}

// Rides expands the selector into the concrete rides to chart.
func (s RideSelector) Rides() []Ride {
	if s.All {
		return AllRides
	}
	return []Ride{s.Ride}
}
