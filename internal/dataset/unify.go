package dataset

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"

	"parkpulse/internal/config"
	"parkpulse/pkg/contracts/domain"
)

// unify merges the cleaned per-ride frames into one Table. The frames are
// outer-joined pairwise on the normalized timestamp, sorted ascending,
// gap-repaired per ride within each calendar day, and stripped of the
// closed-ride sentinel. Rides with no observations keep a fully missing
// column so every chart request sees the same shape.
func unify(frames []rideFrame) (*Table, error) {
	var unified dataframe.DataFrame
	started := false
	closed := make(map[domain.Ride]int, len(frames))
	empty := make(map[domain.Ride]bool, len(frames))

	for _, rf := range frames {
		closed[rf.ride] = rf.closed
		if rf.rows == 0 {
			empty[rf.ride] = true
			continue
		}
		if !started {
			unified = rf.df
			started = true
			continue
		}
		unified = unified.OuterJoin(rf.df, config.ColumnDatetime)
		if err := unified.Error(); err != nil {
			return nil, fmt.Errorf("join %s: %w", rf.ride, err)
		}
	}
	if !started {
		return nil, errors.New("all ride datasets are empty")
	}

	// Timestamps are normalized to a fixed-width layout, so lexicographic
	// order is chronological order.
	unified = unified.Arrange(dataframe.Sort(config.ColumnDatetime))
	if err := unified.Error(); err != nil {
		return nil, fmt.Errorf("sort by timestamp: %w", err)
	}

	timestamps := unified.Col(config.ColumnDatetime).Records()
	n := len(timestamps)
	years := make([]int, n)
	months := make([]int, n)
	days := make([]int, n)
	hours := make([]int, n)
	for i, ts := range timestamps {
		t, err := time.Parse(config.TimestampLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %q after join: %w", ts, err)
		}
		years[i] = t.Year()
		months[i] = int(t.Month())
		days[i] = t.Day()
		hours[i] = t.Hour()
	}

	waits := make(map[domain.Ride][]float64, len(domain.AllRides))
	for _, ride := range domain.AllRides {
		var vals []float64
		if empty[ride] {
			vals = make([]float64, n)
			for i := range vals {
				vals[i] = math.NaN()
			}
		} else {
			vals = unified.Col(WaitColumn(ride)).Float()
		}
		// Fill first, then drop the sentinel: a closed marker may have
		// propagated into neighbouring gaps and must vanish with its source.
		backfillWithinDay(vals, years, months, days)
		clearClosedSentinel(vals)
		waits[ride] = vals
	}

	return newTable(timestamps, years, months, days, hours, waits, closed), nil
}

// backfillWithinDay repairs missing observations by carrying the next later
// value of the same calendar day backward. The scan runs from the end so a
// single pass suffices; the carry resets at every day boundary, so a gap
// with no later observation that day stays missing.
func backfillWithinDay(vals []float64, years, months, days []int) {
	carry := math.NaN()
	lastKey := -1
	for i := len(vals) - 1; i >= 0; i-- {
		key := years[i]*10000 + months[i]*100 + days[i]
		if key != lastKey {
			carry = math.NaN()
			lastKey = key
		}
		if !math.IsNaN(vals[i]) {
			carry = vals[i]
		} else {
			vals[i] = carry
		}
	}
}

// clearClosedSentinel converts explicit closed markers, including any that
// the gap repair propagated, to missing so they never skew an average.
func clearClosedSentinel(vals []float64) {
	for i, v := range vals {
		if v == config.ClosedSentinel {
			vals[i] = math.NaN()
		}
	}
}
