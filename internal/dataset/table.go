package dataset

import (
	"math"
	"sort"
	"strconv"

	"parkpulse/internal/config"
	"parkpulse/pkg/contracts/domain"
)

// Table is the unified wait-time dataset: one row per timestamp observed by
// any ride, columns for every ride's repaired posted wait plus derived
// calendar fields. It is built once at startup and never mutated, so it is
// safe for concurrent readers.
type Table struct {
	timestamps []string
	years      []int
	months     []int
	days       []int
	hours      []int
	waits      map[domain.Ride][]float64
	summary    domain.DatasetSummary
}

func newTable(timestamps []string, years, months, days, hours []int, waits map[domain.Ride][]float64, closed map[domain.Ride]int) *Table {
	t := &Table{
		timestamps: timestamps,
		years:      years,
		months:     months,
		days:       days,
		hours:      hours,
		waits:      waits,
	}

	rides := make([]domain.RideCoverage, 0, len(domain.AllRides))
	for _, ride := range domain.AllRides {
		observed := 0
		for _, v := range waits[ride] {
			if !math.IsNaN(v) {
				observed++
			}
		}
		rides = append(rides, domain.RideCoverage{
			Ride:     ride,
			Label:    ride.DisplayName(),
			Observed: observed,
			Missing:  len(timestamps) - observed,
			Closed:   closed[ride],
		})
	}

	t.summary = domain.DatasetSummary{
		Rows:  len(timestamps),
		Rides: rides,
	}
	if len(timestamps) > 0 {
		t.summary.FirstSeen = timestamps[0]
		t.summary.LastSeen = timestamps[len(timestamps)-1]
	}
	return t
}

// Len returns the number of unified rows.
func (t *Table) Len() int {
	return len(t.timestamps)
}

// Summary describes the table's size, time span and per-ride coverage.
func (t *Table) Summary() domain.DatasetSummary {
	return t.summary
}

// MeanWaitByHour averages the ride's wait per hour of day across every row
// matching the given calendar day and month, in any year. Missing values are
// skipped; hours with no observations yield no point.
func (t *Table) MeanWaitByHour(ride domain.Ride, month, day int) []domain.HourlyPoint {
	var sums, counts [24]float64
	vals := t.waits[ride]
	for i := range t.timestamps {
		if t.months[i] != month || t.days[i] != day {
			continue
		}
		if v := vals[i]; !math.IsNaN(v) {
			sums[t.hours[i]] += v
			counts[t.hours[i]]++
		}
	}

	points := make([]domain.HourlyPoint, 0, 24)
	for hour := 0; hour < 24; hour++ {
		if counts[hour] == 0 {
			continue
		}
		points = append(points, domain.HourlyPoint{
			Hour:    hour,
			AvgWait: sums[hour] / counts[hour],
		})
	}
	return points
}

// MeanWaitByYear averages the ride's wait per year across every row matching
// the given calendar day and month. Points are ordered by ascending year;
// years with no observations yield no point.
func (t *Table) MeanWaitByYear(ride domain.Ride, month, day int) []domain.YearlyPoint {
	sums := make(map[int]float64)
	counts := make(map[int]float64)
	vals := t.waits[ride]
	for i := range t.timestamps {
		if t.months[i] != month || t.days[i] != day {
			continue
		}
		if v := vals[i]; !math.IsNaN(v) {
			sums[t.years[i]] += v
			counts[t.years[i]]++
		}
	}

	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)

	points := make([]domain.YearlyPoint, 0, len(years))
	for _, year := range years {
		points = append(points, domain.YearlyPoint{
			Year:    year,
			AvgWait: sums[year] / counts[year],
		})
	}
	return points
}

// DayRecords returns the unified rows matching the given calendar day and
// month as CSV-shaped records with a header row. Missing waits render as
// empty cells.
func (t *Table) DayRecords(month, day int) [][]string {
	header := make([]string, 0, 2+len(domain.AllRides)+3)
	header = append(header, config.ColumnDatetime)
	for _, ride := range domain.AllRides {
		header = append(header, WaitColumn(ride))
	}
	header = append(header, ColumnYear, ColumnMonth, ColumnDay, ColumnHour)

	records := [][]string{header}
	for i := range t.timestamps {
		if t.months[i] != month || t.days[i] != day {
			continue
		}
		row := make([]string, 0, len(header))
		row = append(row, t.timestamps[i])
		for _, ride := range domain.AllRides {
			row = append(row, formatWait(t.waits[ride][i]))
		}
		row = append(row,
			strconv.Itoa(t.years[i]),
			strconv.Itoa(t.months[i]),
			strconv.Itoa(t.days[i]),
			strconv.Itoa(t.hours[i]))
		records = append(records, row)
	}
	return records
}

func formatWait(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
