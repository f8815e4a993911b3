package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkpulse/pkg/contracts/domain"
)

func TestUnifyJoinCompleteness(t *testing.T) {
	frames := framesFor(t, map[domain.Ride]string{
		domain.RideDinosaur: `datetime,SPOSTMIN
2021-03-05 08:00:00,10
2021-03-05 09:00:00,20
`,
		domain.RideExpeditionEverest: `datetime,SPOSTMIN
2021-03-05 09:00:00,30
2021-03-05 10:00:00,40
`,
	})

	table, err := unify(frames)
	require.NoError(t, err)

	// Union of timestamps, sorted ascending.
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{
		"2021-03-05 08:00:00",
		"2021-03-05 09:00:00",
		"2021-03-05 10:00:00",
	}, table.timestamps)

	// Dinosaur has no observation at 10:00 and no later value that day, so
	// the gap stays missing.
	dino := table.waits[domain.RideDinosaur]
	assert.Equal(t, []float64{10, 20}, dino[:2])
	assert.True(t, math.IsNaN(dino[2]))

	// Everest's 08:00 gap is repaired from its 09:00 observation.
	assert.Equal(t, []float64{30, 30, 40}, table.waits[domain.RideExpeditionEverest])
}

func TestUnifyEmptyRideKeepsColumn(t *testing.T) {
	frames := framesFor(t, map[domain.Ride]string{
		domain.RideDinosaur: `datetime,SPOSTMIN
2021-03-05 08:00:00,10
`,
	})

	table, err := unify(frames)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	for _, ride := range domain.AllRides[1:] {
		assert.True(t, math.IsNaN(table.waits[ride][0]), "ride %s should be all missing", ride)
	}

	var navi domain.RideCoverage
	for _, rc := range table.Summary().Rides {
		if rc.Ride == domain.RideNaviRiver {
			navi = rc
		}
	}
	assert.Zero(t, navi.Observed)
	assert.Equal(t, 1, navi.Missing)
}

func TestUnifyAllEmptyIsFatal(t *testing.T) {
	_, err := unify(framesFor(t, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestUnifyClosedSentinelClearedAfterFill(t *testing.T) {
	// Everest's 08:30 row forces a dinosaur gap right before the closed
	// marker; the repair propagates -999 into it and the normalization then
	// erases both.
	frames := framesFor(t, map[domain.Ride]string{
		domain.RideDinosaur: `datetime,SPOSTMIN
2021-03-05 08:00:00,10
2021-03-05 09:00:00,-999
`,
		domain.RideExpeditionEverest: `datetime,SPOSTMIN
2021-03-05 08:30:00,5
`,
	})

	table, err := unify(frames)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	dino := table.waits[domain.RideDinosaur]
	assert.Equal(t, 10.0, dino[0])
	assert.True(t, math.IsNaN(dino[1]), "gap filled from a closed marker must end up missing")
	assert.True(t, math.IsNaN(dino[2]), "closed marker itself must end up missing")

	for _, rc := range table.Summary().Rides {
		if rc.Ride == domain.RideDinosaur {
			assert.Equal(t, 1, rc.Observed)
			assert.Equal(t, 1, rc.Closed)
		}
	}
}

func TestBackfillWithinDay(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name string
		vals []float64
		days []int
		want []float64
	}{
		{
			name: "fill resets at day boundary",
			vals: []float64{nan, 5, nan, nan, 7},
			days: []int{1, 1, 2, 2, 2},
			want: []float64{5, 5, 7, 7, 7},
		},
		{
			name: "trailing gap stays missing",
			vals: []float64{nan, 5, nan},
			days: []int{1, 1, 1},
			want: []float64{5, 5, nan},
		},
		{
			name: "no observations at all",
			vals: []float64{nan, nan},
			days: []int{1, 1},
			want: []float64{nan, nan},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years := make([]int, len(tt.vals))
			months := make([]int, len(tt.vals))
			for i := range years {
				years[i] = 2021
				months[i] = 3
			}
			backfillWithinDay(tt.vals, years, months, tt.days)

			require.Len(t, tt.vals, len(tt.want))
			for i := range tt.want {
				if math.IsNaN(tt.want[i]) {
					assert.True(t, math.IsNaN(tt.vals[i]), "index %d", i)
				} else {
					assert.Equal(t, tt.want[i], tt.vals[i], "index %d", i)
				}
			}
		})
	}
}

func TestUnifyDeterministic(t *testing.T) {
	sources := map[domain.Ride]string{
		domain.RideDinosaur: `datetime,SPOSTMIN
2021-07-04 09:00:00,10
2021-07-04 10:00:00,-999
2022-07-04 09:00:00,30
`,
		domain.RideFlightOfPassage: `datetime,SPOSTMIN
2021-07-04 09:30:00,120
2022-07-04 09:00:00,90
`,
	}

	first, err := unify(framesFor(t, sources))
	require.NoError(t, err)
	second, err := unify(framesFor(t, sources))
	require.NoError(t, err)

	assert.Equal(t, first.Summary(), second.Summary())
	assert.Equal(t, first.DayRecords(7, 4), second.DayRecords(7, 4))
	for _, ride := range domain.AllRides {
		assert.Equal(t,
			first.MeanWaitByHour(ride, 7, 4),
			second.MeanWaitByHour(ride, 7, 4), "hourly means for %s", ride)
	}
}
