package dataset

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkpulse/internal/shared/testutil"
	"parkpulse/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustFrame(t *testing.T, ride domain.Ride, csv string) rideFrame {
	t.Helper()
	rf, err := loadRide(ride, strings.NewReader(csv))
	require.NoError(t, err)
	return rf
}

// framesFor builds the full five-ride frame slice in dataset order; rides
// not present in csvs get a header-only (empty) source.
func framesFor(t *testing.T, csvs map[domain.Ride]string) []rideFrame {
	t.Helper()
	frames := make([]rideFrame, 0, len(domain.AllRides))
	for _, ride := range domain.AllRides {
		body, ok := csvs[ride]
		if !ok {
			body = "datetime,SPOSTMIN\n"
		}
		frames = append(frames, mustFrame(t, ride, body))
	}
	return frames
}

func TestLoadRideCleansSource(t *testing.T) {
	csv := `date,datetime,SACTMIN,SPOSTMIN
2021-01-01,2021-01-01 08:07:00,5,10
2021-01-01,2021-01-01T08:30:00,,15
2021-01-01,2021-01-01 09:00:00,3,
2021-01-01,2021-01-01 09:15:00,,20
`
	rf := mustFrame(t, domain.RideDinosaur, csv)

	assert.Equal(t, 3, rf.rows, "row without a posted wait should be dropped")
	assert.Equal(t, []string{"datetime", "SPOSTMIN_dino"}, rf.df.Names(),
		"date and actuals columns should be gone, wait column renamed")
	assert.Equal(t,
		[]string{"2021-01-01 08:07:00", "2021-01-01 08:30:00", "2021-01-01 09:15:00"},
		rf.df.Col("datetime").Records(),
		"timestamps should be normalized to the canonical layout")
	assert.Equal(t, []float64{10, 15, 20}, rf.df.Col("SPOSTMIN_dino").Float())
}

func TestLoadRideCountsClosedObservations(t *testing.T) {
	csv := `datetime,SPOSTMIN
2021-01-01 08:00:00,-999
2021-01-01 09:00:00,30
2021-01-01 10:00:00,-999
`
	rf := mustFrame(t, domain.RideNaviRiver, csv)

	assert.Equal(t, 3, rf.rows)
	assert.Equal(t, 2, rf.closed)
}

func TestLoadRideMissingRequiredColumn(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{
			name: "no posted wait column",
			csv:  "datetime,SACTMIN\n2021-01-01 08:00:00,5\n",
			want: `missing required column "SPOSTMIN"`,
		},
		{
			name: "no timestamp column",
			csv:  "date,SPOSTMIN\n2021-01-01,10\n",
			want: `missing required column "datetime"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadRide(domain.RideDinosaur, strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRideBadTimestamp(t *testing.T) {
	csv := "datetime,SPOSTMIN\nnot-a-time,10\n"

	_, err := loadRide(domain.RideDinosaur, strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable timestamp")
}

func TestLoadRideEmptySources(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "empty file", csv: ""},
		{name: "header only", csv: "datetime,SPOSTMIN\n"},
		{name: "no posted waits", csv: "datetime,SPOSTMIN\n2021-01-01 08:00:00,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rf, err := loadRide(domain.RideDinosaur, strings.NewReader(tt.csv))
			require.NoError(t, err, "an empty source is valid, it just contributes nothing")
			assert.Zero(t, rf.rows)
		})
	}
}

func TestLoadReadsDataDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, ride := range domain.AllRides {
		csv := "datetime,SPOSTMIN\n2021-06-01 09:00:00,25\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName(ride)), []byte(csv), 0o644))
	}

	logger, capture := testutil.NewTestLogger(t)
	table, err := Load(context.Background(), dir, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "2021-06-01 09:00:00", table.Summary().FirstSeen)

	assert.True(t, capture.HasMessage("unified table built"))
	for _, ride := range domain.AllRides {
		assert.True(t, capture.HasAttr("ride", ride))
	}
	assert.Zero(t, capture.CountLevel(slog.LevelError))
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	for _, ride := range domain.AllRides[:len(domain.AllRides)-1] {
		csv := "datetime,SPOSTMIN\n2021-06-01 09:00:00,25\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName(ride)), []byte(csv), 0o644))
	}

	_, err := Load(context.Background(), dir, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(domain.RideNaviRiver))
}
