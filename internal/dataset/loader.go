package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/sync/errgroup"

	"parkpulse/internal/config"
	"parkpulse/pkg/contracts/domain"
)

// rideFrame is one ride's cleaned observations, ready for unification.
// rows == 0 marks a ride whose source file held no usable observations;
// its frame is not populated and the unifier substitutes a missing column.
type rideFrame struct {
	ride   domain.Ride
	df     dataframe.DataFrame
	rows   int
	closed int
}

// timestampLayouts are accepted on input; the first is the normalized
// storage format.
var timestampLayouts = []string{
	config.TimestampLayout,
	config.TimestampLayoutTZ,
	"2006-01-02 15:04",
}

// Load reads the five ride CSV files from dataDir concurrently and unifies
// them into a Table. A missing file, a missing required column or an
// unparseable timestamp is fatal; a file with no data rows is not.
func Load(ctx context.Context, dataDir string, logger *slog.Logger) (*Table, error) {
	start := time.Now()
	frames := make([]rideFrame, len(domain.AllRides))

	g, ctx := errgroup.WithContext(ctx)
	for i, ride := range domain.AllRides {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dataDir, FileName(ride))
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s dataset: %w", ride, err)
			}
			defer f.Close()

			rf, err := loadRide(ride, f)
			if err != nil {
				return fmt.Errorf("load %s dataset: %w", ride, err)
			}
			frames[i] = rf

			logger.InfoContext(ctx, "ride dataset loaded",
				"ride", ride,
				"file", filepath.Base(path),
				"rows", rf.rows,
				"closed_observations", rf.closed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table, err := unify(frames)
	if err != nil {
		return nil, fmt.Errorf("unify datasets: %w", err)
	}

	logger.InfoContext(ctx, "unified table built",
		"rows", table.Len(),
		"first_seen", table.Summary().FirstSeen,
		"last_seen", table.Summary().LastSeen,
		"duration", time.Since(start).String())
	return table, nil
}

// loadRide parses and cleans a single ride's CSV stream: it keeps only the
// timestamp and posted wait columns, drops rows without a posted wait,
// normalizes timestamps, and renames the wait column to its unified name.
func loadRide(ride domain.Ride, r io.Reader) (rideFrame, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return rideFrame{}, fmt.Errorf("read: %w", err)
	}
	if !hasDataRows(raw) {
		return rideFrame{ride: ride}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			config.ColumnDatetime:   series.String,
			config.ColumnPostedWait: series.Float,
			config.ColumnActualWait: series.Float,
		}),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"", "NA", "NaN", "null"}),
	)
	if df.Error() != nil {
		return rideFrame{}, fmt.Errorf("parse csv: %w", df.Error())
	}

	for _, col := range []string{config.ColumnDatetime, config.ColumnPostedWait} {
		if !hasColumn(df, col) {
			return rideFrame{}, fmt.Errorf("missing required column %q", col)
		}
	}

	// Everything except the timestamp and the posted wait is dropped here,
	// including the actuals column and the redundant date column.
	df = df.Select([]string{config.ColumnDatetime, config.ColumnPostedWait})
	if df.Error() != nil {
		return rideFrame{}, fmt.Errorf("select columns: %w", df.Error())
	}

	df = df.Filter(dataframe.F{
		Colname:    config.ColumnPostedWait,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool { return !el.IsNA() },
	})
	if df.Error() != nil {
		return rideFrame{}, fmt.Errorf("drop unposted rows: %w", df.Error())
	}
	if df.Nrow() == 0 {
		return rideFrame{ride: ride}, nil
	}

	normalized, err := normalizeTimestamps(df.Col(config.ColumnDatetime).Records())
	if err != nil {
		return rideFrame{}, err
	}
	df = df.Mutate(series.New(normalized, series.String, config.ColumnDatetime))
	if df.Error() != nil {
		return rideFrame{}, fmt.Errorf("normalize timestamps: %w", df.Error())
	}

	df = df.Rename(WaitColumn(ride), config.ColumnPostedWait)
	if df.Error() != nil {
		return rideFrame{}, fmt.Errorf("rename wait column: %w", df.Error())
	}

	closed := 0
	for _, v := range df.Col(WaitColumn(ride)).Float() {
		if v == config.ClosedSentinel {
			closed++
		}
	}

	return rideFrame{ride: ride, df: df, rows: df.Nrow(), closed: closed}, nil
}

// normalizeTimestamps parses every raw timestamp and re-renders it in the
// canonical layout, so that lexicographic order equals chronological order
// and the join key is identical across datasets.
func normalizeTimestamps(raw []string) ([]string, error) {
	out := make([]string, len(raw))
	for i, s := range raw {
		t, err := parseTimestamp(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out[i] = t.Format(config.TimestampLayout)
	}
	return out, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// hasDataRows reports whether the raw CSV contains at least one row beyond
// the header. Empty and header-only files are valid, they just contribute
// nothing.
func hasDataRows(raw []byte) bool {
	lines := 0
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
		if lines > 1 {
			return true
		}
	}
	return false
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
