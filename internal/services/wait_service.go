package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parkpulse/internal/config"
	"parkpulse/internal/dataset"
	"parkpulse/pkg/contracts/domain"
)

// WaitTimeService answers the dashboard's chart and catalog queries from the
// unified wait-time table.
type WaitTimeService struct {
	table  *dataset.Table
	logger *slog.Logger
}

// NewWaitTimeService creates a wait time service backed by the given table.
func NewWaitTimeService(table *dataset.Table, logger *slog.Logger) *WaitTimeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WaitTimeService{
		table:  table,
		logger: logger,
	}
}

// ChartData computes the hourly and yearly average wait series for the
// selected rides on the selected calendar day. Only the day and month of the
// date matter: the hourly view averages matching rows across all years, the
// yearly view groups them by year. A date matching no rows yields empty
// series, not an error.
func (s *WaitTimeService) ChartData(ctx context.Context, selector domain.RideSelector, date time.Time) (domain.ChartData, error) {
	if s.table == nil {
		return domain.ChartData{}, ErrDatasetNotReady
	}
	if !selector.All && !selector.Ride.Valid() {
		return domain.ChartData{}, fmt.Errorf("%w: %q", ErrUnknownRide, selector.Ride)
	}

	start := time.Now()
	month, day := int(date.Month()), date.Day()
	rides := selector.Rides()

	data := domain.ChartData{
		Date:   date.Format(config.DateLayout),
		Hourly: make([]domain.HourlySeries, 0, len(rides)),
		Yearly: make([]domain.YearlySeries, 0, len(rides)),
	}
	for _, ride := range rides {
		data.Hourly = append(data.Hourly, domain.HourlySeries{
			Ride:   ride,
			Label:  ride.DisplayName(),
			Points: s.table.MeanWaitByHour(ride, month, day),
		})
		data.Yearly = append(data.Yearly, domain.YearlySeries{
			Ride:   ride,
			Label:  ride.DisplayName(),
			Points: s.table.MeanWaitByYear(ride, month, day),
		})
	}

	s.logger.DebugContext(ctx, "chart data computed",
		slog.String("date", data.Date),
		slog.Int("rides", len(rides)),
		slog.Duration("duration", time.Since(start)))
	return data, nil
}

// Catalog returns the ride dropdown options and the supported date range.
// The wildcard entry comes first, mirroring the dashboard default.
func (s *WaitTimeService) Catalog(ctx context.Context) domain.RideCatalog {
	options := make([]domain.RideOption, 0, len(domain.AllRides)+1)
	options = append(options, domain.RideOption{Value: domain.SelectorAll, Label: "All Rides"})
	for _, ride := range domain.AllRides {
		options = append(options, domain.RideOption{
			Value: string(ride),
			Label: ride.DisplayName(),
		})
	}
	return domain.RideCatalog{
		Options: options,
		MinDate: config.MinDate,
		MaxDate: config.MaxDate,
	}
}

// Summary describes the unified table: row count, covered time span and
// per-ride observation coverage.
func (s *WaitTimeService) Summary(ctx context.Context) (domain.DatasetSummary, error) {
	if s.table == nil {
		return domain.DatasetSummary{}, ErrDatasetNotReady
	}
	return s.table.Summary(), nil
}

// DayRecords returns the unified rows for the date's calendar day as
// CSV-shaped records, header included. Used by the export endpoint.
func (s *WaitTimeService) DayRecords(ctx context.Context, date time.Time) ([][]string, error) {
	if s.table == nil {
		return nil, ErrDatasetNotReady
	}
	return s.table.DayRecords(int(date.Month()), date.Day()), nil
}
