package http

import (
	"context"
	"time"

	"parkpulse/internal/services"
	"parkpulse/pkg/contracts/domain"
)

// WaitTimeServiceInterface defines the chart and catalog operations the
// handlers need.
type WaitTimeServiceInterface interface {
	ChartData(ctx context.Context, selector domain.RideSelector, date time.Time) (domain.ChartData, error)
	Catalog(ctx context.Context) domain.RideCatalog
	Summary(ctx context.Context) (domain.DatasetSummary, error)
	DayRecords(ctx context.Context, date time.Time) ([][]string, error)
}

// HealthServiceInterface defines the health probe operations.
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
