package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"parkpulse/internal/config"
	apierrors "parkpulse/internal/errors"
	"parkpulse/internal/middleware"
	"parkpulse/internal/services"
	"parkpulse/pkg/contracts/domain"
)

// ChartHandler serves the dashboard chart and ride catalog endpoints.
type ChartHandler struct {
	service      WaitTimeServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewChartHandler creates a new chart handler with RFC 7807 error handling
func NewChartHandler(service WaitTimeServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the chart routes
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/charts", h.GetCharts)
	r.Get("/rides", h.GetRides)
	return r
}

// chartQuery is the validated query surface of GET /charts. Missing
// parameters fall back to the dashboard defaults before validation.
type chartQuery struct {
	Ride string `validate:"required"`
	Date string `validate:"required,datetime=2006-01-02"`
}

// GetCharts handles GET /api/charts?ride=&date=
func (h *ChartHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	q := chartQuery{
		Ride: r.URL.Query().Get("ride"),
		Date: r.URL.Query().Get("date"),
	}
	if q.Ride == "" {
		q.Ride = domain.SelectorAll
	}
	if q.Date == "" {
		q.Date = config.MinDate
	}

	if err := h.validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation(field,
				fmt.Sprintf("invalid %s parameter", field)))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	selector, err := domain.ParseRideSelector(q.Ride)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	date, err := time.Parse(config.DateLayout, q.Date)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date",
			"date must be formatted YYYY-MM-DD"))
		return
	}

	data, err := h.service.ChartData(r.Context(), selector, date)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compute chart data",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())))

		if errors.Is(err, services.ErrDatasetNotReady) {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusServiceUnavailable,
				"DATASET_NOT_READY",
				"The wait time dataset is not loaded yet"))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, data)
}

// GetRides handles GET /api/rides
func (h *ChartHandler) GetRides(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Catalog(r.Context()))
}
