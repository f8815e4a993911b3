package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"parkpulse/internal/config"
	apierrors "parkpulse/internal/errors"
	"parkpulse/internal/exporter"
	"parkpulse/internal/middleware"
	"parkpulse/internal/services"
)

// DataHandler serves dataset introspection and export endpoints.
type DataHandler struct {
	service      WaitTimeServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(service WaitTimeServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/summary", h.GetSummary)
	r.Get("/export", h.ExportDay)
	return r
}

// GetSummary handles GET /api/data/summary
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// ExportDay handles GET /api/data/export?date=&format=. The export carries
// every unified row whose calendar day matches the date, across all years,
// mirroring what the charts aggregate.
func (h *DataHandler) ExportDay(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "date parameter is required"))
		return
	}
	date, err := time.Parse(config.DateLayout, rawDate)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "date must be formatted YYYY-MM-DD"))
		return
	}

	format, err := exporter.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", err.Error()))
		return
	}

	records, err := h.service.DayRecords(r.Context(), date)
	if err != nil {
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

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", format.FileName(date)))

	switch format {
	case exporter.FormatXLSX:
		err = exporter.WriteXLSX(w, records)
	default:
		err = exporter.WriteCSV(w, records)
	}
	if err != nil {
		// Headers are gone already; all we can do is log.
		h.logger.ErrorContext(r.Context(), "failed to stream export",
			slog.String("error", err.Error()),
			slog.String("format", string(format)),
			slog.String("request_id", middleware.GetRequestID(r.Context())))
	}
}
