package services

import "errors"

// Service errors
var (
	// Chart errors
	ErrUnknownRide = errors.New("unknown ride")
	ErrInvalidDate = errors.New("invalid date")

	// Dataset errors
	ErrDatasetNotReady = errors.New("dataset not loaded")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
