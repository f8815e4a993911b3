package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"parkpulse/internal/dataset"
	"parkpulse/pkg/contracts/domain"
)

// DataDirValidator checks the wait-time data directory before a load is
// attempted, so a missing or misnamed source surfaces as a clear startup
// error instead of a mid-pipeline failure.
type DataDirValidator struct {
	logger *slog.Logger
}

// NewDataDirValidator creates a validator for ride CSV source directories.
func NewDataDirValidator(logger *slog.Logger) *DataDirValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataDirValidator{
		logger: logger,
	}
}

// ValidateDataDirectory verifies that dir exists, is a directory, and
// contains a readable CSV for every known ride.
func (v *DataDirValidator) ValidateDataDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Data directory does not exist",
			slog.String("directory", dir))
		return fmt.Errorf("data directory %s does not exist", dir)
	}
	if err != nil {
		v.logger.Error("Failed to stat data directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		v.logger.Error("Data path is not a directory",
			slog.String("path", dir))
		return fmt.Errorf("%s is not a directory", dir)
	}

	var missing []string
	for _, ride := range domain.AllRides {
		path := filepath.Join(dir, dataset.FileName(ride))
		if err := v.ValidateCSVFile(path); err != nil {
			missing = append(missing, dataset.FileName(ride))
		}
	}
	if len(missing) > 0 {
		v.logger.Error("Data directory is missing ride sources",
			slog.String("directory", dir),
			slog.String("missing", strings.Join(missing, ", ")))
		return fmt.Errorf("data directory %s is missing ride sources: %s",
			dir, strings.Join(missing, ", "))
	}

	v.logger.Info("Data directory validated",
		slog.String("directory", dir),
		slog.Int("rides", len(domain.AllRides)))
	return nil
}

// ValidateOutputDirectory ensures the export directory exists and is writable.
func (v *DataDirValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}

// ValidateFile checks that a specific file exists and is readable.
func (v *DataDirValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	// Check readability by opening it
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateCSVFile checks that a file exists, is readable, and carries a
// .csv extension.
func (v *DataDirValidator) ValidateCSVFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" {
		return fmt.Errorf("file %s is not a CSV file (extension: %s)", path, ext)
	}

	return nil
}
