package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkpulse/internal/dataset"
	"parkpulse/pkg/contracts/domain"
)

func testValidator(t *testing.T) *DataDirValidator {
	t.Helper()
	return NewDataDirValidator(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))
}

func writeRideSources(t *testing.T, dir string, rides []domain.Ride) {
	t.Helper()
	for _, ride := range rides {
		path := filepath.Join(dir, dataset.FileName(ride))
		require.NoError(t, os.WriteFile(path, []byte("datetime,SPOSTMIN\n"), 0644))
	}
}

func TestValidateDataDirectory(t *testing.T) {
	t.Run("all sources present", func(t *testing.T) {
		dir := t.TempDir()
		writeRideSources(t, dir, domain.AllRides)

		err := testValidator(t).ValidateDataDirectory(dir)
		assert.NoError(t, err)
	})

	t.Run("missing ride source", func(t *testing.T) {
		dir := t.TempDir()
		writeRideSources(t, dir, domain.AllRides[:len(domain.AllRides)-1])

		err := testValidator(t).ValidateDataDirectory(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing ride sources")
		assert.Contains(t, err.Error(), dataset.FileName(domain.AllRides[len(domain.AllRides)-1]))
	})

	t.Run("directory does not exist", func(t *testing.T) {
		err := testValidator(t).ValidateDataDirectory(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("path is a file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "data")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		err := testValidator(t).ValidateDataDirectory(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a directory")
	})
}

func TestValidateOutputDirectory(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exports", "daily")

		err := testValidator(t).ValidateOutputDirectory(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("removes write probe", func(t *testing.T) {
		dir := t.TempDir()

		require.NoError(t, testValidator(t).ValidateOutputDirectory(dir))

		_, err := os.Stat(filepath.Join(dir, ".write_test"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestValidateCSVFile(t *testing.T) {
	v := testValidator(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "dinosaur.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("datetime,SPOSTMIN\n"), 0644))
	assert.NoError(t, v.ValidateCSVFile(csvPath))

	txtPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("hello"), 0644))
	err := v.ValidateCSVFile(txtPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a CSV file")

	err = v.ValidateCSVFile(filepath.Join(dir, "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
