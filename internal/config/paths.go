package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	LogsDir       string
	ExportsDir    string
}

// GetPaths returns the application paths relative to the executable location
// All paths are always relative to the executable directory, never the
// current working directory, so the binary behaves the same from anywhere.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	exeDir := filepath.Dir(exe)
	dataDir := filepath.Join(exeDir, DefaultDataDir)

	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		LogsDir:       filepath.Join(exeDir, DefaultLogsDir),
		ExportsDir:    filepath.Join(dataDir, "exports"),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.LogsDir, p.ExportsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetDataFilePath returns the path of a dataset file inside the data directory
func (p *Paths) GetDataFilePath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetExportPath returns the path for a generated export file
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
