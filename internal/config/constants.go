package config

// Application constants - all hardcoded values for the Park Pulse system
const (
	// Application Info
	AppName    = "Park Pulse"
	AppVersion = "1.2.0"

	// Environment variable namespace (PARKPULSE_SERVER_PORT, ...)
	EnvPrefix = "PARKPULSE"

	// Optional YAML config file next to the executable
	ConfigFileName = "config.yaml"

	// ClosedSentinel is the literal the source datasets use for "ride
	// explicitly marked closed", distinct from ordinary missingness. It is
	// normalized to missing once gap repair has run.
	ClosedSentinel = -999

	// Supported range of the dashboard date picker. Dates outside the range
	// simply match no rows, they are not an error.
	MinDate = "2021-01-01"
	MaxDate = "2022-12-31"

	// Dataset column names as they appear in the source CSV files
	ColumnDatetime   = "datetime"
	ColumnDate       = "date"
	ColumnPostedWait = "SPOSTMIN"
	ColumnActualWait = "SACTMIN"

	// Timestamp layouts accepted by the loader; the first is also the
	// normalized storage format of the unified table
	TimestampLayout   = "2006-01-02 15:04:05"
	TimestampLayoutTZ = "2006-01-02T15:04:05"
	DateLayout        = "2006-01-02"

	// File Paths (relative to executable)
	DefaultDataDir = "data"
	DefaultLogsDir = "logs"
)
