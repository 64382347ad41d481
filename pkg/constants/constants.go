// Package constants provides shared constants for the inflation-estimator application.
package constants

import "time"

// DateLayout is the format expected for input dates on the CLI, in config
// files and in API payloads.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// AverageDaysPerMonth is the fixed divisor used to turn elapsed days into
	// fractional months.
	AverageDaysPerMonth = 30.44

	// SecondsPerDay converts the distance between two UTC midnights into days
	SecondsPerDay = 24 * 60 * 60

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Locale constants
const (
	// DefaultLocale is the locale used for currency and date formatting when
	// none is configured.
	DefaultLocale = "es-AR"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "INFLATION"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRateLimitRequests is the number of estimate requests a client may
	// make per window.
	DefaultRateLimitRequests = 60

	// DefaultRateLimitWindow is the refill window for the rate limiter
	DefaultRateLimitWindow = time.Minute

	// DefaultCacheTTL is how long cached estimate reports are kept
	DefaultCacheTTL = 10 * time.Minute

	// DefaultCacheMaxEntries bounds the in-memory report cache
	DefaultCacheMaxEntries = 10000

	// DefaultShutdownTimeout bounds graceful server shutdown
	DefaultShutdownTimeout = 5 * time.Second
)
