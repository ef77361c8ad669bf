package options

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/leadmarket/leadmarket/pkg/logger"
)

// Options holds configuration for the lead marketplace gateway.
type Options struct {
	// HTTPAddress is the address the server listens on, e.g. "127.0.0.1:4180".
	HTTPAddress string `cfg:"http_address" flag:"http-address"`

	// Secret is the shared HMAC key used to sign and verify auth tokens.
	Secret string `cfg:"secret" flag:"secret"`

	// DatabaseURL is the postgres connection string for the user/lead store.
	DatabaseURL string `cfg:"database_url" flag:"database-url"`

	// TokenTTL bounds the lifetime of issued auth tokens.
	TokenTTL time.Duration `cfg:"token_ttl" flag:"token-ttl"`

	// RequestIDHeader is the header to copy request IDs from, when present.
	RequestIDHeader string `cfg:"request_id_header" flag:"request-id-header"`

	// EnableMetrics mounts the prometheus metrics endpoint.
	EnableMetrics bool `cfg:"enable_metrics" flag:"enable-metrics"`

	Cookie  Cookie  `cfg:",squash"`
	Logging Logging `cfg:",squash"`
}

// Cookie contains configuration options for the auth token cookie.
type Cookie struct {
	Name     string        `cfg:"cookie_name" flag:"cookie-name"`
	Path     string        `cfg:"cookie_path" flag:"cookie-path"`
	Domains  []string      `cfg:"cookie_domains" flag:"cookie-domain"`
	Expire   time.Duration `cfg:"cookie_expire" flag:"cookie-expire"`
	Secure   bool          `cfg:"cookie_secure" flag:"cookie-secure"`
	HTTPOnly bool          `cfg:"cookie_httponly" flag:"cookie-httponly"`
	SameSite string        `cfg:"cookie_samesite" flag:"cookie-samesite"`
}

// Logging contains all options required for configuring the logging.
type Logging struct {
	AuthEnabled     bool           `cfg:"auth_logging" flag:"auth-logging"`
	AuthFormat      string         `cfg:"auth_logging_format" flag:"auth-logging-format"`
	StandardEnabled bool           `cfg:"standard_logging" flag:"standard-logging"`
	StandardFormat  string         `cfg:"standard_logging_format" flag:"standard-logging-format"`
	RequestEnabled  bool           `cfg:"request_logging" flag:"request-logging"`
	RequestFormat   string         `cfg:"request_logging_format" flag:"request-logging-format"`
	ExcludePaths    []string       `cfg:"exclude_logging_paths" flag:"exclude-logging-path"`
	LocalTime       bool           `cfg:"logging_local_time" flag:"logging-local-time"`
	File            LogFileOptions `cfg:",squash"`
}

// LogFileOptions contains options for configuring logging to a file.
type LogFileOptions struct {
	Filename   string `cfg:"logging_filename" flag:"logging-filename"`
	MaxSize    int    `cfg:"logging_max_size" flag:"logging-max-size"`
	MaxBackups int    `cfg:"logging_max_backups" flag:"logging-max-backups"`
	MaxAge     int    `cfg:"logging_max_age" flag:"logging-max-age"`
	Compress   bool   `cfg:"logging_compress" flag:"logging-compress"`
}

// NewOptions constructs a new Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTPAddress:     "127.0.0.1:4180",
		TokenTTL:        time.Hour * 24,
		RequestIDHeader: "X-Request-Id",
		EnableMetrics:   true,
		Cookie: Cookie{
			Name:     "token",
			Path:     "/",
			Expire:   time.Hour * 24,
			Secure:   true,
			HTTPOnly: true,
			SameSite: "lax",
		},
		Logging: Logging{
			AuthEnabled:     true,
			AuthFormat:      logger.DefaultAuthLoggingFormat,
			StandardEnabled: true,
			StandardFormat:  logger.DefaultStandardLoggingFormat,
			RequestEnabled:  true,
			RequestFormat:   logger.DefaultRequestLoggingFormat,
			ExcludePaths:    nil,
			LocalTime:       true,
			File: LogFileOptions{
				MaxSize:    100,
				MaxBackups: 0,
				MaxAge:     7,
				Compress:   false,
			},
		},
	}
}

// NewFlagSet creates a new FlagSet with all of the flags required by Options.
func NewFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("leadmarket", pflag.ExitOnError)

	flagSet.String("http-address", "127.0.0.1:4180", "[http://]<addr>:<port> to listen on")
	flagSet.String("secret", "", "the shared secret used to sign and verify auth tokens")
	flagSet.String("database-url", "", "postgres connection string for the user/lead store")
	flagSet.Duration("token-ttl", time.Hour*24, "lifetime of issued auth tokens")
	flagSet.String("request-id-header", "X-Request-Id", "request header to use as the request ID")
	flagSet.Bool("enable-metrics", true, "enable the /metrics endpoint")

	flagSet.String("cookie-name", "token", "the name of the cookie that carries the auth token")
	flagSet.String("cookie-path", "/", "an optional cookie path to force cookies to")
	flagSet.StringSlice("cookie-domain", nil, "optional cookie domains to force cookies to (may be given multiple times)")
	flagSet.Duration("cookie-expire", time.Hour*24, "expire timeframe for the cookie")
	flagSet.Bool("cookie-secure", true, "set secure (HTTPS only) cookie flag")
	flagSet.Bool("cookie-httponly", true, "set HttpOnly cookie flag")
	flagSet.String("cookie-samesite", "lax", "set SameSite cookie attribute (\"lax\", \"strict\", \"none\", or \"\")")

	flagSet.Bool("auth-logging", true, "log authentication attempts")
	flagSet.String("auth-logging-format", logger.DefaultAuthLoggingFormat, "template for authentication log lines")
	flagSet.Bool("standard-logging", true, "log standard runtime information")
	flagSet.String("standard-logging-format", logger.DefaultStandardLoggingFormat, "template for standard log lines")
	flagSet.Bool("request-logging", true, "log HTTP requests")
	flagSet.String("request-logging-format", logger.DefaultRequestLoggingFormat, "template for HTTP request log lines")
	flagSet.StringSlice("exclude-logging-path", nil, "exclude logging requests to paths (eg: \"/ping,/metrics\")")
	flagSet.Bool("logging-local-time", true, "if true, log timestamps in local time, otherwise UTC")
	flagSet.String("logging-filename", "", "file to log to, empty for stderr")
	flagSet.Int("logging-max-size", 100, "maximum size in megabytes of the log file before rotation")
	flagSet.Int("logging-max-backups", 0, "maximum number of old log files to retain, 0 to disable")
	flagSet.Int("logging-max-age", 7, "maximum number of days to retain old log files")
	flagSet.Bool("logging-compress", false, "gzip rotated log files")

	return flagSet
}
