package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// envPrefix namespaces the CLI's environment variables.
const envPrefix = "HTML2PDF_"

// dotEnvFile is read from the working directory when present.
const dotEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath      string        // HTML2PDF_CONFIG: config file name or path
	OutDir          string        // HTML2PDF_OUT_DIR: output directory
	Timeout         time.Duration // HTML2PDF_TIMEOUT: per-item render timeout
	PageSize        string        // HTML2PDF_PAGE_SIZE: letter, a4, ...
	Media           string        // HTML2PDF_MEDIA: print or screen
	BrowserEndpoint string        // HTML2PDF_BROWSER_ENDPOINT: running browser
	BrowserArgs     []string      // HTML2PDF_BROWSER_ARGS: space-separated flags
	LogLevel        string        // HTML2PDF_LOG_LEVEL: logrus level name
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":           true,
	"HTML2PDF_OUT_DIR":          true,
	"HTML2PDF_TIMEOUT":          true,
	"HTML2PDF_PAGE_SIZE":        true,
	"HTML2PDF_MEDIA":            true,
	"HTML2PDF_BROWSER_ENDPOINT": true,
	"HTML2PDF_BROWSER_ARGS":     true,
	"HTML2PDF_LOG_LEVEL":        true,
}

// withDotEnv returns a lookup that falls back to the .env file in dir for
// names the real environment does not set. A missing or unreadable file
// leaves getenv unchanged.
func withDotEnv(dir string, getenv func(string) string) func(string) string {
	path := filepath.Join(dir, dotEnvFile)
	if !fileutil.FileExists(path) {
		return getenv
	}
	values, err := godotenv.Read(path)
	if err != nil || len(values) == 0 {
		return getenv
	}
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return values[key]
	}
}

// loadEnvConfig reads configuration from environment variables.
// Invalid durations are ignored, like unset ones.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:      getenv("HTML2PDF_CONFIG"),
		OutDir:          getenv("HTML2PDF_OUT_DIR"),
		PageSize:        getenv("HTML2PDF_PAGE_SIZE"),
		Media:           getenv("HTML2PDF_MEDIA"),
		BrowserEndpoint: getenv("HTML2PDF_BROWSER_ENDPOINT"),
		LogLevel:        getenv("HTML2PDF_LOG_LEVEL"),
	}

	if args := getenv("HTML2PDF_BROWSER_ARGS"); args != "" {
		cfg.BrowserArgs = strings.Fields(args)
	}

	if timeout := getenv("HTML2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2PDF_* variables.
// Helps catch typos like HTML2PDF_OUTDIR instead of HTML2PDF_OUT_DIR.
func warnUnknownEnvVars(log logrus.FieldLogger, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			log.WithField("name", name).Warn("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig overrides config values with the environment variables
// that are set. Order: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutDir != "" {
		cfg.Output.Dir = env.OutDir
	}
	if env.Timeout > 0 {
		cfg.Browser.Timeout = env.Timeout.String()
	}
	if env.PageSize != "" {
		cfg.Print.PageSize = env.PageSize
	}
	if env.Media != "" {
		cfg.Print.Media = env.Media
	}
	if env.BrowserEndpoint != "" {
		cfg.Browser.Endpoint = env.BrowserEndpoint
	}
	if len(env.BrowserArgs) > 0 {
		cfg.Browser.Args = env.BrowserArgs
	}
}
