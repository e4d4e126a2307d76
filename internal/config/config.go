// Package config loads the YAML configuration file of the html2pdf CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096  // Filesystem paths and glob patterns
	MaxURLLength       = 2048  // Browser limit
	MaxTemplateLength  = 65536 // Header/footer HTML templates
	MaxShortLength     = 64    // Page size, media, dimensions, ranges
	MaxSelectorLength  = 512   // CSS selector for the outline container
	MaxListLength      = 256   // Entries in any list field
	appConfigDirectory = "go-html2pdf"
)

// Scale bounds accepted by Chrome's Page.printToPDF.
const (
	MinScale = 0.1
	MaxScale = 2.0
)

// Config holds all file-based configuration. Zero values mean "not set".
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Print   PrintConfig   `yaml:"print"`
	Browser BrowserConfig `yaml:"browser"`
	Access  AccessConfig  `yaml:"access"`
	Inject  InjectConfig  `yaml:"inject"`
	Outline OutlineConfig `yaml:"outline"`
}

// InputConfig defines default inputs used when none are given on the command line.
type InputConfig struct {
	Paths []string `yaml:"paths"` // URLs or glob patterns
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir  string `yaml:"dir"`  // Relative to the working directory unless absolute
	File string `yaml:"file"` // Only used for single-input runs
	HTML bool   `yaml:"html"` // Capture HTML instead of printing PDF
}

// PrintConfig mirrors the print-layout options passed to the browser.
type PrintConfig struct {
	PageSize          string  `yaml:"pageSize"` // "letter", "a4", ...
	Width             string  `yaml:"width"`    // "210mm", "8.5in", "800" (px)
	Height            string  `yaml:"height"`
	Landscape         bool    `yaml:"landscape"`
	Scale             float64 `yaml:"scale"`  // 0.1 to 2.0, 0 = browser default
	Margin            string  `yaml:"margin"` // "top=1cm,bottom=2cm"
	PrintBackground   bool    `yaml:"printBackground"`
	OmitBackground    bool    `yaml:"omitBackground"`
	PreferCSSPageSize bool    `yaml:"preferCSSPageSize"`
	PageRanges        string  `yaml:"pageRanges"` // "1-5, 8"
	HeaderTemplate    string  `yaml:"headerTemplate"`
	FooterTemplate    string  `yaml:"footerTemplate"`
	Media             string  `yaml:"media"` // "print" or "screen"
}

// BrowserConfig defines how the rendering browser is obtained.
type BrowserConfig struct {
	Endpoint          string   `yaml:"endpoint"` // ws:// or http:// DevTools endpoint
	Args              []string `yaml:"args"`     // "--name=value" launcher flags
	Headless          *bool    `yaml:"headless"` // nil = default (true)
	Timeout           string   `yaml:"timeout"`  // Go duration, e.g. "45s"
	IgnoreHTTPSErrors bool     `yaml:"ignoreHTTPSErrors"`
}

// AccessConfig restricts which resources pages may load.
type AccessConfig struct {
	BlockLocal     bool     `yaml:"blockLocal"`
	BlockRemote    bool     `yaml:"blockRemote"`
	AllowedPaths   []string `yaml:"allowedPaths"`
	AllowedDomains []string `yaml:"allowedDomains"`
}

// InjectConfig lists scripts and styles added to every page after load.
type InjectConfig struct {
	Scripts []string `yaml:"scripts"` // URLs or file paths
	Styles  []string `yaml:"styles"`
}

// OutlineConfig controls PDF bookmark generation.
type OutlineConfig struct {
	ContainerSelector string   `yaml:"containerSelector"`
	Tags              []string `yaml:"tags"` // e.g. [h1, h2, h3]
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateList("input.paths", c.Input.Paths, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.file", c.Output.File, MaxPathLength); err != nil {
		return err
	}

	// Print
	for _, f := range []struct{ name, value string }{
		{"print.pageSize", c.Print.PageSize},
		{"print.width", c.Print.Width},
		{"print.height", c.Print.Height},
		{"print.pageRanges", c.Print.PageRanges},
		{"print.media", c.Print.Media},
	} {
		if err := validateFieldLength(f.name, f.value, MaxShortLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("print.margin", c.Print.Margin, MaxShortLength*4); err != nil {
		return err
	}
	if err := validateFieldLength("print.headerTemplate", c.Print.HeaderTemplate, MaxTemplateLength); err != nil {
		return err
	}
	if err := validateFieldLength("print.footerTemplate", c.Print.FooterTemplate, MaxTemplateLength); err != nil {
		return err
	}
	if c.Print.Scale != 0 && !(c.Print.Scale >= MinScale && c.Print.Scale <= MaxScale) {
		return fmt.Errorf("%w: print.scale must be between %.1f and %.1f, got %.2f", ErrInvalidValue, MinScale, MaxScale, c.Print.Scale)
	}
	if c.Print.Media != "" {
		switch strings.ToLower(c.Print.Media) {
		case "print", "screen":
			// valid
		default:
			return fmt.Errorf("%w: print.media %q (must be print or screen)", ErrInvalidValue, c.Print.Media)
		}
	}

	// Browser
	if err := validateFieldLength("browser.endpoint", c.Browser.Endpoint, MaxURLLength); err != nil {
		return err
	}
	if err := validateList("browser.args", c.Browser.Args, MaxURLLength); err != nil {
		return err
	}
	if c.Browser.Timeout != "" {
		d, err := time.ParseDuration(c.Browser.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: browser.timeout %q (must be a positive duration like 30s)", ErrInvalidValue, c.Browser.Timeout)
		}
	}

	// Access
	if err := validateList("access.allowedPaths", c.Access.AllowedPaths, MaxPathLength); err != nil {
		return err
	}
	if err := validateList("access.allowedDomains", c.Access.AllowedDomains, MaxURLLength); err != nil {
		return err
	}

	// Inject
	if err := validateList("inject.scripts", c.Inject.Scripts, MaxURLLength); err != nil {
		return err
	}
	if err := validateList("inject.styles", c.Inject.Styles, MaxURLLength); err != nil {
		return err
	}

	// Outline
	if err := validateFieldLength("outline.containerSelector", c.Outline.ContainerSelector, MaxSelectorLength); err != nil {
		return err
	}
	return validateList("outline.tags", c.Outline.Tags, MaxShortLength)
}

// Timeout returns the parsed browser timeout, or zero when unset.
// Validate guarantees the value parses.
func (c *Config) Timeout() time.Duration {
	if c.Browser.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Browser.Timeout)
	return d
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateList checks the entry count and the length of every entry.
func validateList(fieldName string, values []string, maxLength int) error {
	if len(values) > MaxListLength {
		return fmt.Errorf("%w: %s (%d entries, max %d)", ErrFieldTooLong, fieldName, len(values), MaxListLength)
	}
	for i, v := range values {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", fieldName, i), v, maxLength); err != nil {
			return err
		}
	}
	return nil
}

// DefaultConfig returns an empty configuration; defaults are applied by the CLI.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.Decode(data, &cfg, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appConfigDirectory, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
