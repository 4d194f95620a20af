// Package config defines the ixtext configuration types.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

import "github.com/yaklabco/ixtext/pkg/markup"

// Defaults.
const (
	// DefaultExtension is the file extension of interaction files.
	DefaultExtension = ".txt"

	// DefaultMaxFileBytes limits the size of a single interaction file.
	DefaultMaxFileBytes int64 = 8 << 20
)

// OutputFormat specifies the output format of parse results and diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatPreview OutputFormat = "preview"
	FormatSummary OutputFormat = "summary"
	FormatDiff    OutputFormat = "diff"
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the root configuration structure for ixtext.
type Config struct {
	// ContentDir is the directory interaction files are loaded from by name.
	ContentDir string `yaml:"content_dir,omitempty"`

	// Extensions are the file extensions treated as interaction files.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Unterminated is the label policy for styles left open at the end of a line:
	// "styled" or "regular".
	Unterminated string `yaml:"unterminated,omitempty"`

	// KeepTrailingSegment parses text after the final newline instead of dropping it.
	KeepTrailingSegment *bool `yaml:"keep_trailing_segment,omitempty"`

	// MaxBlockBytes truncates longer lines. Zero means unlimited.
	MaxBlockBytes *int `yaml:"max_block_bytes,omitempty"`

	// MaxFileBytes rejects larger files. Zero means unlimited.
	MaxFileBytes *int64 `yaml:"max_file_bytes,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict treats warnings as failures.
	Strict bool `yaml:"-"`

	// Color controls colored output.
	Color ColorMode `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	keep := false
	maxBlock := markup.DefaultMaxBlockBytes
	maxFile := DefaultMaxFileBytes

	return &Config{
		ContentDir:          ".",
		Extensions:          []string{DefaultExtension},
		Unterminated:        string(markup.UnterminatedStyled),
		KeepTrailingSegment: &keep,
		MaxBlockBytes:       &maxBlock,
		MaxFileBytes:        &maxFile,
		Format:              FormatText,
		Jobs:                0, // 0 means use GOMAXPROCS
		Color:               ColorAuto,
	}
}

// ParseOptions converts the configuration into parser options.
func (c *Config) ParseOptions() markup.Options {
	opts := markup.DefaultOptions()
	if c == nil {
		return opts
	}

	if c.Unterminated != "" {
		opts.Unterminated = markup.UnterminatedPolicy(c.Unterminated)
	}
	if c.KeepTrailingSegment != nil {
		opts.KeepTrailingSegment = *c.KeepTrailingSegment
	}
	if c.MaxBlockBytes != nil {
		opts.MaxBlockBytes = *c.MaxBlockBytes
	}

	return opts
}

// FileLimit returns the maximum file size in bytes, zero meaning unlimited.
func (c *Config) FileLimit() int64 {
	if c == nil || c.MaxFileBytes == nil {
		return DefaultMaxFileBytes
	}
	return *c.MaxFileBytes
}
