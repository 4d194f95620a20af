package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/ixtext/pkg/config"
	"github.com/yaklabco/ixtext/pkg/markup"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the name of the invalid field (e.g., "max_block_bytes").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatPreview: true,
	config.FormatSummary: true,
	config.FormatDiff:    true,
}

// knownColorModes lists valid color mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if !markup.UnterminatedPolicy(cfg.Unterminated).IsValid() {
		result.errorf("unterminated", cfg.Unterminated,
			"invalid policy %q; must be one of: styled, regular", cfg.Unterminated)
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.errorf("format", cfg.Format,
			"invalid format %q; must be one of: text, json, preview, summary, diff", cfg.Format)
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.errorf("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.MaxBlockBytes != nil && *cfg.MaxBlockBytes < 0 {
		result.errorf("max_block_bytes", *cfg.MaxBlockBytes, "must be >= 0 (0 means unlimited)")
	}

	if cfg.MaxFileBytes != nil && *cfg.MaxFileBytes < 0 {
		result.errorf("max_file_bytes", *cfg.MaxFileBytes, "must be >= 0 (0 means unlimited)")
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateContentDir(cfg, result)

	return result
}

// validateExtensions checks that every extension is a dot followed by a name.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	if cfg.Extensions != nil && len(cfg.Extensions) == 0 {
		result.warnf("extensions", cfg.Extensions, "no extensions configured; directories will yield no files")
	}

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext[1:], `./\*?[ `) {
			result.errorf(fmt.Sprintf("extensions[%d]", i), ext,
				"invalid extension %q; must look like \".txt\"", ext)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), ""); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// validateContentDir warns when the content directory is missing.
func validateContentDir(cfg *config.Config, result *ValidationResult) {
	if cfg.ContentDir == "" {
		return
	}

	info, err := os.Stat(cfg.ContentDir)
	switch {
	case err != nil:
		result.warnf("content_dir", cfg.ContentDir, "content directory %q does not exist", cfg.ContentDir)
	case !info.IsDir():
		result.errorf("content_dir", cfg.ContentDir, "content directory %q is not a directory", cfg.ContentDir)
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidColorMode returns true if the color mode is valid.
func IsValidColorMode(mode config.ColorMode) bool {
	return knownColorModes[mode]
}
