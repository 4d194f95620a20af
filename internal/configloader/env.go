package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/ixtext/pkg/config"
)

// envVarPrefix is the prefix for all ixtext environment variables.
const envVarPrefix = "IXTEXT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"CONTENT_DIR":           {"content_dir", envTypeString, "Directory interaction files are loaded from"},
	"EXTENSIONS":            {"extensions", envTypeSlice, "Comma-separated interaction file extensions"},
	"IGNORE":                {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"UNTERMINATED":          {"unterminated", envTypeString, "Label of unterminated styles: styled or regular"},
	"KEEP_TRAILING_SEGMENT": {"keep_trailing_segment", envTypeBool, "Parse text after the last newline: true or false"},
	"MAX_BLOCK_BYTES":       {"max_block_bytes", envTypeInt, "Maximum bytes per line (0 = unlimited)"},
	"MAX_FILE_BYTES":        {"max_file_bytes", envTypeInt, "Maximum bytes per file (0 = unlimited)"},
	"JOBS":                  {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"FORMAT":                {"format", envTypeString, "Output format: text, json, preview, or summary"},
	"STRICT":                {"strict", envTypeBool, "Fail on warnings: true or false"},
	"COLOR":                 {"color", envTypeString, "Color output: auto, always, or never"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with IXTEXT_ (e.g., IXTEXT_CONTENT_DIR).
func LoadFromEnv(cfg *config.Config) error {
	return LoadFromEnvFunc(cfg, os.Getenv)
}

// LoadFromEnvFunc is LoadFromEnv with a custom variable lookup.
func LoadFromEnvFunc(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "content_dir":
		cfg.ContentDir = value
	case "unterminated":
		cfg.Unterminated = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "keep_trailing_segment":
		cfg.KeepTrailingSegment = &value
	case "strict":
		cfg.Strict = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "max_block_bytes":
		limit := int(value)
		cfg.MaxBlockBytes = &limit
	case "max_file_bytes":
		cfg.MaxFileBytes = &value
	case "jobs":
		cfg.Jobs = int(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}
