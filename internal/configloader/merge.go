package configloader

import "github.com/yaklabco/ixtext/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if non-nil, so an explicit
//     false or 0 in a config file wins over an earlier layer
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.ContentDir != "" {
		result.ContentDir = override.ContentDir
	}
	if override.Unterminated != "" {
		result.Unterminated = override.Unterminated
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Strict is a CLI switch; it can be turned on but not off by a later layer.
	if override.Strict {
		result.Strict = true
	}

	if override.KeepTrailingSegment != nil {
		result.KeepTrailingSegment = override.KeepTrailingSegment
	}
	if override.MaxBlockBytes != nil {
		result.MaxBlockBytes = override.MaxBlockBytes
	}
	if override.MaxFileBytes != nil {
		result.MaxFileBytes = override.MaxFileBytes
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
