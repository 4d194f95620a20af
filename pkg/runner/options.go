// Package runner discovers interaction files and parses them concurrently.
package runner

import (
	"github.com/yaklabco/ixtext/pkg/config"
	"github.com/yaklabco/ixtext/pkg/markup"
)

// Options controls a batch run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) treated as
	// interaction files. Matching is case-insensitive. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, of files or
	// directories to skip. "**" matches any number of path segments.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs limits the number of files parsed at once.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Parse holds the options every file is parsed with.
	Parse markup.Options

	// MaxFileBytes rejects larger files. Zero or negative means unlimited.
	MaxFileBytes int64

	// Fix repairs malformed markup and writes the repaired files back.
	Fix bool

	// DryRun computes fixes and their diffs without writing files.
	// It only has an effect together with Fix.
	DryRun bool

	// Backup keeps the original content of each fixed file next to it
	// (see fsutil.BackupPath) before the file is rewritten.
	Backup bool
}

// OptionsFromConfig builds run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string, workDir string) Options {
	return Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Parse:        cfg.ParseOptions(),
		MaxFileBytes: cfg.FileLimit(),
	}
}

// DefaultExtensions returns the default set of interaction file extensions.
func DefaultExtensions() []string {
	return []string{config.DefaultExtension}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
