// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldFormat     = "format"
	FieldChanged    = "changed"

	// Resource fields.
	FieldResource   = "resource"
	FieldContentDir = "content_dir"
	FieldBytes      = "bytes"

	// Markup fields.
	FieldKind   = "kind"
	FieldLine   = "line"
	FieldColumn = "column"
	FieldChar   = "char"
	FieldBlocks = "blocks"
	FieldRuns   = "runs"
	FieldTag    = "tag"
	FieldClose  = "close"

	// Diagnostic kind fields.
	FieldSeverity = "severity"

	// Fix fields.
	FieldFixed   = "fixed"
	FieldPasses  = "passes"
	FieldSkipped = "skipped"
	FieldDryRun  = "dry_run"
	FieldBackup  = "backup"

	// Configuration fields.
	FieldJobs         = "jobs"
	FieldUnterminated = "unterminated"
	FieldKeepTrailing = "keep_trailing_segment"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesParsed      = "files_parsed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesFixed       = "files_fixed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
