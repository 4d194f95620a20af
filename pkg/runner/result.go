package runner

import (
	"github.com/yaklabco/ixtext/pkg/fix"
	"github.com/yaklabco/ixtext/pkg/fsutil"
	"github.com/yaklabco/ixtext/pkg/markup"
)

// FileOutcome is the parse result of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Document is the parsed file. Empty if Error is set.
	Document markup.Document

	// Diagnostics are the markup problems found in the file.
	Diagnostics []markup.Diagnostic

	// Info describes the file that was read. Nil if it could not be read.
	Info *fsutil.FileInfo

	// Error is set if the file could not be read, or its fixes could not be written.
	Error error

	// Fixed is the number of diagnostics repaired. Diagnostics then holds
	// only what is left.
	Fixed int

	// Diff shows the repairs. Nil if nothing was repaired.
	Diff *fix.Diff

	// Written reports whether the repaired content was written to Path.
	Written bool

	// Backup is the path the original content was saved to, if a backup
	// was written by this run.
	Backup string
}

// HasIssues reports whether the file produced any diagnostic.
func (o FileOutcome) HasIssues() bool {
	return len(o.Diagnostics) > 0
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files successfully read and parsed.
	FilesParsed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// Blocks is the total number of blocks parsed.
	Blocks int

	// Runs is the total number of runs produced.
	Runs int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int

	// DiagnosticsByKind maps diagnostic kind names to counts.
	DiagnosticsByKind map[string]int

	// FilesFixed is the number of files with at least one repair.
	FilesFixed int

	// DiagnosticsFixed is the number of diagnostics repaired.
	DiagnosticsFixed int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any error-severity diagnostic occurred or any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.DiagnosticsBySeverity[markup.SeverityError] > 0
}

// HasIssues reports whether any diagnostic was found or any file failed.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.DiagnosticsTotal > 0
}

// NewResult aggregates outcomes, in the given order, into a Result.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		DiagnosticsByKind:     make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++
	r.Stats.Blocks += outcome.Document.Len()
	r.Stats.Runs += outcome.Document.RunCount()
	r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)

	if outcome.HasIssues() {
		r.Stats.FilesWithIssues++
	}

	if outcome.Fixed > 0 {
		r.Stats.FilesFixed++
		r.Stats.DiagnosticsFixed += outcome.Fixed
	}

	for _, diag := range outcome.Diagnostics {
		r.Stats.DiagnosticsBySeverity[diag.Severity()]++
		r.Stats.DiagnosticsByKind[diag.Kind.String()]++
	}
}
