package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/ixtext/internal/ui/pretty"
	"github.com/yaklabco/ixtext/pkg/markup"
	"github.com/yaklabco/ixtext/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90
	kindColWidth      = 30
	fileColWidth      = 60
	numColWidth       = 7
	warnColWidth      = 9
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// fileTally counts the diagnostics of one file.
type fileTally struct {
	path     string
	issues   int
	errors   int
	warnings int
}

// kindTally counts the diagnostics of one kind.
type kindTally struct {
	kind     string
	severity string
	issues   int
}

// SummaryReporter formats results as aggregated tables by kind and by file.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	if result.Stats.DiagnosticsTotal == 0 && result.Stats.FilesErrored == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No issues found"))
		return 0, nil
	}

	r.renderKindTable(result.Stats)
	fmt.Fprintln(r.bw)
	r.renderFileTable(r.tallyFiles(result))

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return result.Stats.DiagnosticsTotal, nil
}

func (r *SummaryReporter) separator() {
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryReporter) renderKindTable(stats runner.Stats) {
	if len(stats.DiagnosticsByKind) == 0 {
		return
	}

	kinds := make([]kindTally, 0, len(stats.DiagnosticsByKind))
	for _, kind := range markup.Kinds() {
		if count := stats.DiagnosticsByKind[kind.String()]; count > 0 {
			kinds = append(kinds, kindTally{kind: kind.String(), severity: kind.Severity(), issues: count})
		}
	}
	slices.SortStableFunc(kinds, func(a, b kindTally) int {
		return b.issues - a.issues
	})

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Kinds Summary"))
	r.separator()
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Severity", warnColWidth)),
	)
	r.separator()

	for _, kind := range kinds {
		padded := padRight(kind.kind, kindColWidth)
		if kind.severity == markup.SeverityError {
			padded = r.styles.TableErrorRow.Render(padded)
		} else {
			padded = r.styles.TableWarnRow.Render(padded)
		}

		fmt.Fprintf(r.bw, "%s %s %s\n",
			padded,
			padLeft(strconv.Itoa(kind.issues), numColWidth),
			padLeft(kind.severity, warnColWidth),
		)
	}
}

func (r *SummaryReporter) tallyFiles(result *runner.Result) []fileTally {
	files := make([]fileTally, 0, result.Stats.FilesWithIssues)
	for _, file := range result.Files {
		if !file.HasIssues() {
			continue
		}
		tally := fileTally{path: displayPath(file.Path, r.opts.WorkingDir)}
		for _, diag := range file.Diagnostics {
			tally.issues++
			if diag.Severity() == markup.SeverityError {
				tally.errors++
			} else {
				tally.warnings++
			}
		}
		files = append(files, tally)
	}

	slices.SortStableFunc(files, func(a, b fileTally) int {
		return b.issues - a.issues
	})
	return files
}

func (r *SummaryReporter) renderFileTable(files []fileTally) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files Summary"))
	r.separator()
	fmt.Fprintf(r.bw, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator()

	for _, file := range files {
		path := file.path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		padded := padRight(path, fileColWidth)
		switch {
		case file.errors > 0:
			padded = r.styles.TableErrorRow.Render(padded)
		case file.warnings > 0:
			padded = r.styles.TableWarnRow.Render(padded)
		}

		fmt.Fprintf(r.bw, "%s %s %s %s\n",
			padded,
			padLeft(strconv.Itoa(file.issues), numColWidth),
			padLeft(strconv.Itoa(file.errors), numColWidth),
			padLeft(strconv.Itoa(file.warnings), warnColWidth),
		)
	}
}
