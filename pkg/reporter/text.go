package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/ixtext/internal/ui/pretty"
	"github.com/yaklabco/ixtext/pkg/markup"
	"github.com/yaklabco/ixtext/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		return 0
	}

	if file.Fixed > 0 {
		fmt.Fprint(r.bw, r.styles.FormatFixed(path, file.Fixed, file.Written))
	}

	if !r.opts.ShowRuns && len(file.Diagnostics) == 0 {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Diagnostics)))

	if r.opts.ShowRuns {
		r.writeRuns(file.Document)
	}

	for _, diag := range file.Diagnostics {
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, diag))
	}

	fmt.Fprintln(r.bw)

	return len(file.Diagnostics)
}

// writeRuns lists every run as "line: label text".
func (r *TextReporter) writeRuns(doc markup.Document) {
	for i, block := range doc.Blocks {
		if len(block.Runs) == 0 {
			fmt.Fprintf(r.bw, "  %s  %s\n",
				r.styles.LineNumber.Render(fmt.Sprintf("%4d", i+1)),
				r.styles.Dim.Render("(empty)"))
			continue
		}
		for _, run := range block.Runs {
			fmt.Fprintf(r.bw, "  %s  %-36s %q\n",
				r.styles.LineNumber.Render(fmt.Sprintf("%4d", i+1)),
				run.Label,
				run.Text)
		}
	}
}
