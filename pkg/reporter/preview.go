package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/ixtext/internal/ui/pretty"
	"github.com/yaklabco/ixtext/pkg/runner"
)

// PreviewReporter draws each parsed line with its run styles applied, so
// markup can be checked by eye in a terminal.
type PreviewReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewPreviewReporter creates a new preview reporter.
func NewPreviewReporter(opts Options) *PreviewReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &PreviewReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *PreviewReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Diagnostics)))
		for i, block := range file.Document.Blocks {
			fmt.Fprintf(r.bw, "%s %s %s\n",
				r.styles.LineNumber.Render(fmt.Sprintf("%5d", i+1)),
				r.styles.Dim.Render("│"),
				r.styles.FormatBlock(block))
		}
		for _, diag := range file.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, diag))
		}
		fmt.Fprintln(r.bw)

		total += len(file.Diagnostics)
	}

	return total, nil
}
