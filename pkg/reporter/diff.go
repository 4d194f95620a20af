package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/ixtext/internal/ui/pretty"
	"github.com/yaklabco/ixtext/pkg/fix"
	"github.com/yaklabco/ixtext/pkg/runner"
)

// DiffReporter formats fix results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of files with a diff.
func (r *DiffReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, added, removed int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(displayPath(file.Path, r.opts.WorkingDir), file.Error))
			continue
		}
		if !file.Diff.HasChanges() {
			continue
		}

		files++
		added += file.Diff.Added
		removed += file.Diff.Removed
		r.writeDiff(file.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, added, removed)
	}

	return files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := displayPath(diff.Path, r.opts.WorkingDir)

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			text := line.Prefix() + line.Text
			switch line.Kind {
			case fix.LineAdded:
				fmt.Fprintln(r.bw, r.styles.DiffAdd.Render(text))
			case fix.LineRemoved:
				fmt.Fprintln(r.bw, r.styles.DiffRemove.Render(text))
			case fix.LineContext:
				fmt.Fprintln(r.bw, r.styles.DiffContext.Render(text))
			}
		}
	}

	fmt.Fprintln(r.bw)
}

// writeSummary writes "N files changed, X insertions(+), Y deletions(-)".
func (r *DiffReporter) writeSummary(files, added, removed int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}

	if added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", added, plural(added, "insertion", "insertions"))))
	}
	if removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", removed, plural(removed, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
