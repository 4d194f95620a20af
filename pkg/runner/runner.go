package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/fix"
	"github.com/yaklabco/ixtext/pkg/fsutil"
	"github.com/yaklabco/ixtext/pkg/markup"
)

// ErrModified is recorded for a file that changed on disk between being read
// and its fixes being written. The file is left as it is.
var ErrModified = errors.New("file modified during processing")

// Runner parses many interaction files concurrently.
type Runner struct {
	logger *log.Logger
}

// New creates a Runner. A nil logger means the default logger.
func New(logger *log.Logger) *Runner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Runner{logger: logger}
}

// Run discovers files under opts.Paths and parses them with at most opts.Jobs
// files in flight. A file that cannot be read is recorded in its FileOutcome
// and does not stop the run. Outcomes are returned in discovery order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	r.logger.Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, opts.Jobs,
	)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Each goroutine owns one slot, so no locking is needed.
	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.parseFile(groupCtx, path, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	r.logger.Debug("run complete",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesFixed, result.Stats.FilesFixed,
	)

	return result, nil
}

func (r *Runner) parseFile(ctx context.Context, path string, opts Options) FileOutcome {
	content, info, err := fsutil.ReadFile(ctx, path, opts.MaxFileBytes)
	if err != nil {
		r.logger.Debug("failed to read file", logging.FieldPath, path, logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}
	r.logger.Debug("read file", logging.FieldPath, path, logging.FieldBytes, info.Size)

	if opts.Fix {
		return r.fixFile(ctx, path, content, info, opts)
	}
	return ParseContent(path, content, info, opts.Parse)
}

// fixFile repairs content and, unless opts.DryRun, writes it back to path.
func (r *Runner) fixFile(ctx context.Context, path string, content []byte, info *fsutil.FileInfo, opts Options) FileOutcome {
	parseOpts := opts.Parse
	parseOpts.ResourceName = path

	repaired, err := fix.Repair(content, parseOpts)
	if err != nil {
		return FileOutcome{Path: path, Info: info, Error: fmt.Errorf("repair %s: %w", path, err)}
	}

	outcome := FileOutcome{
		Path:        path,
		Info:        info,
		Document:    repaired.Document,
		Diagnostics: repaired.Diagnostics,
		Fixed:       repaired.Fixed,
	}
	if !repaired.Changed() {
		return outcome
	}

	outcome.Diff = fix.NewDiff(path, content, repaired.Content)
	if repaired.Skipped > 0 {
		r.logger.Debug("skipped overlapping fixes", logging.FieldPath, path, logging.FieldSkipped, repaired.Skipped)
	}
	if opts.DryRun {
		return outcome
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return FileOutcome{Path: path, Info: info, Error: err}
	}
	if modified {
		return FileOutcome{Path: path, Info: info, Error: fmt.Errorf("%w: %s", ErrModified, path)}
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path, content, info.Mode)
		if err != nil {
			return FileOutcome{Path: path, Info: info, Error: err}
		}
		if created {
			outcome.Backup = fsutil.BackupPath(path)
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, repaired.Content, info.Mode); err != nil {
		return FileOutcome{Path: path, Info: info, Error: fmt.Errorf("write fixes: %w", err)}
	}
	outcome.Written = true

	r.logger.Debug("fixed file",
		logging.FieldPath, path,
		logging.FieldFixed, repaired.Fixed,
		logging.FieldPasses, repaired.Passes,
		logging.FieldBackup, outcome.Backup,
	)

	return outcome
}

// ParseContent parses content that was read from path. Use it for input that
// does not come from discovery, such as stdin.
func ParseContent(path string, content []byte, info *fsutil.FileInfo, opts markup.Options) FileOutcome {
	opts.ResourceName = path

	outcome := FileOutcome{Path: path, Info: info}
	outcome.Document, outcome.Diagnostics = markup.New(markup.WithOptions(opts)).ParseWithDiagnostics(string(content))
	return outcome
}
