package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/config"
	"github.com/yaklabco/ixtext/pkg/fsutil"
	"github.com/yaklabco/ixtext/pkg/reporter"
	"github.com/yaklabco/ixtext/pkg/runner"
)

type checkFlags struct {
	parseFlags
	extensions     []string
	ignore         []string
	jobs           int
	strict         bool
	compact        bool
	followSymlinks bool
	fix            bool
	dryRun         bool
	backup         bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check interaction files for malformed markup",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, preview, summary, diff")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to check (default .txt)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "repair fixable issues in place")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes as a diff without writing (implies --fix)")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep the original of each fixed file as <file>"+fsutil.BackupSuffix)
	addParseFlags(cmd, &flags.parseFlags)

	return cmd
}

const checkLongDescription = `Check interaction files for malformed markup.

By default, checks all .txt files in the current directory and its
subdirectories. Specify paths to check specific files or directories; files
named explicitly are checked whatever their extension.

Unknown tag characters are errors. Stray closing tags, tags cut off by the end
of a line, tags missing their '>', styles left open and over-long lines are
warnings.

With --fix, every issue except an over-long line is repaired in place without
changing the text or styles a line renders to: unknown, stray and cut-off tags
are removed, a missing '>' is restored and open styles are closed at the end
of their line. --dry-run prints the repairs as a diff instead, and --backup
keeps each original next to the fixed file.

Examples:
  ixtext check                      # Check current directory
  ixtext check content/             # Check a directory
  ixtext check --format summary     # Tables by kind and by file
  ixtext check --format json        # Output as JSON for CI
  ixtext check --strict             # Fail on warnings too
  ixtext check --fix                # Repair files in place
  ixtext check --dry-run            # Preview repairs as a diff`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	cliCfg := &config.Config{
		Extensions: flags.extensions,
		Ignore:     flags.ignore,
		Jobs:       flags.jobs,
		Strict:     flags.strict,
	}
	applyParseFlags(cmd, &flags.parseFlags, cliCfg)

	sess, err := newSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if flags.dryRun && !cmd.Flags().Changed("format") && format == reporter.FormatText {
		format = reporter.FormatDiff
	}

	runOpts := runner.OptionsFromConfig(sess.cfg, args, sess.workDir)
	runOpts.FollowSymlinks = flags.followSymlinks
	runOpts.Fix = flags.fix || flags.dryRun
	runOpts.DryRun = flags.dryRun
	runOpts.Backup = flags.backup

	sess.logger.Debug("starting check",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldFormat, format,
		logging.FieldFixed, runOpts.Fix,
		logging.FieldDryRun, runOpts.DryRun,
	)

	result, err := runner.New(sess.logger).Run(sess.ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       sess.color(),
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		sess.logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, sess.cfg.Strict); code != ExitSuccess {
		return &issuesError{code: code}
	}

	return nil
}
