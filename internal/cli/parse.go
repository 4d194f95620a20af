package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/config"
	"github.com/yaklabco/ixtext/pkg/fsutil"
	"github.com/yaklabco/ixtext/pkg/reporter"
	"github.com/yaklabco/ixtext/pkg/runner"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// errNoInput is returned when parse has nothing to read.
var errNoInput = errors.New("no input: pass files, or pipe text and use '-'")

type parseCmdFlags struct {
	parseFlags
	out     string
	compact bool
}

func newParseCommand() *cobra.Command {
	flags := &parseCmdFlags{}

	cmd := &cobra.Command{
		Use:   "parse [files|-]",
		Short: "Parse interaction text and print its runs",
		Long: `Parse interaction files, or standard input, and print the styled runs of
every line.

With no arguments, parse reads standard input unless it is a terminal.

Examples:
  ixtext parse scene.txt                 # List runs line by line
  ixtext parse --format preview a.txt    # Draw lines with their styles
  ixtext parse --format json a.txt       # Runs and diagnostics as JSON
  echo '<b>Hi</b> there' | ixtext parse  # Parse stdin
  ixtext parse --out scene.json a.txt    # Write JSON atomically to a file`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, preview")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write JSON output to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON")
	addParseFlags(cmd, &flags.parseFlags)

	return cmd
}

func runParse(cmd *cobra.Command, args []string, flags *parseCmdFlags) error {
	cliCfg := &config.Config{}
	applyParseFlags(cmd, &flags.parseFlags, cliCfg)

	sess, err := newSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	format := reporter.FormatJSON
	if flags.out == "" {
		format, err = reporter.ParseFormat(string(sess.cfg.Format))
		if err != nil {
			return fmt.Errorf("invalid format: %w", err)
		}
		if format == reporter.FormatSummary || format == reporter.FormatDiff {
			return fmt.Errorf("invalid format: %q is not supported by parse; use check", format)
		}
	}

	if len(args) == 0 {
		if isTerminal(cmd) {
			return errNoInput
		}
		args = []string{stdinName}
	}

	outcomes := make([]runner.FileOutcome, 0, len(args))
	for _, arg := range args {
		outcomes = append(outcomes, parseInput(cmd, sess, arg))
	}
	result := runner.NewResult(outcomes...)

	sess.logger.Debug("parsed input",
		logging.FieldFiles, len(args),
		logging.FieldBlocks, result.Stats.Blocks,
		logging.FieldRuns, result.Stats.Runs,
	)

	var buf bytes.Buffer
	writer := cmd.OutOrStdout()
	if flags.out != "" {
		writer = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:     writer,
		Format:     format,
		Color:      sess.color(),
		ShowRuns:   true,
		Compact:    flags.compact,
		WorkingDir: sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.out != "" {
		changed, err := fsutil.WriteAtomicIfChanged(sess.ctx, flags.out, buf.Bytes(), fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		sess.logger.Info("wrote parse output", logging.FieldOutput, flags.out, logging.FieldChanged, changed)
	}

	if result.Stats.FilesErrored > 0 {
		return ErrIssuesFound
	}

	return nil
}

// parseInput reads and parses one argument. Read failures are recorded in
// the outcome so the remaining inputs are still parsed.
func parseInput(cmd *cobra.Command, sess *session, arg string) runner.FileOutcome {
	var (
		content []byte
		info    *fsutil.FileInfo
		err     error
	)

	if arg == stdinName {
		content, info, err = fsutil.ReadFrom(sess.ctx, cmd.InOrStdin(), stdinName, sess.cfg.FileLimit())
	} else {
		content, info, err = fsutil.ReadFile(sess.ctx, arg, sess.cfg.FileLimit())
	}
	if err != nil {
		sess.logger.Error("failed to read input", logging.FieldPath, arg, logging.FieldError, err)
		return runner.FileOutcome{Path: arg, Error: err}
	}

	return runner.ParseContent(arg, content, info, sess.cfg.ParseOptions())
}

// isTerminal reports whether the command reads from an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	file, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
