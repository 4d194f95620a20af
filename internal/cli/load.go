package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/config"
	"github.com/yaklabco/ixtext/pkg/loader"
	"github.com/yaklabco/ixtext/pkg/reporter"
	"github.com/yaklabco/ixtext/pkg/runner"
	"github.com/yaklabco/ixtext/pkg/source"
)

func newLoadCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "Load an interaction file by name from the content directory",
		Long: `Load an interaction file by name, relative to the configured content_dir,
the way a game engine would, and print its runs.

A missing or unreadable file is logged as a warning and yields an empty
document; markup problems are logged with the file name.

Examples:
  ixtext load intro.txt
  ixtext load --format json chapter1/scene2.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, preview")
	addParseFlags(cmd, flags)

	return cmd
}

func runLoad(cmd *cobra.Command, name string, flags *parseFlags) error {
	cliCfg := &config.Config{}
	applyParseFlags(cmd, flags, cliCfg)

	sess, err := newSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if format == reporter.FormatSummary || format == reporter.FormatDiff {
		return fmt.Errorf("invalid format: %q is not supported by load; use check", format)
	}

	contentDir := sess.contentDir()
	sess.logger.Debug("loading interaction file",
		logging.FieldResource, name,
		logging.FieldContentDir, contentDir,
	)

	ld := loader.New(
		source.NewDir(contentDir, sess.cfg.FileLimit()),
		loader.WithLogger(sess.logger),
		loader.WithParseOptions(sess.cfg.ParseOptions()),
	)
	doc := ld.LoadInteractionFile(sess.ctx, name)

	rep, err := reporter.New(reporter.Options{
		Writer:   cmd.OutOrStdout(),
		Format:   format,
		Color:    sess.color(),
		ShowRuns: true,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	result := runner.NewResult(runner.FileOutcome{Path: name, Document: doc})
	if _, err := rep.Report(sess.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return nil
}
