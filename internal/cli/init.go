package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ixtext/internal/configloader"
	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/config"
	"github.com/yaklabco/ixtext/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force      bool
	full       bool
	output     string
	contentDir string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new ixtext configuration file",
		Long: `Create a new .ixtext.yml configuration file in the current directory
with sensible defaults. Commands run in this directory or below pick it up.

Examples:
  ixtext init                        Create minimal .ixtext.yml
  ixtext init --full                 Write every setting with its default
  ixtext init --content-dir content  Load files by name from ./content
  ixtext init --output custom.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: "+configloader.ProjectConfigName+")")
	cmd.Flags().StringVar(&flags.contentDir, "content-dir", "", "Directory interaction files are loaded from")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigName
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:       flags.full,
		ContentDir: flags.contentDir,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'ixtext tags' to see the supported style tags")

	return nil
}
