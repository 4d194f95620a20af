// Package cli provides the Cobra command structure for ixtext.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ixtext/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root ixtext command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "ixtext",
		Short: "Parse and check styled interaction text",
		Long: `ixtext parses interaction text: newline-delimited script lines carrying the
inline style tags <b>, <i>, <s> and <u>.

Each line becomes an ordered list of runs, one per differently-styled piece of
text, labelled with the active styles ("Bold Italic", "Regular", ...). ixtext
can parse single files or stdin, load files by name from a content directory,
and check whole trees of interaction files for malformed markup.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
				logging.SetLevel(level)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.NewWithWriter(cmd.ErrOrStderr(), level)))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newLoadCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newTagsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd)

	return rootCmd
}
