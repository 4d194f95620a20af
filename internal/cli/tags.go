package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/markup"
)

type tagsFlags struct {
	format string
	kinds  bool
}

const formatJSON = "json"

// tagInfo represents a style tag in JSON output.
type tagInfo struct {
	Tag   string `json:"tag"`
	Name  string `json:"name"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// kindInfo represents a diagnostic kind in JSON output.
type kindInfo struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
}

func newTagsCommand() *cobra.Command {
	flags := &tagsFlags{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the supported style tags",
		Long: `List the inline style tags, in the order their names appear in run labels.
With --kinds, list the diagnostic kinds and their severities instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			switch flags.format {
			case formatJSON:
				if flags.kinds {
					return writeJSON(out, kindInfos())
				}
				return writeJSON(out, tagInfos())
			case "", "text":
			default:
				return fmt.Errorf("invalid format %q: must be text or json", flags.format)
			}

			logger := logging.NewWithWriter(out, "info")

			if flags.kinds {
				for _, kind := range kindInfos() {
					logger.Info(kind.Kind, logging.FieldSeverity, kind.Severity)
				}
				return nil
			}

			for _, tag := range tagInfos() {
				logger.Info(tag.Name,
					logging.FieldTag, tag.Open,
					logging.FieldClose, tag.Close,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.kinds, "kinds", false, "list diagnostic kinds instead of tags")

	return cmd
}

func tagInfos() []tagInfo {
	flags := markup.Flags()
	infos := make([]tagInfo, 0, len(flags))
	for _, flag := range flags {
		tag := string(flag.Tag())
		infos = append(infos, tagInfo{
			Tag:   tag,
			Name:  flag.String(),
			Open:  "<" + tag + ">",
			Close: "</" + tag + ">",
		})
	}
	return infos
}

func kindInfos() []kindInfo {
	kinds := markup.Kinds()
	infos := make([]kindInfo, 0, len(kinds))
	for _, kind := range kinds {
		infos = append(infos, kindInfo{Kind: kind.String(), Severity: kind.Severity()})
	}
	return infos
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
