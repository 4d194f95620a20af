package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/ixtext/internal/ui/pretty"
)

const usageTemplate = `{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}
{{- if gt (len .Aliases) 0}}

{{heading "Aliases:"}}
  {{dim (join .Aliases ", ")}}{{end}}
{{- if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{subcommand (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}
{{- if not .HasParent}}

{{heading "Style Tags:"}}{{range styleTags}}
  {{flag (print .Open "text" .Close)}}  {{.Name}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flagUsages .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flagUsages .InheritedFlags}}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{command (print .CommandPath " [command] --help")}}" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trimRight .}}

{{end}}` + usageTemplate

// installHelp replaces the help and usage output of root and its subcommands.
// Color is decided when help is printed, after --color has been parsed.
func installHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := newHelpRenderer(cmd).render(cmd.OutOrStdout(), cmd, helpTemplate); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return newHelpRenderer(cmd).render(cmd.OutOrStderr(), cmd, usageTemplate)
	})
}

type helpRenderer struct {
	styles *pretty.Styles
}

func newHelpRenderer(cmd *cobra.Command) *helpRenderer {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return &helpRenderer{styles: pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))}
}

func (h *helpRenderer) render(w io.Writer, cmd *cobra.Command, text string) error {
	tmpl, err := template.New("help").Funcs(template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"flag":       h.styles.Flag.Render,
		"dim":        h.styles.Dim.Render,
		"flagUsages": h.flagUsages,
		"styleTags":  tagInfos,
		"join":       strings.Join,
		"rpad":       rpad,
		"trimRight":  trimRight,
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	if err := tmpl.Execute(w, cmd); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

// flagUsages styles the flag names of each pflag usage line and keeps the
// column alignment of the descriptions.
func (h *helpRenderer) flagUsages(flags *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		names, rest, ok := strings.Cut(body, "  ")
		if !ok {
			continue
		}
		usage := strings.TrimLeft(rest, " ")
		gap := body[len(names) : len(body)-len(usage)]

		lines[i] = indent + h.styleFlagNames(names) + gap + usage
	}
	return strings.Join(lines, "\n")
}

// styleFlagNames colors "-f, --flag" and dims the value type that may follow.
func (h *helpRenderer) styleFlagNames(names string) string {
	tokens := strings.Fields(names)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.Dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = h.styles.Flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}
	return strings.Join(tokens, " ")
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimRight(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
