package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/ixtext/pkg/markup"
)

// FormatDiagnostic formats a single diagnostic for terminal output:
// location, severity, message and kind on one line.
func (s *Styles) FormatDiagnostic(path string, diag markup.Diagnostic) string {
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		diag.Line(),
		diag.Column(),
	)

	return fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity()),
		s.Message.Render(diag.Message),
		s.Kind.Render("("+diag.Kind.String()+")"),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(severity string) string {
	switch severity {
	case markup.SeverityError:
		return s.Error.Render("error")
	case markup.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return severity
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFixed formats the repair line of a file. Unwritten repairs are
// reported as a preview.
func (s *Styles) FormatFixed(path string, fixed int, written bool) string {
	verb := "would fix"
	if written {
		verb = "fixed"
	}
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Success.Render(fmt.Sprintf("%s %d %s", verb, fixed, plural(fixed, "issue", "issues"))),
	)
}

// FormatFileError formats a file that could not be read.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// FormatBlock renders a parsed block run by run. Without color, styled runs
// are bracketed with their label so the styling stays visible.
func (s *Styles) FormatBlock(block markup.Block) string {
	var builder strings.Builder
	for _, run := range block.Runs {
		switch {
		case s.colorEnabled:
			builder.WriteString(s.RunStyle(run.Style).Render(run.Text))
		case run.Style.Empty():
			builder.WriteString(run.Text)
		default:
			builder.WriteString("[" + run.Label + "]" + run.Text + "[/]")
		}
	}
	return builder.String()
}
