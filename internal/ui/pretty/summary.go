package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/ixtext/pkg/markup"
	"github.com/yaklabco/ixtext/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (1 error, 2 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var unreadable string
	if stats.FilesErrored > 0 {
		unreadable = ", " + s.Failure.Render(fmt.Sprintf("%d %s unreadable",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}

	var fixed string
	if stats.DiagnosticsFixed > 0 {
		fixed = s.Success.Render(fmt.Sprintf("Fixed %d %s in %d %s",
			stats.DiagnosticsFixed, plural(stats.DiagnosticsFixed, "issue", "issues"),
			stats.FilesFixed, plural(stats.FilesFixed, wordFile, wordFiles))) + "\n"
	}

	if stats.DiagnosticsTotal == 0 {
		return fixed + s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesParsed, plural(stats.FilesParsed, wordFile, wordFiles))) +
			unreadable + "\n"
	}

	var severityParts []string
	if errs := stats.DiagnosticsBySeverity[markup.SeverityError]; errs > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", errs, plural(errs, "error", "errors"))))
	}
	if warnings := stats.DiagnosticsBySeverity[markup.SeverityWarning]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}

	line := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))

	return fixed + line + unreadable + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("  Lines parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.Blocks)) + "\n")
	builder.WriteString("  Runs produced:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.Runs)) + "\n")

	builder.WriteString("\n")

	if stats.DiagnosticsFixed > 0 {
		builder.WriteString("  Issues fixed:      " +
			s.Success.Render(strconv.Itoa(stats.DiagnosticsFixed)) + "\n")
		builder.WriteString("  Files fixed:       " +
			s.Success.Render(strconv.Itoa(stats.FilesFixed)) + "\n")
	}

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	if errs := stats.DiagnosticsBySeverity[markup.SeverityError]; errs > 0 {
		builder.WriteString("    Errors:          " +
			s.Error.Render(strconv.Itoa(errs)) + "\n")
	}
	if warnings := stats.DiagnosticsBySeverity[markup.SeverityWarning]; warnings > 0 {
		builder.WriteString("    Warnings:        " +
			s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0 || stats.DiagnosticsBySeverity[markup.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.DiagnosticsBySeverity[markup.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
