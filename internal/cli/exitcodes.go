package cli

import (
	"errors"

	"github.com/yaklabco/ixtext/pkg/markup"
	"github.com/yaklabco/ixtext/pkg/runner"
)

// ErrIssuesFound is returned when a check finds problems. The problems have
// already been reported, so callers should exit without logging it.
var ErrIssuesFound = errors.New("issues found")

// Exit codes for ixtext.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitCheckErrors indicates the check found errors or unreadable files.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates the check found warnings (strict mode only).
	ExitCheckWarnings = 2
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitCheckErrors
	}

	if strict && result.Stats.DiagnosticsBySeverity[markup.SeverityWarning] > 0 {
		return ExitCheckWarnings
	}

	return ExitSuccess
}

// issuesError carries the exit code of a run that found problems.
type issuesError struct {
	code int
}

func (e *issuesError) Error() string {
	return ErrIssuesFound.Error()
}

func (e *issuesError) Unwrap() error {
	return ErrIssuesFound
}

// ExitCode returns the process exit code for an error returned by a command.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var issues *issuesError
	if errors.As(err, &issues) {
		return issues.code
	}

	return ExitCheckErrors
}
