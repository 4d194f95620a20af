package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/ixtext/pkg/markup"
	"github.com/yaklabco/ixtext/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	SHA256      string           `json:"sha256,omitempty"`
	Bytes       int64            `json:"bytes"`
	Blocks      int              `json:"blocks"`
	Runs        int              `json:"runs"`
	Document    *markup.Document `json:"document,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Fixed       int              `json:"fixed,omitempty"`
	Written     bool             `json:"written,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Char     string `json:"char,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	Blocks          int            `json:"blocks"`
	Runs            int            `json:"runs"`
	TotalIssues     int            `json:"totalIssues"`
	TotalFixed      int            `json:"totalFixed"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByKind          map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
			ByKind:     make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Diagnostics: make([]JSONDiagnostic, 0, len(file.Diagnostics)),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
			output.Files = append(output.Files, fileResult)
			continue
		}

		if file.Info != nil {
			fileResult.SHA256 = file.Info.Digest()
			fileResult.Bytes = file.Info.Size
		}

		fileResult.Fixed = file.Fixed
		fileResult.Written = file.Written
		output.Summary.TotalFixed += file.Fixed

		fileResult.Blocks = file.Document.Len()
		fileResult.Runs = file.Document.RunCount()
		if r.opts.ShowRuns {
			doc := file.Document
			fileResult.Document = &doc
		}

		for _, diag := range file.Diagnostics {
			jsonDiag := JSONDiagnostic{
				Kind:     diag.Kind.String(),
				Severity: diag.Severity(),
				Message:  diag.Message,
				Line:     diag.Line(),
				Column:   diag.Column(),
			}
			if diag.Char != 0 {
				jsonDiag.Char = string(rune(diag.Char))
			}

			fileResult.Diagnostics = append(fileResult.Diagnostics, jsonDiag)
			output.Summary.TotalIssues++
			output.Summary.BySeverity[jsonDiag.Severity]++
			output.Summary.ByKind[jsonDiag.Kind]++
		}

		if len(fileResult.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}

		output.Summary.Blocks += fileResult.Blocks
		output.Summary.Runs += fileResult.Runs
		output.Summary.FilesChecked++
		output.Files = append(output.Files, fileResult)
	}

	return output
}
