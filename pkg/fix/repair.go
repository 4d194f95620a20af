package fix

import (
	"strings"

	"github.com/yaklabco/ixtext/pkg/markup"
)

// MaxPasses bounds how many times Repair re-parses and repairs its own output.
const MaxPasses = 4

// Fixable reports whether Plan can repair diagnostics of kind. Lines over
// the size limit are left alone.
func Fixable(kind markup.DiagnosticKind) bool {
	switch kind {
	case markup.UnknownTagCharacter, markup.MalformedTag, markup.TruncatedTag,
		markup.StrayCloseTag, markup.UnterminatedStyle:
		return true
	default:
		return false
	}
}

// Plan returns edits that repair diags, which must come from parsing
// content with opts. Each edit keeps the text and styles the parser already
// produced:
//
//   - unknown, stray and truncated tags are removed, since they are dropped anyway;
//   - a malformed tag gets its '>' back;
//   - styles still open at the end of a line are closed there, unless
//     opts labels such text "Regular" or the line would outgrow the size limit.
//
// Lines that were truncated to the size limit are not touched.
func Plan(content string, diags []markup.Diagnostic, opts markup.Options) []TextEdit {
	segments := markup.SplitSegments(content, opts.KeepTrailingSegment)

	truncated := make(map[int]bool)
	for _, diag := range diags {
		if diag.Kind == markup.BlockTooLong {
			truncated[diag.Block] = true
		}
	}

	var builder EditBuilder
	deleted := make(map[int]bool)

	for _, diag := range diags {
		if diag.Block < 0 || diag.Block >= len(segments) || truncated[diag.Block] {
			continue
		}
		segment := segments[diag.Block]
		at := segment.Offset + diag.Offset

		switch diag.Kind {
		case markup.UnknownTagCharacter, markup.StrayCloseTag, markup.TruncatedTag:
			if diag.Length > 0 {
				builder.Delete(at, at+diag.Length)
				deleted[at] = true
			}
		case markup.MalformedTag:
			// The tag is reported again at the same offset when it is also removed.
			if diag.Length > 0 && !deleted[at] {
				end := at + diag.Length
				builder.Replace(end-1, end, ">")
			}
		case markup.UnterminatedStyle:
			if opts.Unterminated == markup.UnterminatedRegular || diag.Open.Empty() {
				continue
			}
			tags := closingTags(diag.Open)
			if limit := opts.MaxBlockBytes; limit > 0 && len(segment.Text)+len(tags) > limit {
				continue
			}
			builder.Insert(at, tags)
		case markup.BlockTooLong:
		}
	}

	return builder.Edits()
}

// closingTags returns the close tags of set in reverse declaration order.
func closingTags(set markup.StyleSet) string {
	flags := set.Flags()

	var builder strings.Builder
	for i := len(flags) - 1; i >= 0; i-- {
		builder.WriteString("</")
		builder.WriteByte(flags[i].Tag())
		builder.WriteByte('>')
	}
	return builder.String()
}

// Result is the outcome of Repair.
type Result struct {
	// Content is the repaired content. It is the input itself when nothing changed.
	Content []byte

	// Document and Diagnostics are the parse of Content.
	Document    markup.Document
	Diagnostics []markup.Diagnostic

	// Fixed is the number of diagnostics that no longer occur.
	Fixed int

	// Edits is the number of edits applied over all passes.
	Edits int

	// Skipped is the number of edits dropped in the last pass because they
	// overlapped another edit.
	Skipped int

	// Passes is the number of passes that changed the content.
	Passes int
}

// Changed reports whether the repaired content differs from the input.
func (r *Result) Changed() bool {
	return r.Passes > 0
}

// Repair parses content with opts and applies Plan until no edits remain
// or MaxPasses is reached.
func Repair(content []byte, opts markup.Options) (*Result, error) {
	parser := markup.New(markup.WithOptions(opts))

	result := &Result{Content: content}
	result.Document, result.Diagnostics = parser.ParseWithDiagnostics(string(content))
	initial := len(result.Diagnostics)

	for range MaxPasses {
		edits := Plan(string(result.Content), result.Diagnostics, opts)
		if len(edits) == 0 {
			break
		}

		accepted, skipped, err := Prepare(edits, len(result.Content))
		if err != nil {
			return nil, err
		}

		result.Content = Apply(result.Content, accepted)
		result.Edits += len(accepted)
		result.Skipped = len(skipped)
		result.Passes++

		result.Document, result.Diagnostics = parser.ParseWithDiagnostics(string(result.Content))
	}

	result.Fixed = max(0, initial-len(result.Diagnostics))
	return result, nil
}
