package markup

import (
	"fmt"
	"strconv"
)

// DiagnosticKind classifies a problem found while scanning a block.
type DiagnosticKind uint8

const (
	// UnknownTagCharacter is a tag whose character is not one of b, i, s, u.
	UnknownTagCharacter DiagnosticKind = iota + 1

	// MalformedTag is a tag whose closing '>' is missing.
	MalformedTag

	// TruncatedTag is a tag cut off by the end of the block.
	TruncatedTag

	// StrayCloseTag closes a style that is not active.
	StrayCloseTag

	// UnterminatedStyle means styles were still active at the end of the block.
	UnterminatedStyle

	// BlockTooLong means the block exceeded the size limit and was truncated.
	BlockTooLong
)

// Kinds returns every diagnostic kind in declaration order.
func Kinds() []DiagnosticKind {
	return []DiagnosticKind{
		UnknownTagCharacter,
		MalformedTag,
		TruncatedTag,
		StrayCloseTag,
		UnterminatedStyle,
		BlockTooLong,
	}
}

// Severity levels reported for diagnostics.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// String returns the kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case UnknownTagCharacter:
		return "unknown-tag-character"
	case MalformedTag:
		return "malformed-tag"
	case TruncatedTag:
		return "truncated-tag"
	case StrayCloseTag:
		return "stray-close-tag"
	case UnterminatedStyle:
		return "unterminated-style"
	case BlockTooLong:
		return "block-too-long"
	default:
		return "DiagnosticKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Severity returns "error" for unknown tag characters and "warning" for everything else.
func (k DiagnosticKind) Severity() string {
	if k == UnknownTagCharacter {
		return SeverityError
	}
	return SeverityWarning
}

// Diagnostic describes one problem found in the input. Diagnostics never stop parsing.
type Diagnostic struct {
	// Kind classifies the problem.
	Kind DiagnosticKind `json:"kind"`

	// Block is the 0-based index of the segment the problem was found in.
	Block int `json:"block"`

	// Offset is the byte offset of the problem within the segment.
	Offset int `json:"offset"`

	// Length is the byte length of the offending text starting at Offset.
	// Zero for problems that have a position but no extent.
	Length int `json:"-"`

	// Char is the offending tag character, if any.
	Char byte `json:"-"`

	// Open holds the styles still active, for UnterminatedStyle.
	Open StyleSet `json:"-"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Severity returns the severity of the diagnostic's kind.
func (d Diagnostic) Severity() string {
	return d.Kind.Severity()
}

// Line returns the 1-based line number of the diagnostic's block.
func (d Diagnostic) Line() int {
	return d.Block + 1
}

// Column returns the 1-based byte column of the diagnostic.
func (d Diagnostic) Column() int {
	return d.Offset + 1
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line(), d.Column(), d.Kind, d.Message)
}

func newDiagnostic(kind DiagnosticKind, offset, length int, char byte) Diagnostic {
	diag := Diagnostic{Kind: kind, Offset: offset, Length: length, Char: char}

	switch kind {
	case UnknownTagCharacter:
		diag.Message = fmt.Sprintf("unknown markup %q", char)
	case MalformedTag:
		diag.Message = fmt.Sprintf("tag %q is missing its closing '>'", char)
	case TruncatedTag:
		diag.Message = "tag is cut off by the end of the line"
	case StrayCloseTag:
		diag.Message = fmt.Sprintf("closing tag %q has no matching open tag", char)
	case UnterminatedStyle:
		diag.Message = "styles are still open at the end of the line"
	case BlockTooLong:
		diag.Message = "line exceeds the size limit and was truncated"
	}

	return diag
}
