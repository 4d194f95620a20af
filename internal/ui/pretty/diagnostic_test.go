package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/ixtext/internal/ui/pretty"
	"github.com/yaklabco/ixtext/pkg/markup"
)

func TestFormatDiagnostic_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := markup.Diagnostic{
		Kind:    markup.UnknownTagCharacter,
		Block:   9,
		Offset:  0,
		Char:    'z',
		Message: "unknown markup 'z'",
	}

	result := styles.FormatDiagnostic("intro.txt", diag)

	assert.Equal(t, "  intro.txt:10:1  error  unknown markup 'z'  (unknown-tag-character)\n", result)
}

func TestFormatDiagnostic_Warning(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := markup.Diagnostic{
		Kind:    markup.UnterminatedStyle,
		Block:   0,
		Offset:  7,
		Message: "styles are still open at the end of the line",
	}

	result := styles.FormatDiagnostic("a.txt", diag)

	assert.Contains(t, result, "a.txt:1:8")
	assert.Contains(t, result, "warning")
	assert.Contains(t, result, "(unterminated-style)")
}

func TestFormatSeverity_AllLevels(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		severity string
		expected string
	}{
		{markup.SeverityError, "error"},
		{markup.SeverityWarning, "warning"},
		{"other", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			assert.Equal(t, tt.expected, styles.FormatSeverity(tt.severity))
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.txt", styles.FormatFileHeader("a.txt", 0))
	assert.Equal(t, "a.txt (3 issues)", styles.FormatFileHeader("a.txt", 3))
}

func TestFormatFileError(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatFileError("gone.txt", errors.New("file not found"))

	assert.Equal(t, "gone.txt: error: file not found\n", result)
}

func TestFormatBlock_NoColor(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := markup.New().Parse("A<b><i>B</i></b>C\n")

	assert.Equal(t, "A[Bold Italic]B[/]C", styles.FormatBlock(doc.Blocks[0]))
}

func TestFormatBlock_Empty(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Empty(t, styles.FormatBlock(markup.Block{}))
}
