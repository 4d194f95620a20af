package markup_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/markup"
)

// FuzzParse fuzzes the parser with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"\n",
		"Hello\n",
		"<b>Hi</b> there\n",
		"<b><i>X<u>Y</u></b>Z</i>\n",
		"<z>text</z>\n",
		"a</b>c\n",
		"<b>x</b",
		"<",
		"</",
		"<<<>>>\n",
		"<b?<i?</x\n",
		"héllo <s>wörld</s>\r\n",
		"NoNewlineAtEnd",
	}

	for _, seed := range seeds {
		f.Add(seed, false)
		f.Add(seed, true)
	}

	f.Fuzz(func(t *testing.T, raw string, keepTrailing bool) {
		parser := markup.New(
			markup.WithLogger(logging.Discard()),
			markup.WithKeepTrailingSegment(keepTrailing),
		)

		doc, diags := parser.ParseWithDiagnostics(raw)
		segments := markup.SplitSegments(raw, keepTrailing)

		if doc.Len() != len(segments) {
			t.Fatalf("got %d blocks for %d segments", doc.Len(), len(segments))
		}

		for i, block := range doc.Blocks {
			total := 0
			for _, run := range block.Runs {
				if run.Text == "" {
					t.Errorf("block %d: empty run", i)
				}
				if strings.Contains(run.Text, "<") {
					t.Errorf("block %d: run %q contains a tag start", i, run.Text)
				}
				if run.Label != run.Style.Label() {
					t.Errorf("block %d: label %q does not match style %q", i, run.Label, run.Style.Label())
				}
				if !strings.Contains(segments[i].Text, run.Text) {
					t.Errorf("block %d: run %q is not a substring of its segment", i, run.Text)
				}
				total += len(run.Text)
			}
			if total > len(segments[i].Text) {
				t.Errorf("block %d: runs cover %d bytes of a %d byte segment", i, total, len(segments[i].Text))
			}
		}

		for _, diag := range diags {
			if diag.Block < 0 || diag.Block >= len(segments) {
				t.Errorf("diagnostic %v points at missing block", diag)
				continue
			}
			if diag.Offset < 0 || diag.Offset > len(segments[diag.Block].Text) {
				t.Errorf("diagnostic %v offset is outside its block", diag)
			}
		}

		again, _ := parser.ParseWithDiagnostics(raw)
		if again.RunCount() != doc.RunCount() {
			t.Errorf("parsing is not deterministic: %d runs then %d", doc.RunCount(), again.RunCount())
		}
	})
}
