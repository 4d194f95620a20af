package fix

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// LineKind tells whether a diff line was kept, added or removed.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Line is one line of a hunk, without its diff prefix.
type Line struct {
	Kind LineKind
	Text string
}

// Prefix returns the unified diff prefix of the line.
func (l Line) Prefix() string {
	switch l.Kind {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Hunk is a group of nearby changes with their surrounding context.
// Line numbers are 1-based.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Diff is a line diff between the content of a file before and after fixing.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// NewDiff compares before and after line by line. It returns nil when no
// line differs.
func NewDiff(path string, before, after []byte) *Diff {
	if bytes.Equal(before, after) {
		return nil
	}

	ops := diffLines(splitLines(before), splitLines(after))
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Hunks: hunks}
	for _, op := range ops {
		switch op.Kind {
		case LineAdded:
			diff.Added++
		case LineRemoved:
			diff.Removed++
		case LineContext:
		}
	}
	return diff
}

// HasChanges reports whether the diff has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", d.Path, d.Path)
	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Prefix())
			builder.WriteString(line.Text)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// splitLines splits content at newlines. A final newline does not start
// another line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// diffLines returns the edit script turning before into after, built from
// their longest common subsequence.
func diffLines(before, after []string) []Line {
	rows, cols := len(before), len(after)

	// common[i][j] is the LCS length of before[i:] and after[j:].
	common := make([][]int, rows+1)
	for i := range common {
		common[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if before[i] == after[j] {
				common[i][j] = common[i+1][j+1] + 1
			} else {
				common[i][j] = max(common[i+1][j], common[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, max(rows, cols))
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case before[i] == after[j]:
			ops = append(ops, Line{Kind: LineContext, Text: before[i]})
			i++
			j++
		case common[i+1][j] >= common[i][j+1]:
			ops = append(ops, Line{Kind: LineRemoved, Text: before[i]})
			i++
		default:
			ops = append(ops, Line{Kind: LineAdded, Text: after[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		ops = append(ops, Line{Kind: LineRemoved, Text: before[i]})
	}
	for ; j < cols; j++ {
		ops = append(ops, Line{Kind: LineAdded, Text: after[j]})
	}

	return ops
}

// groupHunks splits an edit script into hunks. Changes separated by at most
// twice contextLines unchanged lines share a hunk.
func groupHunks(ops []Line) []Hunk {
	// oldAt[k] and newAt[k] count the old and new lines before ops[k].
	oldAt := make([]int, len(ops)+1)
	newAt := make([]int, len(ops)+1)
	for k, op := range ops {
		oldAt[k+1], newAt[k+1] = oldAt[k], newAt[k]
		if op.Kind != LineAdded {
			oldAt[k+1]++
		}
		if op.Kind != LineRemoved {
			newAt[k+1]++
		}
	}

	var hunks []Hunk
	for k := 0; k < len(ops); {
		if ops[k].Kind == LineContext {
			k++
			continue
		}

		start := max(0, k-contextLines)
		end := k
		for end < len(ops) {
			if ops[end].Kind != LineContext {
				end++
				continue
			}
			gap := end
			for gap < len(ops) && ops[gap].Kind == LineContext {
				gap++
			}
			if gap == len(ops) || gap-end > 2*contextLines {
				break
			}
			end = gap
		}
		stop := min(len(ops), end+contextLines)

		hunk := Hunk{
			OldStart: oldAt[start] + 1,
			OldLines: oldAt[stop] - oldAt[start],
			NewStart: newAt[start] + 1,
			NewLines: newAt[stop] - newAt[start],
			Lines:    slices.Clone(ops[start:stop]),
		}
		// An empty side is numbered by the line before it.
		if hunk.OldLines == 0 {
			hunk.OldStart--
		}
		if hunk.NewLines == 0 {
			hunk.NewStart--
		}
		hunks = append(hunks, hunk)

		k = stop
	}

	return hunks
}
