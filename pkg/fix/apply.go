package fix

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
)

// RangeError describes an edit that does not fit the content it targets.
type RangeError struct {
	Edit   TextEdit
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Reason)
}

// Validate checks that every edit lies within content of length contentLen.
func Validate(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.Start < 0:
			return &RangeError{Edit: edit, Reason: "start offset is negative"}
		case edit.End < edit.Start:
			return &RangeError{Edit: edit, Reason: "end offset is before start offset"}
		case edit.End > contentLen:
			return &RangeError{Edit: edit, Reason: fmt.Sprintf("end offset exceeds content length %d", contentLen)}
		}
	}
	return nil
}

// Prepare validates edits and orders them by position. Overlapping
// deletions are merged into one; any other edit overlapping an accepted
// one is returned in skipped. Edits with the same range keep their order.
func Prepare(edits []TextEdit, contentLen int) (accepted, skipped []TextEdit, err error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}
	if err := Validate(edits, contentLen); err != nil {
		return nil, nil, err
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})

	current := sorted[0]
	for _, edit := range sorted[1:] {
		switch {
		case edit.Start >= current.End:
			accepted = append(accepted, current)
			current = edit
		case current.IsDeletion() && edit.IsDeletion():
			current.End = max(current.End, edit.End)
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, current)

	return accepted, skipped, nil
}

// Apply applies edits prepared by Prepare to content and returns the result.
// content is not modified.
func Apply(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, edit := range edits {
		size += len(edit.NewText) - (edit.End - edit.Start)
	}

	var out bytes.Buffer
	out.Grow(size)

	cursor := 0
	for _, edit := range edits {
		out.Write(content[cursor:edit.Start])
		out.WriteString(edit.NewText)
		cursor = edit.End
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
