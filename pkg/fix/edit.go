// Package fix repairs malformed interaction markup with byte-range edits
// and describes the changes as unified diffs.
package fix

// TextEdit replaces the bytes [Start, End) with NewText.
// An empty range inserts; an empty NewText deletes.
type TextEdit struct {
	Start   int
	End     int
	NewText string
}

// IsDeletion reports whether the edit only removes bytes.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.End > e.Start
}

// EditBuilder accumulates the edits for one input.
type EditBuilder struct {
	edits []TextEdit
}

// Replace adds an edit replacing [start, end) with text.
func (b *EditBuilder) Replace(start, end int, text string) {
	b.edits = append(b.edits, TextEdit{Start: start, End: end, NewText: text})
}

// Insert adds an edit inserting text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Delete adds an edit removing [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Len returns the number of edits added so far.
func (b *EditBuilder) Len() int {
	return len(b.edits)
}

// Edits returns the edits in the order they were added.
func (b *EditBuilder) Edits() []TextEdit {
	return b.edits
}
