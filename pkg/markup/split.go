package markup

import "strings"

// Delimiter separates blocks in raw interaction text.
const Delimiter = '\n'

// Segment is the raw text of one block, without its delimiter.
type Segment struct {
	// Index is the 0-based position of the segment in the input.
	Index int

	// Offset is the byte offset of the segment within the input.
	Offset int

	// Text is the segment content.
	Text string
}

// SplitSegments partitions raw into newline-terminated segments.
//
// Text after the last delimiter has no terminating newline and is dropped
// unless keepTrailing is set, in which case a non-empty remainder becomes
// the final segment.
func SplitSegments(raw string, keepTrailing bool) []Segment {
	segments := make([]Segment, 0, strings.Count(raw, string(Delimiter))+1)

	offset := 0
	for {
		next := strings.IndexByte(raw[offset:], Delimiter)
		if next < 0 {
			break
		}

		segments = append(segments, Segment{
			Index:  len(segments),
			Offset: offset,
			Text:   raw[offset : offset+next],
		})
		offset += next + 1
	}

	if keepTrailing && offset < len(raw) {
		segments = append(segments, Segment{
			Index:  len(segments),
			Offset: offset,
			Text:   raw[offset:],
		})
	}

	return segments
}
