package markup

import "strings"

// Run is a contiguous span of block text drawn with a single style.
// Text is a substring of the parsed input and never contains tag syntax.
type Run struct {
	// Text is the run content.
	Text string `json:"text" yaml:"text"`

	// Label is the canonical label of the style the run was emitted with.
	Label string `json:"label" yaml:"label"`

	// Style is the style set the label was derived from.
	Style StyleSet `json:"-" yaml:"-"`
}

// Block is the parsed result of one newline-delimited segment.
type Block struct {
	Runs []Run `json:"runs" yaml:"runs"`
}

// Text returns the block's text with all markup removed.
func (b Block) Text() string {
	var builder strings.Builder
	for _, run := range b.Runs {
		builder.WriteString(run.Text)
	}
	return builder.String()
}

// Labels returns the label of each run, in order.
func (b Block) Labels() []string {
	labels := make([]string, len(b.Runs))
	for i, run := range b.Runs {
		labels[i] = run.Label
	}
	return labels
}

// Document is the ordered collection of parsed blocks.
type Document struct {
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// Len returns the number of blocks.
func (d Document) Len() int {
	return len(d.Blocks)
}

// Empty reports whether the document has no blocks.
func (d Document) Empty() bool {
	return len(d.Blocks) == 0
}

// RunCount returns the total number of runs across all blocks.
func (d Document) RunCount() int {
	total := 0
	for _, block := range d.Blocks {
		total += len(block.Runs)
	}
	return total
}
