package markup

import (
	"strconv"
	"strings"
)

// StyleFlag is a single inline formatting style.
// Declaration order is significant: labels list active styles in this order.
type StyleFlag uint8

const (
	Bold StyleFlag = 1 << iota
	Italic
	StrikeThrough
	Underline
)

// RegularLabel is the label of a run with no active styles.
const RegularLabel = "Regular"

// flagCount is the number of defined style flags.
const flagCount = 4

// styleTable maps each flag, in declaration order, to its tag byte and display name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var styleTable = [flagCount]struct {
	flag StyleFlag
	tag  byte
	name string
}{
	{Bold, 'b', "Bold"},
	{Italic, 'i', "Italic"},
	{StrikeThrough, 's', "StrikeThrough"},
	{Underline, 'u', "Underline"},
}

// labelTable holds the canonical label of every possible StyleSet.
//
//nolint:gochecknoglobals // Computed once at init, never mutated.
var labelTable = buildLabelTable()

func buildLabelTable() [1 << flagCount]string {
	var table [1 << flagCount]string
	for set := range len(table) {
		table[set] = buildLabel(StyleSet(set))
	}
	return table
}

func buildLabel(set StyleSet) string {
	if set.Empty() {
		return RegularLabel
	}

	names := make([]string, 0, flagCount)
	for _, entry := range styleTable {
		if set.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, " ")
}

// Flags returns all style flags in declaration order.
func Flags() []StyleFlag {
	flags := make([]StyleFlag, 0, flagCount)
	for _, entry := range styleTable {
		flags = append(flags, entry.flag)
	}
	return flags
}

// FlagForTag returns the flag whose tag character is tag.
func FlagForTag(tag byte) (StyleFlag, bool) {
	for _, entry := range styleTable {
		if entry.tag == tag {
			return entry.flag, true
		}
	}
	return 0, false
}

// Tag returns the tag character of the flag, or 0 if the flag is not a single defined style.
func (f StyleFlag) Tag() byte {
	for _, entry := range styleTable {
		if entry.flag == f {
			return entry.tag
		}
	}
	return 0
}

// String returns the display name of the flag.
func (f StyleFlag) String() string {
	for _, entry := range styleTable {
		if entry.flag == f {
			return entry.name
		}
	}
	return "StyleFlag(" + strconv.Itoa(int(f)) + ")"
}

// StyleSet is the set of currently active style flags.
type StyleSet uint8

// allFlags masks off bits that do not belong to a defined flag.
const allFlags = StyleSet(Bold | Italic | StrikeThrough | Underline)

// With returns the set with flag added.
func (s StyleSet) With(flag StyleFlag) StyleSet {
	return (s | StyleSet(flag)) & allFlags
}

// Without returns the set with flag removed.
func (s StyleSet) Without(flag StyleFlag) StyleSet {
	return s &^ StyleSet(flag)
}

// Has reports whether flag is active.
func (s StyleSet) Has(flag StyleFlag) bool {
	return flag != 0 && s&StyleSet(flag) == StyleSet(flag)
}

// Empty reports whether no flag is active.
func (s StyleSet) Empty() bool {
	return s&allFlags == 0
}

// Flags returns the active flags in declaration order.
func (s StyleSet) Flags() []StyleFlag {
	var flags []StyleFlag
	for _, entry := range styleTable {
		if s.Has(entry.flag) {
			flags = append(flags, entry.flag)
		}
	}
	return flags
}

// Label returns the canonical label: "Regular" for the empty set, otherwise
// the display names of the active flags in declaration order joined by a space.
func (s StyleSet) Label() string {
	return labelTable[s&allFlags]
}

// String implements fmt.Stringer.
func (s StyleSet) String() string {
	return s.Label()
}
