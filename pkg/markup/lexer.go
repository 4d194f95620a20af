package markup

import "strings"

// Tag syntax.
const (
	tagStart = '<'
	tagSlash = '/'
	tagEnd   = '>'

	openTagLen  = 3 // <x>
	closeTagLen = 4 // </x>
)

// lexState is a state of the block scanner.
type lexState uint8

const (
	// stateScanPlain advances through unstyled text to the next tag.
	stateScanPlain lexState = iota

	// stateAccumulateOpen consumes consecutive open tags into the style set.
	stateAccumulateOpen

	// stateEmitStyled emits the text up to the next tag under the active styles.
	stateEmitStyled

	// stateCloseOrReopen consumes close tags, or hands back to stateAccumulateOpen
	// when another open tag follows.
	stateCloseOrReopen

	stateDone
)

// lexer scans a single block. It is used once and discarded.
type lexer struct {
	text string
	pos  int

	// boundary is the start of text that has not been emitted yet.
	boundary int

	style StyleSet
	runs  []Run
	diags []Diagnostic

	// regularWhenUnterminated labels text left styled at the end of the block "Regular".
	regularWhenUnterminated bool
}

// lexBlock splits one block into runs. Every index advance is bounds-checked,
// so malformed input can never move the scan past the end of the text.
func lexBlock(text string, regularWhenUnterminated bool) ([]Run, []Diagnostic) {
	lex := &lexer{
		text:                    text,
		regularWhenUnterminated: regularWhenUnterminated,
	}

	state := stateScanPlain
	for state != stateDone {
		switch state {
		case stateScanPlain:
			state = lex.scanPlain()
		case stateAccumulateOpen:
			state = lex.accumulateOpen()
		case stateEmitStyled:
			state = lex.emitStyled()
		case stateCloseOrReopen:
			state = lex.closeOrReopen()
		case stateDone:
		}
	}

	lex.finish()

	return lex.runs, lex.diags
}

func (l *lexer) scanPlain() lexState {
	next := l.nextTagStart()
	if next == len(l.text) {
		return stateDone
	}

	l.emit(next, 0)
	l.pos = next

	// A close tag with nothing open still has to be consumed.
	if l.atCloseTag() {
		return stateCloseOrReopen
	}
	return stateAccumulateOpen
}

func (l *lexer) accumulateOpen() lexState {
	for {
		if l.pos+openTagLen > len(l.text) {
			l.truncate()
			return stateDone
		}

		tag := l.text[l.pos+1]
		if flag, ok := FlagForTag(tag); ok {
			l.style = l.style.With(flag)
		} else {
			l.report(UnknownTagCharacter, openTagLen, tag)
		}
		if l.text[l.pos+2] != tagEnd {
			l.report(MalformedTag, openTagLen, tag)
		}

		l.pos += openTagLen
		l.boundary = l.pos

		if !l.atOpenTag() {
			return stateEmitStyled
		}
	}
}

func (l *lexer) emitStyled() lexState {
	end := l.nextTagStart()

	style := l.style
	if end == len(l.text) && l.regularWhenUnterminated {
		style = 0
	}

	l.emit(end, style)
	l.pos = end

	if end == len(l.text) {
		return stateDone
	}
	return stateCloseOrReopen
}

func (l *lexer) closeOrReopen() lexState {
	for {
		if !l.atCloseTag() {
			return stateAccumulateOpen
		}

		if l.pos+closeTagLen > len(l.text) {
			l.truncate()
			return stateDone
		}

		tag := l.text[l.pos+2]
		if flag, ok := FlagForTag(tag); !ok {
			l.report(UnknownTagCharacter, closeTagLen, tag)
		} else if l.style.Has(flag) {
			l.style = l.style.Without(flag)
		} else {
			l.report(StrayCloseTag, closeTagLen, tag)
		}
		if l.text[l.pos+3] != tagEnd {
			l.report(MalformedTag, closeTagLen, tag)
		}

		l.pos += closeTagLen
		l.boundary = l.pos

		if l.style.Empty() {
			return stateScanPlain
		}
		if l.pos >= len(l.text) || l.text[l.pos] != tagStart {
			return stateEmitStyled
		}
	}
}

// finish reports styles left open and emits trailing plain text.
// Trailing text after all tags is always "Regular".
func (l *lexer) finish() {
	if !l.style.Empty() {
		diag := newDiagnostic(UnterminatedStyle, len(l.text), 0, 0)
		diag.Open = l.style
		l.diags = append(l.diags, diag)
	}
	l.emit(len(l.text), 0)
}

// emit appends text[boundary:end] as a run when it is non-empty.
func (l *lexer) emit(end int, style StyleSet) {
	if end > l.boundary {
		l.runs = append(l.runs, Run{
			Text:  l.text[l.boundary:end],
			Label: style.Label(),
			Style: style,
		})
	}
	l.boundary = end
}

// truncate drops a tag that runs past the end of the text.
func (l *lexer) truncate() {
	var tag byte
	if l.pos+1 < len(l.text) && l.text[l.pos+1] != tagSlash {
		tag = l.text[l.pos+1]
	} else if l.pos+2 < len(l.text) {
		tag = l.text[l.pos+2]
	}
	l.report(TruncatedTag, len(l.text)-l.pos, tag)

	l.pos = len(l.text)
	l.boundary = l.pos
}

func (l *lexer) report(kind DiagnosticKind, length int, tag byte) {
	l.diags = append(l.diags, newDiagnostic(kind, l.pos, length, tag))
}

// nextTagStart returns the index of the next '<' at or after pos, or len(text).
func (l *lexer) nextTagStart() int {
	idx := strings.IndexByte(l.text[l.pos:], tagStart)
	if idx < 0 {
		return len(l.text)
	}
	return l.pos + idx
}

func (l *lexer) atOpenTag() bool {
	return l.pos < len(l.text) && l.text[l.pos] == tagStart && !l.atCloseTag()
}

func (l *lexer) atCloseTag() bool {
	return l.pos+1 < len(l.text) && l.text[l.pos] == tagStart && l.text[l.pos+1] == tagSlash
}
