// Package markup parses interaction text: newline-delimited blocks of script
// text carrying the inline style tags <b>, <i>, <s> and <u>.
//
// Each block becomes an ordered list of runs, one per differently-styled
// substring, so that a renderer that can only draw one font style per call
// can draw the block run by run.
//
// Parsing is total: malformed markup is reported as Diagnostics and the
// parser produces a best-effort Document instead of failing.
package markup

import (
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/ixtext/internal/logging"
)

// UnterminatedPolicy selects the label of text that is still styled when a block ends.
type UnterminatedPolicy string

const (
	// UnterminatedStyled keeps the styles that were active (default).
	UnterminatedStyled UnterminatedPolicy = "styled"

	// UnterminatedRegular labels the text "Regular".
	UnterminatedRegular UnterminatedPolicy = "regular"
)

// IsValid reports whether the policy is known. The empty policy means the default.
func (p UnterminatedPolicy) IsValid() bool {
	switch p {
	case "", UnterminatedStyled, UnterminatedRegular:
		return true
	default:
		return false
	}
}

// DefaultMaxBlockBytes is the default size limit of a single block.
const DefaultMaxBlockBytes = 1 << 20

// Options controls parsing behavior.
type Options struct {
	// Unterminated selects the label of text left styled at the end of a block.
	Unterminated UnterminatedPolicy

	// KeepTrailingSegment parses text after the final newline as a block
	// instead of dropping it.
	KeepTrailingSegment bool

	// MaxBlockBytes truncates longer blocks. Zero or negative means unlimited.
	MaxBlockBytes int

	// ResourceName identifies the input in log messages.
	ResourceName string
}

// DefaultOptions returns the default parsing options.
func DefaultOptions() Options {
	return Options{
		Unterminated:  UnterminatedStyled,
		MaxBlockBytes: DefaultMaxBlockBytes,
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger diagnostics are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithOptions replaces all parsing options.
func WithOptions(opts Options) Option {
	return func(p *Parser) {
		p.opts = opts
	}
}

// WithUnterminatedPolicy sets the label policy for unterminated styles.
func WithUnterminatedPolicy(policy UnterminatedPolicy) Option {
	return func(p *Parser) {
		p.opts.Unterminated = policy
	}
}

// WithKeepTrailingSegment parses text after the last newline instead of dropping it.
func WithKeepTrailingSegment(keep bool) Option {
	return func(p *Parser) {
		p.opts.KeepTrailingSegment = keep
	}
}

// WithMaxBlockBytes sets the block size limit.
func WithMaxBlockBytes(limit int) Option {
	return func(p *Parser) {
		p.opts.MaxBlockBytes = limit
	}
}

// WithResourceName sets the name used for the input in log messages.
func WithResourceName(name string) Option {
	return func(p *Parser) {
		p.opts.ResourceName = name
	}
}

// Parser converts raw interaction text into Documents.
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	opts   Options
	logger *log.Logger
}

// New creates a Parser with DefaultOptions modified by opts.
func New(opts ...Option) *Parser {
	parser := &Parser{
		opts:   DefaultOptions(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Options returns the parser's options.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse parses raw and logs every diagnostic.
func (p *Parser) Parse(raw string) Document {
	doc, diags := p.ParseWithDiagnostics(raw)
	LogDiagnostics(p.logger, p.opts.ResourceName, diags)
	return doc
}

// ParseWithDiagnostics parses raw and returns the problems found instead of logging them.
func (p *Parser) ParseWithDiagnostics(raw string) (Document, []Diagnostic) {
	segments := SplitSegments(raw, p.opts.KeepTrailingSegment)
	regular := p.opts.Unterminated == UnterminatedRegular

	doc := Document{Blocks: make([]Block, 0, len(segments))}
	var diags []Diagnostic

	for _, segment := range segments {
		text := segment.Text
		if limit := p.opts.MaxBlockBytes; limit > 0 && len(text) > limit {
			cut := truncationPoint(text, limit)
			diags = append(diags, Diagnostic{
				Kind:    BlockTooLong,
				Block:   segment.Index,
				Offset:  cut,
				Message: newDiagnostic(BlockTooLong, cut, 0, 0).Message,
			})
			text = text[:cut]
		}

		runs, blockDiags := lexBlock(text, regular)
		if runs == nil {
			runs = []Run{}
		}
		for _, diag := range blockDiags {
			diag.Block = segment.Index
			diags = append(diags, diag)
		}

		doc.Blocks = append(doc.Blocks, Block{Runs: runs})
	}

	return doc, diags
}

// Parse parses raw with default options and the default logger.
func Parse(raw string) Document {
	return New().Parse(raw)
}

// LogDiagnostics writes each diagnostic to logger. Unknown tag characters
// are logged as errors, everything else as warnings.
func LogDiagnostics(logger *log.Logger, resource string, diags []Diagnostic) {
	if logger == nil {
		return
	}

	for _, diag := range diags {
		keyvals := []any{
			logging.FieldKind, diag.Kind.String(),
			logging.FieldLine, diag.Line(),
			logging.FieldColumn, diag.Column(),
		}
		if resource != "" {
			keyvals = append(keyvals, logging.FieldResource, resource)
		}
		if diag.Char != 0 {
			keyvals = append(keyvals, logging.FieldChar, string(rune(diag.Char)))
		}

		if diag.Severity() == SeverityError {
			logger.Error(diag.Message, keyvals...)
		} else {
			logger.Warn(diag.Message, keyvals...)
		}
	}
}

// truncationPoint returns the largest index <= limit that does not split a UTF-8 sequence.
func truncationPoint(text string, limit int) int {
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == 0 {
		return limit
	}
	return cut
}
