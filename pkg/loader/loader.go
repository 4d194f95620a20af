// Package loader loads named interaction files from a Source and parses them
// into styled Documents.
package loader

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/markup"
	"github.com/yaklabco/ixtext/pkg/source"
)

// Loader reads interaction files from a Source and parses them.
// It is safe for concurrent use when its Source is.
type Loader struct {
	source source.Source
	opts   markup.Options
	logger *log.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. Without it the logger is taken from the
// context of each call.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithParseOptions sets the options every file is parsed with.
// The resource name is always set to the loaded name.
func WithParseOptions(opts markup.Options) Option {
	return func(l *Loader) {
		l.opts = opts
	}
}

// New creates a Loader reading from src.
func New(src source.Source, opts ...Option) *Loader {
	ldr := &Loader{
		source: src,
		opts:   markup.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(ldr)
	}
	return ldr
}

// Load reads and parses the named resource. Diagnostics are returned, not logged.
func (l *Loader) Load(ctx context.Context, name string) (markup.Document, []markup.Diagnostic, error) {
	raw, err := l.source.ReadText(ctx, name)
	if err != nil {
		return markup.Document{}, nil, err
	}

	doc, diags := l.parser(name).ParseWithDiagnostics(raw)
	return doc, diags, nil
}

// LoadInteractionFile reads and parses the named resource. It never fails:
// a resource that cannot be read is logged and yields an empty Document, and
// markup diagnostics are logged with the resource name.
func (l *Loader) LoadInteractionFile(ctx context.Context, name string) markup.Document {
	logger := l.loggerFor(ctx)

	doc, diags, err := l.Load(ctx, name)
	if err != nil {
		msg := "failed to read interaction file"
		if errors.Is(err, source.ErrNotFound) {
			msg = "interaction file not found"
		}
		logger.Warn(msg, logging.FieldResource, name, logging.FieldError, err)
		return markup.Document{}
	}

	markup.LogDiagnostics(logger, name, diags)
	logger.Debug("loaded interaction file",
		logging.FieldResource, name,
		logging.FieldBlocks, doc.Len(),
		logging.FieldRuns, doc.RunCount(),
	)

	return doc
}

func (l *Loader) parser(name string) *markup.Parser {
	opts := l.opts
	opts.ResourceName = name
	return markup.New(markup.WithOptions(opts))
}

func (l *Loader) loggerFor(ctx context.Context) *log.Logger {
	if l.logger != nil {
		return l.logger
	}
	return logging.FromContext(ctx)
}
