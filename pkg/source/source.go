// Package source provides the text sources interaction files are loaded from.
package source

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/yaklabco/ixtext/pkg/fsutil"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the named resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidName indicates a resource name that is empty or leaves the source root.
	ErrInvalidName = errors.New("invalid resource name")
)

// Source resolves a resource name to its full text.
type Source interface {
	ReadText(ctx context.Context, name string) (string, error)
}

// Dir reads resources from files below Root. Names use forward slashes.
type Dir struct {
	// Root is the directory resources are resolved against.
	Root string

	// MaxBytes limits the size of a single resource. Zero or less means unlimited.
	MaxBytes int64
}

// NewDir creates a directory source.
func NewDir(root string, maxBytes int64) *Dir {
	return &Dir{Root: root, MaxBytes: maxBytes}
}

// ReadText implements Source.
func (d *Dir) ReadText(ctx context.Context, name string) (string, error) {
	clean, err := CleanName(name)
	if err != nil {
		return "", err
	}

	content, _, err := fsutil.ReadFile(ctx, filepath.Join(d.Root, filepath.FromSlash(clean)), d.MaxBytes)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return "", fmt.Errorf("%w: %s: %w", ErrNotFound, name, err)
		}
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	return string(content), nil
}

// CleanName normalizes a resource name and rejects names that are empty,
// absolute, or escape the source root.
func CleanName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	slashed := filepath.ToSlash(name)
	if path.IsAbs(slashed) || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s is absolute", ErrInvalidName, name)
	}

	clean := path.Clean(slashed)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s escapes the content directory", ErrInvalidName, name)
	}
	if clean == "." {
		return "", fmt.Errorf("%w: %s names the content directory itself", ErrInvalidName, name)
	}

	return clean, nil
}

// Memory is a map-backed Source, safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	texts map[string]string
}

// NewMemory creates a Memory source holding texts.
func NewMemory(texts map[string]string) *Memory {
	mem := &Memory{texts: make(map[string]string, len(texts))}
	for name, text := range texts {
		mem.texts[name] = text
	}
	return mem
}

// Set adds or replaces a resource.
func (m *Memory) Set(name, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.texts == nil {
		m.texts = make(map[string]string)
	}
	m.texts[name] = text
}

// Names returns the resource names in sorted order.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.texts))
	for name := range m.texts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadText implements Source.
func (m *Memory) ReadText(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.texts[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return text, nil
}
