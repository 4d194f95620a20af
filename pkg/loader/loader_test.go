package loader_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/loader"
	"github.com/yaklabco/ixtext/pkg/markup"
	"github.com/yaklabco/ixtext/pkg/source"
)

// failingSource fails every read with err.
type failingSource struct{ err error }

func (f failingSource) ReadText(context.Context, string) (string, error) {
	return "", f.err
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	mem := source.NewMemory(map[string]string{
		"intro.txt": "<b>Hi</b> there\n<z>oops</z>\n",
	})
	ldr := loader.New(mem)

	doc, diags, err := ldr.Load(context.Background(), "intro.txt")
	require.NoError(t, err)

	require.Equal(t, 2, doc.Len())
	assert.Equal(t, "Hi there", doc.Blocks[0].Text())
	assert.Equal(t, []string{"Bold", "Regular"}, doc.Blocks[0].Labels())
	require.Len(t, diags, 2)
	assert.Equal(t, markup.UnknownTagCharacter, diags[0].Kind)
	assert.Equal(t, 1, diags[0].Block)
}

func TestLoader_LoadMissing(t *testing.T) {
	t.Parallel()

	_, _, err := loader.New(source.NewMemory(nil)).Load(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, source.ErrNotFound)
}

func TestLoader_ParseOptions(t *testing.T) {
	t.Parallel()

	opts := markup.DefaultOptions()
	opts.KeepTrailingSegment = true
	opts.Unterminated = markup.UnterminatedRegular

	mem := source.NewMemory(map[string]string{"scene.txt": "<i>open"})
	doc, _, err := loader.New(mem, loader.WithParseOptions(opts)).Load(context.Background(), "scene.txt")
	require.NoError(t, err)

	require.Equal(t, 1, doc.Len())
	assert.Equal(t, []string{"Regular"}, doc.Blocks[0].Labels())
}

func TestLoader_LoadInteractionFile(t *testing.T) {
	t.Parallel()

	t.Run("logs diagnostics with the resource name", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mem := source.NewMemory(map[string]string{"intro.txt": "<z>text</z>\n"})
		ldr := loader.New(mem, loader.WithLogger(logging.NewWithWriter(&buf, "debug")))

		doc := ldr.LoadInteractionFile(context.Background(), "intro.txt")

		assert.Equal(t, "text", doc.Blocks[0].Text())
		assert.Contains(t, buf.String(), "unknown markup")
		assert.Contains(t, buf.String(), "resource=intro.txt")
	})

	t.Run("missing file yields an empty document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		ldr := loader.New(source.NewMemory(nil), loader.WithLogger(logging.NewWithWriter(&buf, "warn")))

		doc := ldr.LoadInteractionFile(context.Background(), "missing.txt")

		assert.True(t, doc.Empty())
		assert.Contains(t, buf.String(), "interaction file not found")
		assert.Contains(t, buf.String(), "missing.txt")
	})

	t.Run("other read failures yield an empty document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		ldr := loader.New(failingSource{err: errors.New("disk on fire")},
			loader.WithLogger(logging.NewWithWriter(&buf, "warn")))

		doc := ldr.LoadInteractionFile(context.Background(), "scene.txt")

		assert.True(t, doc.Empty())
		assert.Contains(t, buf.String(), "failed to read interaction file")
	})

	t.Run("uses the context logger by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "warn"))

		doc := loader.New(source.NewMemory(nil)).LoadInteractionFile(ctx, "gone.txt")

		assert.True(t, doc.Empty())
		assert.Contains(t, buf.String(), "gone.txt")
	})
}
