package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ixtext/pkg/fsutil"
	"github.com/yaklabco/ixtext/pkg/source"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDir_ReadText(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "intro.txt", "<b>Hi</b>\n")
	writeFile(t, root, "chapter1/scene.txt", "Hello\n")
	writeFile(t, root, "big.txt", strings.Repeat("x", 100))

	dir := source.NewDir(root, 64)
	ctx := context.Background()

	t.Run("top level", func(t *testing.T) {
		t.Parallel()

		text, err := dir.ReadText(ctx, "intro.txt")
		require.NoError(t, err)
		assert.Equal(t, "<b>Hi</b>\n", text)
	})

	t.Run("nested with redundant segments", func(t *testing.T) {
		t.Parallel()

		text, err := dir.ReadText(ctx, "chapter1/./../chapter1/scene.txt")
		require.NoError(t, err)
		assert.Equal(t, "Hello\n", text)
	})

	t.Run("missing resource", func(t *testing.T) {
		t.Parallel()

		_, err := dir.ReadText(ctx, "missing.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, source.ErrNotFound)
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("over the size limit", func(t *testing.T) {
		t.Parallel()

		_, err := dir.ReadText(ctx, "big.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, fsutil.ErrTooLarge)
		assert.False(t, errors.Is(err, source.ErrNotFound))
	})
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "intro.txt", "intro.txt", false},
		{"nested", "a/b/c.txt", "a/b/c.txt", false},
		{"dot segments", "./a/../b.txt", "b.txt", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"absolute", "/etc/passwd", "", true},
		{"parent", "../secret.txt", "", true},
		{"parent after clean", "a/../../secret.txt", "", true},
		{"root itself", "a/..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := source.CleanName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, source.ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDir_RejectsEscapingNames(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	root := filepath.Join(parent, "content")
	require.NoError(t, os.Mkdir(root, 0o755))
	writeFile(t, parent, "secret.txt", "nope\n")

	_, err := source.NewDir(root, 0).ReadText(context.Background(), "../secret.txt")
	assert.ErrorIs(t, err, source.ErrInvalidName)
}

func TestMemory(t *testing.T) {
	t.Parallel()

	mem := source.NewMemory(map[string]string{"b.txt": "B\n"})
	mem.Set("a.txt", "A\n")

	assert.Equal(t, []string{"a.txt", "b.txt"}, mem.Names())

	text, err := mem.ReadText(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "A\n", text)

	_, err = mem.ReadText(context.Background(), "c.txt")
	assert.ErrorIs(t, err, source.ErrNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = mem.ReadText(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory_ZeroValue(t *testing.T) {
	t.Parallel()

	var mem source.Memory
	mem.Set("x.txt", "x\n")

	text, err := mem.ReadText(context.Background(), "x.txt")
	require.NoError(t, err)
	assert.Equal(t, "x\n", text)
}
