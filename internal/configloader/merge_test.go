package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ixtext/pkg/config"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	keep := true
	zero := 0

	base := config.NewConfig()
	override := &config.Config{
		ContentDir:          "text",
		KeepTrailingSegment: &keep,
		MaxBlockBytes:       &zero,
		Ignore:              []string{"drafts/**"},
	}

	merged := merge(base, override)
	require.NotNil(t, merged)

	assert.Equal(t, "text", merged.ContentDir)
	assert.True(t, *merged.KeepTrailingSegment)
	assert.Equal(t, 0, *merged.MaxBlockBytes)
	assert.Equal(t, []string{"drafts/**"}, merged.Ignore)
	assert.Equal(t, base.Extensions, merged.Extensions, "unset slices keep the base value")
	assert.Equal(t, base.Unterminated, merged.Unterminated)

	assert.Equal(t, ".", base.ContentDir, "base is not modified")
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Unterminated: "regular"},
		&config.Config{Jobs: 3},
		nil,
	)
	assert.Equal(t, "regular", merged.Unterminated)
	assert.Equal(t, 3, merged.Jobs)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "IXTEXT_CONTENT_DIR")
	assert.Equal(t, "IXTEXT_MAX_BLOCK_BYTES", GetEnvVarName("max_block_bytes"))
	assert.Empty(t, GetEnvVarName("flavor"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	negative := -5

	tests := []struct {
		name       string
		cfg        *config.Config
		wantErrors []string
	}{
		{name: "nil", cfg: nil},
		{name: "defaults", cfg: config.NewConfig()},
		{name: "bad color", cfg: &config.Config{Color: "rainbow"}, wantErrors: []string{"color"}},
		{name: "negative jobs", cfg: &config.Config{Jobs: -1}, wantErrors: []string{"jobs"}},
		{name: "negative block limit", cfg: &config.Config{MaxBlockBytes: &negative}, wantErrors: []string{"max_block_bytes"}},
		{
			name:       "bad extensions",
			cfg:        &config.Config{Extensions: []string{".txt", ".", "*.txt", ".a.b"}},
			wantErrors: []string{"extensions[1]", "extensions[2]", "extensions[3]"},
		},
		{name: "bad glob", cfg: &config.Config{Ignore: []string{"[oops"}}, wantErrors: []string{"ignore[0]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)

			fields := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			if tt.wantErrors == nil {
				assert.True(t, result.Valid(), "unexpected errors: %v", result.AllMessages())
			} else {
				assert.Equal(t, tt.wantErrors, fields)
			}
		})
	}
}
