package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ixtext/pkg/config"
	"github.com/yaklabco/ixtext/pkg/markup"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"drafts/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".scene"
		*clone.KeepTrailingSegment = true
		*clone.MaxBlockBytes = 1
		*clone.MaxFileBytes = 1

		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.Equal(t, config.DefaultExtension, original.Extensions[0])
		assert.False(t, *original.KeepTrailingSegment)
		assert.Equal(t, markup.DefaultMaxBlockBytes, *original.MaxBlockBytes)
		assert.Equal(t, config.DefaultMaxFileBytes, *original.MaxFileBytes)
	})

	t.Run("preserves CLI-only fields", func(t *testing.T) {
		original := &config.Config{
			Format: config.FormatJSON,
			Jobs:   4,
			Strict: true,
			Color:  config.ColorNever,
		}

		clone := original.Clone()
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, 4, clone.Jobs)
		assert.True(t, clone.Strict)
		assert.Equal(t, config.ColorNever, clone.Color)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("persisted fields only", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Format = config.FormatJSON
		cfg.Jobs = 3

		data, err := cfg.ToYAML()
		require.NoError(t, err)

		out := string(data)
		assert.Contains(t, out, "content_dir:")
		assert.Contains(t, out, "unterminated: styled")
		assert.Contains(t, out, "keep_trailing_segment: false")
		assert.Contains(t, out, "max_block_bytes: 1048576")
		assert.NotContains(t, out, "format")
		assert.NotContains(t, out, "jobs")
	})

	t.Run("round trips", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Ignore = []string{"drafts/**"}

		data, err := cfg.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, cfg.ContentDir, parsed.ContentDir)
		assert.Equal(t, cfg.Ignore, parsed.Ignore)
		assert.Equal(t, cfg.ParseOptions(), parsed.ParseOptions())
		assert.Equal(t, cfg.FileLimit(), parsed.FileLimit())
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`
content_dir: assets/text
extensions: [".txt", ".scene"]
unterminated: regular
keep_trailing_segment: true
max_block_bytes: 0
`))
		require.NoError(t, err)
		assert.Equal(t, "assets/text", cfg.ContentDir)
		assert.Equal(t, []string{".txt", ".scene"}, cfg.Extensions)

		opts := cfg.ParseOptions()
		assert.Equal(t, markup.UnterminatedRegular, opts.Unterminated)
		assert.True(t, opts.KeepTrailingSegment)
		assert.Equal(t, 0, opts.MaxBlockBytes)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, markup.DefaultOptions(), cfg.ParseOptions())
		assert.Equal(t, config.DefaultMaxFileBytes, cfg.FileLimit())
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavor: gfm\n"))
		require.Error(t, err)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("content_dir: [unclosed\n"))
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal template parses", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{ContentDir: "assets/text"})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# ixtext configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "assets/text", cfg.ContentDir)
	})

	t.Run("full template holds every default", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig().ParseOptions(), cfg.ParseOptions())
		assert.Equal(t, []string{config.DefaultExtension}, cfg.Extensions)
	})

	t.Run("quotes awkward directories", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{ContentDir: "text: en"})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "text: en", cfg.ContentDir)
	})
}
