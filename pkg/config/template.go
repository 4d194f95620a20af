package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of commented examples.
	Full bool

	// ContentDir overrides the content directory written to the template.
	ContentDir string
}

// GenerateTemplate creates a commented .ixtext.yml template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	defaults := NewConfig()
	if opts.ContentDir != "" {
		defaults.ContentDir = opts.ContentDir
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	if opts.Full {
		body, err := defaults.ToYAML()
		if err != nil {
			return nil, err
		}
		buf.Write(body)
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, `# Directory interaction files are loaded from by name
content_dir: %s

# File extensions treated as interaction files
# extensions:
#   - %s

# File patterns to skip (glob patterns)
# ignore:
#   - "drafts/**"

# Label of text still styled at the end of a line: styled or regular
# unterminated: %s

# Parse text after the final newline instead of dropping it
# keep_trailing_segment: false

# Maximum bytes per line (0 = unlimited)
# max_block_bytes: %d

# Maximum bytes per file (0 = unlimited)
# max_file_bytes: %d
`,
		quoteIfNeeded(defaults.ContentDir),
		DefaultExtension,
		defaults.Unterminated,
		*defaults.MaxBlockBytes,
		*defaults.MaxFileBytes,
	)

	return buf.Bytes(), nil
}

// quoteIfNeeded quotes values YAML would otherwise misread.
func quoteIfNeeded(value string) string {
	if value == "" || strings.ContainsAny(value, ":#{}[],&*!|>'\"%@`") || strings.TrimSpace(value) != value {
		return fmt.Sprintf("%q", value)
	}
	return value
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# ixtext configuration
# Settings here apply to every command run below this directory.`
}
