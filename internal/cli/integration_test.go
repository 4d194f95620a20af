package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ixtext/internal/cli"
	"github.com/yaklabco/ixtext/pkg/config"
	"github.com/yaklabco/ixtext/pkg/reporter"
)

// sandbox moves the test into a fresh directory with no user or project
// configuration and returns that directory.
func sandbox(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("NO_COLOR", "1")
	t.Chdir(dir)

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_ParseStdin(t *testing.T) {
	sandbox(t)

	stdout, _, err := execute(t, "<b>Hi</b> there\n", "parse")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "-", lines[0])
	assert.Contains(t, lines[1], "Bold")
	assert.Contains(t, lines[1], `"Hi"`)
	assert.Contains(t, lines[2], "Regular")
	assert.Contains(t, lines[2], `" there"`)
}

func TestIntegration_ParseStdinDash(t *testing.T) {
	sandbox(t)

	stdout, _, err := execute(t, "NoNewlineAtEnd", "parse", "--format", "json", "-")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	require.Len(t, output.Files, 1)
	require.NotNil(t, output.Files[0].Document)
	assert.Empty(t, output.Files[0].Document.Blocks, "text after the last newline is dropped")
}

func TestIntegration_ParseKeepTrailing(t *testing.T) {
	sandbox(t)

	stdout, _, err := execute(t, "NoNewlineAtEnd", "parse", "--format", "json", "--keep-trailing")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	require.Len(t, output.Files[0].Document.Blocks, 1)
	assert.Equal(t, "NoNewlineAtEnd", output.Files[0].Document.Blocks[0].Text())
}

func TestIntegration_ParseFileJSON(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "scene.txt"), "<b><i>X<u>Y</u></b>Z</i>\n<z>text</z>\n")

	stdout, _, err := execute(t, "", "parse", "--format", "json", "scene.txt")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	require.Len(t, output.Files, 1)

	file := output.Files[0]
	assert.Equal(t, "scene.txt", file.Path)
	assert.Len(t, file.SHA256, 64)
	require.NotNil(t, file.Document)
	require.Len(t, file.Document.Blocks, 2)
	assert.Equal(t, []string{"Bold Italic", "Bold Italic Underline", "Italic"}, file.Document.Blocks[0].Labels())
	assert.Equal(t, []string{"Regular"}, file.Document.Blocks[1].Labels())
	require.Len(t, file.Diagnostics, 2)
	assert.Equal(t, "unknown-tag-character", file.Diagnostics[0].Kind)
	assert.Equal(t, 2, file.Diagnostics[0].Line)
}

func TestIntegration_ParseUnterminatedPolicyFlag(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "open.txt"), "<b>open\n")

	stdout, _, err := execute(t, "", "parse", "--format", "json", "--unterminated", "regular", "open.txt")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.Equal(t, []string{"Regular"}, output.Files[0].Document.Blocks[0].Labels())
}

func TestIntegration_ParsePreview(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "a.txt"), "A<b>B</b>C\n")

	stdout, _, err := execute(t, "", "parse", "--format", "preview", "a.txt")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 │ A[Bold]B[/]C")
}

func TestIntegration_ParseOutWritesAtomically(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "a.txt"), "<b>Hi</b>\n")
	out := filepath.Join(dir, "out", "a.json")

	stdout, stderr, err := execute(t, "", "parse", "--out", out, "a.txt")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "wrote parse output")
	assert.Contains(t, stderr, "changed=true")

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(data, &output))
	assert.Equal(t, []string{"Bold"}, output.Files[0].Document.Blocks[0].Labels())

	_, stderr, err = execute(t, "", "parse", "--out", out, "a.txt")
	require.NoError(t, err)
	assert.Contains(t, stderr, "changed=false")
}

func TestIntegration_ParseMissingFile(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "a.txt"), "ok\n")

	stdout, stderr, err := execute(t, "", "parse", "missing.txt", "a.txt")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitCheckErrors, cli.ExitCode(err))
	assert.Contains(t, stdout, "missing.txt: error:")
	assert.Contains(t, stdout, "a.txt")
	assert.Contains(t, stderr, "failed to read input")
}

func TestIntegration_ParseRejectsSummary(t *testing.T) {
	sandbox(t)

	_, _, err := execute(t, "x\n", "parse", "--format", "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported by parse")
}

func TestIntegration_LoadFromContentDir(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "project", "content", "intro.txt"), "<u>Welcome</u> back\n")
	cfgFile := filepath.Join(dir, "project", "ixtext.yml")
	writeFile(t, cfgFile, "content_dir: content\n")

	stdout, _, err := execute(t, "", "--config", cfgFile, "load", "--format", "json", "intro.txt")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	require.Len(t, output.Files, 1)
	assert.Equal(t, "intro.txt", output.Files[0].Path)
	assert.Equal(t, []string{"Underline", "Regular"}, output.Files[0].Document.Blocks[0].Labels())
}

func TestIntegration_LoadLogsDiagnostics(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "bad.txt"), "<z>text</z>\n")

	stdout, stderr, err := execute(t, "", "load", "bad.txt")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Regular")
	assert.Contains(t, stderr, "unknown markup 'z'")
	assert.Contains(t, stderr, "resource=bad.txt")
}

func TestIntegration_LoadMissingYieldsEmptyDocument(t *testing.T) {
	sandbox(t)

	stdout, stderr, err := execute(t, "", "load", "--format", "json", "nope.txt")
	require.NoError(t, err)
	assert.Contains(t, stderr, "interaction file not found")
	assert.Contains(t, stderr, "resource=nope.txt")

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.True(t, output.Files[0].Document.Empty())
}

func TestIntegration_LoadRejectsEscapingName(t *testing.T) {
	sandbox(t)

	_, stderr, err := execute(t, "", "load", "../outside.txt")
	require.NoError(t, err)
	assert.Contains(t, stderr, "failed to read interaction file")
}

func TestIntegration_CheckClean(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "a.txt"), "<b>Hi</b>\n")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "plain\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "<z>\n")

	stdout, _, err := execute(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found (2 files checked)")
}

func TestIntegration_CheckFindsErrors(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "good.txt"), "fine\n")
	writeFile(t, filepath.Join(dir, "bad.txt"), "<z>text</z>\n")

	stdout, _, err := execute(t, "", "check")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitCheckErrors, cli.ExitCode(err))
	assert.Contains(t, stdout, "bad.txt:1:1  error  unknown markup 'z'")
	assert.NotContains(t, stdout, "good.txt")
}

func TestIntegration_CheckStrict(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "warn.txt"), "a</b>c\n")

	_, _, err := execute(t, "", "check")
	require.NoError(t, err, "warnings pass without --strict")

	_, _, err = execute(t, "", "check", "--strict")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitCheckWarnings, cli.ExitCode(err))
}

func TestIntegration_CheckIgnore(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "drafts", "bad.txt"), "<z>\n")
	writeFile(t, filepath.Join(dir, "ok.txt"), "ok\n")

	_, _, err := execute(t, "", "check", "--ignore", "drafts/**")
	require.NoError(t, err)
}

func TestIntegration_CheckProjectConfig(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, ".ixtext.yml"), "extensions: [\".ix\"]\n")
	writeFile(t, filepath.Join(dir, "a.ix"), "<z>\n")
	writeFile(t, filepath.Join(dir, "b.txt"), "<z>\n")

	stdout, _, err := execute(t, "", "check")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, stdout, "a.ix")
	assert.NotContains(t, stdout, "b.txt")
}

func TestIntegration_CheckEnvOverridesProjectConfig(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, ".ixtext.yml"), "unterminated: styled\n")
	writeFile(t, filepath.Join(dir, "a.txt"), "<b>open\n")
	t.Setenv("IXTEXT_FORMAT", "json")

	stdout, _, err := execute(t, "", "check")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.Equal(t, 1, output.Summary.ByKind["unterminated-style"])
}

func TestIntegration_CheckSummaryFormat(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "a.txt"), "a</b>\n<b>x</\n")

	stdout, _, err := execute(t, "", "check", "--format", "summary")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Kinds Summary")
	assert.Contains(t, stdout, "Files Summary")
	assert.Contains(t, stdout, "stray-close-tag")
	assert.Contains(t, stdout, "Check completed with warnings")
}

func TestIntegration_CheckSummaryNoIssues(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "a.txt"), "fine\n")

	stdout, _, err := execute(t, "", "check", "--format", "summary")
	require.NoError(t, err)
	assert.Equal(t, "No issues found\n", stdout)
}

func TestIntegration_CheckFix(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "bad.txt")
	writeFile(t, path, "<z>Hi</z>\n<b>open\n")

	stdout, _, err := execute(t, "", "check", "--fix")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bad.txt: fixed 3 issues")
	assert.Contains(t, stdout, "Fixed 3 issues in 1 file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi\n<b>open</b>\n", string(content))

	_, _, err = execute(t, "", "check")
	require.NoError(t, err)
}

func TestIntegration_CheckFixBackup(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "warn.txt")
	writeFile(t, path, "a</b>c\n")

	_, _, err := execute(t, "", "check", "--fix", "--backup")
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".ixtext.bak")
	require.NoError(t, err)
	assert.Equal(t, "a</b>c\n", string(backup))

	fixed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ac\n", string(fixed))
}

func TestIntegration_CheckDryRun(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "warn.txt")
	writeFile(t, path, "a</b>c\n")

	stdout, _, err := execute(t, "", "check", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "diff --git a/warn.txt b/warn.txt")
	assert.Contains(t, stdout, "-a</b>c\n+ac\n")
	assert.Contains(t, stdout, "1 file changed, 1 insertion(+), 1 deletion(-)")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a</b>c\n", string(content))
}

func TestIntegration_CheckDryRunJSON(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, "warn.txt"), "a</b>c\n")

	stdout, _, err := execute(t, "", "check", "--dry-run", "--format", "json")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	require.Len(t, output.Files, 1)
	assert.Equal(t, 1, output.Files[0].Fixed)
	assert.False(t, output.Files[0].Written)
}

func TestIntegration_ParseRejectsDiff(t *testing.T) {
	sandbox(t)

	_, _, err := execute(t, "a\n", "parse", "--format", "diff")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported by parse")
}

func TestIntegration_InvalidConfig(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, filepath.Join(dir, ".ixtext.yml"), "unterminated: sometimes\n")

	_, _, err := execute(t, "", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "sometimes")
}

func TestIntegration_TagsText(t *testing.T) {
	sandbox(t)

	stdout, _, err := execute(t, "", "tags")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	for i, name := range []string{"Bold", "Italic", "StrikeThrough", "Underline"} {
		assert.Contains(t, lines[i], name)
	}
	assert.Contains(t, lines[0], "tag=<b>")
	assert.Contains(t, lines[0], "close=</b>")
}

func TestIntegration_TagsJSON(t *testing.T) {
	sandbox(t)

	stdout, _, err := execute(t, "", "tags", "--format", "json")
	require.NoError(t, err)

	var tags []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &tags))
	require.Len(t, tags, 4)
	assert.Equal(t, map[string]string{"tag": "s", "name": "StrikeThrough", "open": "<s>", "close": "</s>"}, tags[2])
}

func TestIntegration_TagsKinds(t *testing.T) {
	sandbox(t)

	stdout, _, err := execute(t, "", "tags", "--kinds", "--format", "json")
	require.NoError(t, err)

	var kinds []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &kinds))
	require.Len(t, kinds, 6)
	assert.Equal(t, map[string]string{"kind": "unknown-tag-character", "severity": "error"}, kinds[0])
}

func TestIntegration_TagsInvalidFormat(t *testing.T) {
	sandbox(t)

	_, _, err := execute(t, "", "tags", "--format", "xml")
	require.Error(t, err)
}

func TestIntegration_Init(t *testing.T) {
	dir := sandbox(t)

	stdout, _, err := execute(t, "", "init", "--content-dir", "content")
	require.NoError(t, err)
	assert.Contains(t, stdout, "created configuration file")

	data, err := os.ReadFile(filepath.Join(dir, ".ixtext.yml"))
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "content", cfg.ContentDir)

	_, _, err = execute(t, "", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "", "init", "--force", "--full")
	require.NoError(t, err)

	data, err = os.ReadFile(filepath.Join(dir, ".ixtext.yml"))
	require.NoError(t, err)
	cfg, err = config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{".txt"}, cfg.Extensions)
}

func TestIntegration_RootHelp(t *testing.T) {
	sandbox(t)

	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ixtext parses interaction text")
	assert.Contains(t, stdout, "Usage:\n  ixtext [command]")
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "Style Tags:\n  <b>text</b>  Bold\n  <i>text</i>  Italic")
	assert.Contains(t, stdout, "--color string")
	assert.Contains(t, stdout, `Use "ixtext [command] --help" for more information about a command.`)
}

func TestIntegration_SubcommandHelp(t *testing.T) {
	sandbox(t)

	stdout, _, err := execute(t, "", "check", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ixtext check [paths...]")
	assert.Contains(t, stdout, "Flags:")
	assert.Contains(t, stdout, "--dry-run")
	assert.Contains(t, stdout, "Global Flags:")
	assert.NotContains(t, stdout, "Style Tags:")
}
