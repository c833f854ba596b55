package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand_WritesFile(t *testing.T) {
	dir := useTempStore(t)
	input := writeFile(t, dir, "resume.json", sampleResumeJSON)
	outDir := filepath.Join(dir, "out")

	output, err := executeCommand(t, "", "render", input, "--out", outDir)
	require.NoError(t, err)

	path := filepath.Join(outDir, "jane-doe.tex")
	assert.Contains(t, output, "Rendered "+input+" -> "+path)
	assert.Contains(t, output, "(4 sections: header, education, experience, skills)")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	latex := string(content)
	assert.Contains(t, latex, `\begin{document}`)
	assert.Contains(t, latex, `Acme \& Co`)
	assert.Contains(t, latex, `Cut build time by 40\%`)
	assert.True(t, strings.HasSuffix(latex, "\\end{document}\n"))
}

func TestRenderCommand_StdoutFromStdin(t *testing.T) {
	useTempStore(t)

	output, err := executeCommand(t, sampleResumeJSON, "render", "-", "--stdout")
	require.NoError(t, err)

	assert.Contains(t, output, `\documentclass`)
	assert.Contains(t, output, "Jane Doe")
}

func TestRenderCommand_YAMLInput(t *testing.T) {
	dir := useTempStore(t)
	input := writeFile(t, dir, "resume.yaml", sampleResumeYAML)

	output, err := executeCommand(t, "", "render", input, "--stdout")
	require.NoError(t, err)

	assert.Contains(t, output, "John Roe")
	assert.Contains(t, output, "Tech Institute")
}

func TestRenderCommand_HighlightStdout(t *testing.T) {
	useTempStore(t)

	output, err := executeCommand(t, sampleResumeJSON, "render", "-", "--stdout", "--highlight")
	require.NoError(t, err)

	assert.Contains(t, output, `<span class="latex-command">\documentclass</span>`)
	assert.Contains(t, output, `\&amp;`)
}

func TestRenderCommand_HighlightFile(t *testing.T) {
	dir := useTempStore(t)
	input := writeFile(t, dir, "resume.json", sampleResumeJSON)

	_, err := executeCommand(t, "", "render", input, "--out", dir, "--highlight", "--name", "cv")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "cv.tex"))
	html, err := os.ReadFile(filepath.Join(dir, "cv.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `class="latex-brace"`)
}

func TestRenderCommand_MultipleInputs(t *testing.T) {
	dir := useTempStore(t)
	first := writeFile(t, dir, "a.json", sampleResumeJSON)
	second := writeFile(t, dir, "b.json", sampleResumeJSON)
	third := writeFile(t, dir, "c.yaml", sampleResumeYAML)
	outDir := filepath.Join(dir, "out")

	output, err := executeCommand(t, "", "render", first, second, third, "--out", outDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "jane-doe.tex"))
	assert.FileExists(t, filepath.Join(outDir, "jane-doe-2.tex"))
	assert.FileExists(t, filepath.Join(outDir, "john-roe.tex"))

	// Results are reported in argument order
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], first)
	assert.Contains(t, lines[1], second)
	assert.Contains(t, lines[2], third)
}

func TestRenderCommand_OneBadInputFailsBatch(t *testing.T) {
	dir := useTempStore(t)
	good := writeFile(t, dir, "a.json", sampleResumeJSON)
	bad := writeFile(t, dir, "b.json", "{not json")

	_, err := executeCommand(t, "", "render", good, bad, "--out", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.json")
	assert.NoFileExists(t, filepath.Join(dir, "out", "jane-doe.tex"))
}

func TestRenderCommand_Template(t *testing.T) {
	dir := useTempStore(t)
	input := writeFile(t, dir, "resume.json", sampleResumeJSON)
	tmpl := writeFile(t, dir, "layout.tex", `{{.Preamble}}{{.Header}}{{.Skills}}{{.Closing}}`)

	output, err := executeCommand(t, "", "render", input, "--stdout", "--template", tmpl)
	require.NoError(t, err)

	assert.Contains(t, output, "Jane Doe")
	assert.NotContains(t, output, "Acme")
}

func TestRenderCommand_Verbose(t *testing.T) {
	useTempStore(t)

	output, err := executeCommand(t, sampleResumeJSON, "render", "-", "--stdout", "-v")
	require.NoError(t, err)

	assert.Contains(t, output, "RENDERED LATEX")
	assert.Contains(t, output, "header, education, experience, skills")
}

func TestRenderCommand_FlagErrors(t *testing.T) {
	dir := useTempStore(t)
	input := writeFile(t, dir, "resume.json", sampleResumeJSON)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no inputs", []string{"render"}, "at least one resume file is required"},
		{"stdout with two inputs", []string{"render", input, input, "--stdout"}, "--stdout accepts a single input"},
		{"name with two inputs", []string{"render", input, input, "--name", "x"}, "--name accepts a single input"},
		{"draft with inputs", []string{"render", input, "--draft"}, "--draft cannot be combined"},
		{"stdin twice", []string{"render", "-", "-"}, "stdin (-) can only be read once"},
		{"missing file", []string{"render", filepath.Join(dir, "missing.json")}, "failed to read resume file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	dir := useTempStore(t)
	input := writeFile(t, dir, "resume.json", sampleResumeJSON)
	outDir := filepath.Join(dir, "from-config")
	cfgPath := writeFile(t, dir, "config.json", `{"output_dir": "`+filepath.ToSlash(outDir)+`", "file_name": "configured"}`)

	_, err := executeCommand(t, "", "render", input, "--config", cfgPath)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "configured.tex"))
}

func TestRenderCommand_Binary(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "resume.json", sampleResumeJSON)

	cmd := exec.Command(binaryPath, "render", input, "--stdout")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), `\end{document}`)
}
