package export

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadFile_WritesTeX(t *testing.T) {
	dir := t.TempDir()
	content := "\\documentclass{article}\n\\end{document}\n"

	path, err := DownloadFile(dir, content, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jane-doe.tex"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestDownloadFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := DownloadFile(dir, "a", "resume")
	require.NoError(t, err)
	_, err = DownloadFile(dir, "b", "resume")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "resume.tex", entries[0].Name())

	got, err := os.ReadFile(filepath.Join(dir, "resume.tex"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}

func TestDownloadFile_EmptyName(t *testing.T) {
	_, err := DownloadFile(t.TempDir(), "x", "")
	assert.True(t, errors.Is(err, ErrEmptyFileName))
}

func TestDownloadFile_RejectsPath(t *testing.T) {
	_, err := DownloadFile(t.TempDir(), "x", "../escape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not contain a path")
}

func TestDownloadFile_MissingDirectory(t *testing.T) {
	_, err := DownloadFile(filepath.Join(t.TempDir(), "nope"), "x", "resume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create temp file")
}

func TestServeDownload(t *testing.T) {
	rec := httptest.NewRecorder()
	ServeDownload(rec, `\section{A}`, "jane-doe")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="jane-doe.tex"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, `\section{A}`, rec.Body.String())
}

func TestServeDownload_DefaultName(t *testing.T) {
	rec := httptest.NewRecorder()
	ServeDownload(rec, "", "")

	assert.Equal(t, `attachment; filename="resume.tex"`, rec.Header().Get("Content-Disposition"))
	assert.Empty(t, rec.Body.String())
}

func TestDeriveBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane-doe"},
		{"  Jane   Q.  Doe ", "-jane-q-doe-"},
		{"José Álvarez", "jos-lvarez"},
		{"O'Brien-Smith", "obrien-smith"},
		{"", "resume"},
		{"!!!", "resume"},
		{"李", "resume"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveBaseName(tt.in))
		})
	}
}

func TestExportFileName(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "resume-data-2025-03-07.json", ExportFileName(ts))
}
