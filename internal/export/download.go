package export

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// TeXExtension is appended to every downloaded file name.
const TeXExtension = ".tex"

// ErrEmptyFileName is returned when no base name is given for a download.
var ErrEmptyFileName = errors.New("file name must not be empty")

// DownloadFile saves content as <filename>.tex inside dir and returns the written path.
// The data goes to a temporary file first, which is always closed and removed before
// returning, and is renamed into place only once fully written.
func DownloadFile(dir, content, filename string) (string, error) {
	if filename == "" {
		return "", ErrEmptyFileName
	}
	if filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid file name %q: must not contain a path", filename)
	}
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, filename+TeXExtension)

	tmp, err := os.CreateTemp(dir, filename+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(content); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}
	return path, nil
}

// ServeDownload writes content as a plain-text attachment named <filename>.tex.
func ServeDownload(w http.ResponseWriter, content, filename string) {
	if filename == "" {
		filename = DefaultBaseName
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+TeXExtension))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}
