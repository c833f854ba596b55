package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

// Format identifies the encoding of a resume draft on disk.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// MaxInputSize limits draft files read from disk.
const MaxInputSize = 1 << 20

// FormatFromPath infers the draft format from a file extension. Unknown extensions are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadResumeData reads a resume draft from a JSON or YAML file.
func LoadResumeData(path string) (*ResumeData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}
	data, err := ParseResumeData(content, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume file %s: %w", path, err)
	}
	return data, nil
}

// ParseResumeData decodes a resume draft. Missing fields decode as empty values.
func ParseResumeData(content []byte, format Format) (*ResumeData, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("resume data is empty")
	}
	if len(content) > MaxInputSize {
		return nil, fmt.Errorf("resume data exceeds maximum size: %d bytes (max %d)", len(content), MaxInputSize)
	}

	var data ResumeData
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
		}
	}
	return &data, nil
}

// NewEntryID returns an opaque identifier for a list entry.
func NewEntryID() string {
	return uuid.NewString()
}

// EnsureIDs returns a copy of data in which every list entry has an ID.
// Existing IDs are kept; the input is not modified.
func EnsureIDs(data ResumeData) ResumeData {
	out := data
	out.WorkExperience = make([]WorkExperience, len(data.WorkExperience))
	copy(out.WorkExperience, data.WorkExperience)
	out.Projects = make([]Project, len(data.Projects))
	copy(out.Projects, data.Projects)
	out.Leadership = make([]Leadership, len(data.Leadership))
	copy(out.Leadership, data.Leadership)

	for i := range out.WorkExperience {
		if out.WorkExperience[i].ID == "" {
			out.WorkExperience[i].ID = NewEntryID()
		}
	}
	for i := range out.Projects {
		if out.Projects[i].ID == "" {
			out.Projects[i].ID = NewEntryID()
		}
	}
	for i := range out.Leadership {
		if out.Leadership[i].ID == "" {
			out.Leadership[i].ID = NewEntryID()
		}
	}
	return out
}
