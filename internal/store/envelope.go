package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-latex/internal/schemas"
	"github.com/jonathan/resume-latex/internal/types"
)

// EnvelopeVersion is written into every export.
const EnvelopeVersion = "1.0"

// ErrInvalidExport is returned when an import file is not a résumé export.
var ErrInvalidExport = errors.New("invalid resume data file")

// Envelope wraps a draft for export to a standalone JSON file.
type Envelope struct {
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Data      types.ResumeData `json:"data"`
}

// MarshalEnvelope wraps data with the current version and the given timestamp.
func MarshalEnvelope(data types.ResumeData, at time.Time) ([]byte, error) {
	env := Envelope{
		Version:   EnvelopeVersion,
		Timestamp: at.UTC(),
		Data:      data,
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return b, nil
}

// UnmarshalEnvelope parses an export file. Documents failing the export schema
// or lacking data.personalInfo are rejected with ErrInvalidExport.
func UnmarshalEnvelope(content []byte) (*Envelope, error) {
	if !json.Valid(content) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidExport)
	}

	if err := schemas.ValidateResumeExport(string(content)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}

	var env Envelope
	if err := json.Unmarshal(content, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	return &env, nil
}
