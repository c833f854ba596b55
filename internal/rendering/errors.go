package rendering

import "fmt"

// TemplateError represents an error loading or parsing a LaTeX template
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("template error: %s: %s", e.Message, e.Path)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure while executing a template against résumé data
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
