package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldLabels maps JSON field paths to the names shown in validation messages.
var fieldLabels = map[string]string{
	"personalInfo.fullName":                "Full name",
	"personalInfo.phone":                   "Phone",
	"personalInfo.email":                   "Email",
	"education.universityName":             "University name",
	"education.degree":                     "Degree",
	"education.expectedGraduation":         "Expected graduation",
	"education.location":                   "Location",
	"technicalSkills.programmingLanguages": "Programming languages",
	"technicalSkills.developerTools":       "Developer tools",
	"technicalSkills.librariesFrameworks":  "Libraries/frameworks",
}

// FieldError is a single failed check on a resume field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("resume validation failed:")
	for _, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  - %s: %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// Fields returns the failing field paths in report order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		fields[i] = fe.Field
	}
	return fields
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return validate
}

// Validate reports the fields a user must fill in before exporting the document.
// Rendering does not depend on it: an invalid resume still renders.
func (r *ResumeData) Validate() error {
	err := newValidator().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	result := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "ResumeData.")
		label, ok := fieldLabels[field]
		if !ok {
			label = fe.Field()
		}

		message := label + " is required"
		if fe.Tag() == "email" {
			message = "Invalid email format"
		}
		result.Errors = append(result.Errors, FieldError{Field: field, Message: message})
	}
	return result
}
