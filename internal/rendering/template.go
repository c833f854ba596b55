package rendering

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-latex/internal/types"
)

// RenderTemplate renders data through a user-supplied LaTeX template instead of the built-in layout.
// The template receives the rendered Fragments (.Preamble, .Header, .Education, .Experience,
// .Projects, .Leadership, .Skills, .Closing), the raw .Data, and an "escape" function.
func RenderTemplate(data types.ResumeData, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	templateData := struct {
		Fragments
		Data types.ResumeData
	}{
		Fragments: RenderFragments(data),
		Data:      data,
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, templateData); err != nil {
		return "", &RenderError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Path:    templatePath,
				Message: "template file not found",
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Path:    templatePath,
			Message: "failed to read template file",
			Cause:   err,
		}
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape":  EscapeLaTeX,
		"bullets": FilterBullets,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Path:    templatePath,
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// DescribeFragments returns a short human-readable summary of which sections were rendered.
func DescribeFragments(data types.ResumeData) string {
	return fmt.Sprintf("%d sections: %s", len(SectionsOf(data)), strings.Join(SectionsOf(data), ", "))
}
