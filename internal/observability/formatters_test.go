package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-latex/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com"},
		Education:    types.Education{UniversityName: "State University"},
		WorkExperience: []types.WorkExperience{
			{CompanyName: "Acme", Position: "Engineer", Achievements: []string{"Shipped it", "  ", "Fixed it"}},
		},
		Projects: []types.Project{{Name: "Widget"}},
	}
}

func TestPrintResumeData(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeData(sampleResume())
	output := buf.String()

	assert.Contains(t, output, "RESUME DRAFT")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "State University")
	assert.Contains(t, output, "Experience (1):")
	assert.Contains(t, output, "Engineer, Acme (2 bullets)")
	assert.Contains(t, output, "Projects (1):")
	assert.NotContains(t, output, "Leadership")
}

func TestPrintResumeData_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeData(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResumeData_TruncatesLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data := &types.ResumeData{}
	for i := 0; i < 8; i++ {
		data.Leadership = append(data.Leadership, types.Leadership{
			Role:             "Lead",
			OrganizationName: fmt.Sprintf("Club %d", i),
		})
	}

	p.PrintResumeData(data)
	output := buf.String()

	assert.Contains(t, output, "Club 4")
	assert.NotContains(t, output, "Club 5")
	assert.Contains(t, output, "... and 3 more")
	assert.Contains(t, output, "Name:      -")
}

func TestPrintRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRenderSummary(sampleResume(), RenderResult{
		Source:   "resume.yaml",
		Output:   "out/jane-doe.tex",
		Bytes:    4096,
		Duration: 1500 * time.Microsecond,
	})
	output := buf.String()

	assert.Contains(t, output, "RENDERED LATEX")
	assert.Contains(t, output, "resume.yaml")
	assert.Contains(t, output, "out/jane-doe.tex")
	assert.Contains(t, output, "4096 bytes")
	assert.Contains(t, output, "1.5ms")
	assert.Contains(t, output, "header, education, experience, projects, skills")
}

func TestPrintRenderSummary_Stdout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRenderSummary(&types.ResumeData{}, RenderResult{Bytes: 10})
	output := buf.String()

	assert.Contains(t, output, "stdout")
	assert.NotContains(t, output, "Input:")
	assert.NotContains(t, output, "Duration:")
}

func TestPrintValidation_WithErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(&types.ValidationError{Errors: []types.FieldError{
		{Field: "personalInfo.fullName", Message: "Full name is required"},
		{Field: "personalInfo.email", Message: "Invalid email format"},
	}})
	output := buf.String()

	assert.Contains(t, output, "VALIDATION")
	assert.Contains(t, output, "2 field(s) need attention")
	assert.Contains(t, output, "Full name is required")
	assert.Contains(t, output, "(personalInfo.email)")
}

func TestPrintValidation_NoErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(nil)

	assert.Contains(t, buf.String(), "All required fields are filled in")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
	assert.Contains(t, output, "...")
	assert.NotContains(t, output, strings.Repeat("é", boxWidth))
}
