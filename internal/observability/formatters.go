// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-latex/internal/rendering"
	"github.com/jonathan/resume-latex/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// RenderResult describes one finished render for PrintRenderSummary.
type RenderResult struct {
	Source   string // Input file, or "" for stdin/store
	Output   string // Written file, or "" when printed to stdout
	Bytes    int
	Duration time.Duration
}

// PrintResumeData outputs a short overview of the entries in a resume draft.
func (p *Printer) PrintResumeData(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:      %s\n", orDash(data.PersonalInfo.FullName)))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", orDash(data.PersonalInfo.Email)))
	sb.WriteString(fmt.Sprintf("School:    %s\n", orDash(data.Education.UniversityName)))
	sb.WriteString("\n")

	if len(data.WorkExperience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(data.WorkExperience)))
		count := min(len(data.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := data.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s (%d bullets)\n",
				orDash(exp.Position), orDash(exp.CompanyName), len(rendering.FilterBullets(exp.Achievements))))
		}
		if len(data.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.WorkExperience)-maxItemsToShow))
		}
	}

	if len(data.Projects) > 0 {
		sb.WriteString(fmt.Sprintf("Projects (%d):\n", len(data.Projects)))
		count := min(len(data.Projects), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", orDash(data.Projects[i].Name)))
		}
		if len(data.Projects) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Projects)-maxItemsToShow))
		}
	}

	if len(data.Leadership) > 0 {
		sb.WriteString(fmt.Sprintf("Leadership (%d):\n", len(data.Leadership)))
		count := min(len(data.Leadership), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := data.Leadership[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", orDash(entry.Role), orDash(entry.OrganizationName)))
		}
		if len(data.Leadership) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Leadership)-maxItemsToShow))
		}
	}

	p.printBox("RESUME DRAFT", sb.String())
}

// PrintRenderSummary outputs the sections emitted for data and where the document went.
func (p *Printer) PrintRenderSummary(data *types.ResumeData, result RenderResult) {
	if data == nil {
		return
	}

	var sb strings.Builder

	if result.Source != "" {
		sb.WriteString(fmt.Sprintf("Input:     %s\n", result.Source))
	}
	output := result.Output
	if output == "" {
		output = "stdout"
	}
	sb.WriteString(fmt.Sprintf("Output:    %s\n", output))
	sb.WriteString(fmt.Sprintf("Size:      %d bytes\n", result.Bytes))
	if result.Duration > 0 {
		sb.WriteString(fmt.Sprintf("Duration:  %v\n", result.Duration.Round(time.Microsecond)))
	}
	sb.WriteString(fmt.Sprintf("Sections:  %s\n", strings.Join(rendering.SectionsOf(*data), ", ")))

	p.printBox("RENDERED LATEX", sb.String())
}

// PrintValidation outputs the fields that still need attention, or a pass line.
func (p *Printer) PrintValidation(verr *types.ValidationError) {
	var sb strings.Builder

	if verr == nil || len(verr.Errors) == 0 {
		sb.WriteString("✓ All required fields are filled in\n")
	} else {
		sb.WriteString(fmt.Sprintf("%d field(s) need attention:\n", len(verr.Errors)))
		for _, fe := range verr.Errors {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", fe.Message))
			sb.WriteString(fmt.Sprintf("    (%s)\n", fe.Field))
		}
	}

	p.printBox("VALIDATION", sb.String())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
