package rendering

import (
	_ "embed"
	"strings"

	"github.com/jonathan/resume-latex/internal/types"
)

// Preamble is the static document preamble: class, packages and the résumé macros.
// It ends with \begin{document} and contains no user data.
//
//go:embed templates/preamble.tex
var Preamble string

// Closing ends the document.
const Closing = "\n\n\\end{document}\n"

// Section names reported by SectionsOf.
const (
	SectionHeader     = "header"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionLeadership = "leadership"
	SectionSkills     = "skills"
)

// Fragments holds each rendered section of one document. Optional sections are "" when omitted.
type Fragments struct {
	Preamble   string
	Header     string
	Education  string
	Experience string
	Projects   string
	Leadership string
	Skills     string
	Closing    string
}

// RenderFragments renders every section of data.
func RenderFragments(data types.ResumeData) Fragments {
	return Fragments{
		Preamble:   Preamble,
		Header:     RenderHeader(data.PersonalInfo),
		Education:  RenderEducation(data.Education),
		Experience: RenderExperience(data.WorkExperience),
		Projects:   RenderProjects(data.Projects),
		Leadership: RenderLeadership(data.Leadership),
		Skills:     RenderSkills(data.TechnicalSkills),
		Closing:    Closing,
	}
}

// String concatenates the fragments in document order.
func (f Fragments) String() string {
	var sb strings.Builder
	for _, part := range []string{
		f.Preamble, f.Header, f.Education, f.Experience, f.Projects, f.Leadership, f.Skills, f.Closing,
	} {
		sb.WriteString(part)
	}
	return sb.String()
}

// AssembleDocument renders data into a complete LaTeX document.
// The result depends only on data: equal input gives byte-identical output.
func AssembleDocument(data types.ResumeData) string {
	return RenderFragments(data).String()
}

// SectionsOf lists, in order, the sections AssembleDocument emits for data.
func SectionsOf(data types.ResumeData) []string {
	sections := []string{SectionHeader, SectionEducation}
	if len(data.WorkExperience) > 0 {
		sections = append(sections, SectionExperience)
	}
	if len(data.Projects) > 0 {
		sections = append(sections, SectionProjects)
	}
	if len(data.Leadership) > 0 {
		sections = append(sections, SectionLeadership)
	}
	return append(sections, SectionSkills)
}
