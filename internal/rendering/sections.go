package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-latex/internal/types"
)

// Section markers are LaTeX comments that open each rendered section.
const (
	MarkerHeader     = "%----------HEADING----------"
	MarkerEducation  = "%-----------EDUCATION-----------"
	MarkerExperience = "%-----------EXPERIENCE-----------"
	MarkerProjects   = "%-----------PROJECTS-----------"
	MarkerLeadership = "%-----------LEADERSHIP-----------"
	MarkerSkills     = "%-----------TECHNICAL SKILLS-----------"
)

// linkSeparator separates links on a heading line.
const linkSeparator = ` $|$ `

// FilterBullets drops bullets that are empty or whitespace-only, keeping order.
func FilterBullets(bullets []string) []string {
	kept := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if strings.TrimSpace(b) != "" {
			kept = append(kept, b)
		}
	}
	return kept
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// escapeBullets filters blank bullets and escapes the rest.
func escapeBullets(bullets []string) []string {
	kept := FilterBullets(bullets)
	for i, b := range kept {
		kept[i] = EscapeLaTeX(b)
	}
	return kept
}

// writeItemList writes a \resumeItemListStart ... \resumeItemListEnd block of
// already-escaped items. An entry with no items still gets an (empty) list.
func writeItemList(sb *strings.Builder, indent string, items []string) {
	sb.WriteString(indent + `\resumeItemListStart` + "\n")
	for _, item := range items {
		sb.WriteString(indent + `  \resumeItem{` + item + "}\n")
	}
	sb.WriteString(indent + `\resumeItemListEnd`)
}

func href(url, label string) string {
	return `\href{` + EscapeLaTeX(url) + `}{` + label + `}`
}

func dateRange(start, end string) string {
	return EscapeLaTeX(start) + " -- " + EscapeLaTeX(end)
}

// RenderHeader renders the centered name and contact line.
// LinkedIn and GitHub are always linked; Portfolio only when set.
func RenderHeader(info types.PersonalInfo) string {
	var sb strings.Builder

	sb.WriteString("\n" + MarkerHeader + "\n")
	sb.WriteString(`\begin{center}` + "\n")
	sb.WriteString(`    \textbf{\Huge \scshape ` + EscapeLaTeX(info.FullName) + `} \\[8pt]` + "\n")

	email := EscapeLaTeX(info.Email)
	sb.WriteString(`    \small \faPhone\ ` + EscapeLaTeX(info.Phone) + linkSeparator +
		`\href{mailto:` + email + `}{\faEnvelope\ ` + email + `}` + linkSeparator + "\n")
	sb.WriteString(`    ` + href(info.LinkedInURL, `\faLinkedin\ LinkedIn`) + linkSeparator + "\n")
	sb.WriteString(`    ` + href(info.GitHubURL, `\faGithub\ GitHub`))
	if !isBlank(info.PortfolioURL) {
		sb.WriteString(linkSeparator + href(info.PortfolioURL, `\faBriefcase\ Portfolio`))
	}
	sb.WriteString("\n" + `\end{center}`)

	return sb.String()
}

// RenderEducation renders the single education entry. Minor, GPA, courses and
// honors only appear when they are non-blank.
func RenderEducation(edu types.Education) string {
	var sb strings.Builder

	degree := EscapeLaTeX(edu.Degree)
	if !isBlank(edu.Minor) {
		degree += ", Minor in " + EscapeLaTeX(edu.Minor)
	}
	if !isBlank(edu.GPA) {
		degree += " (GPA: " + EscapeLaTeX(edu.GPA) + ")"
	}

	sb.WriteString("\n" + MarkerEducation + "\n")
	sb.WriteString(`\section{Education}` + "\n")
	sb.WriteString(`  \resumeSubHeadingListStart` + "\n")
	sb.WriteString(`    \resumeSubheading` + "\n")
	sb.WriteString(fmt.Sprintf("      {%s}{%s}\n", EscapeLaTeX(edu.UniversityName), EscapeLaTeX(edu.Location)))
	sb.WriteString(fmt.Sprintf("      {%s}{%s}\n", degree, EscapeLaTeX(edu.ExpectedGraduation)))

	if !isBlank(edu.RelevantCourses) {
		writeItemList(&sb, "      ", []string{`\textbf{Relevant Courses:} ` + EscapeLaTeX(edu.RelevantCourses)})
		sb.WriteString("\n")
	}
	if !isBlank(edu.Honors) {
		writeItemList(&sb, "      ", []string{`\textbf{Honors/Achievements:} ` + EscapeLaTeX(edu.Honors)})
		sb.WriteString("\n")
	}
	sb.WriteString(`  \resumeSubHeadingListEnd`)

	return sb.String()
}

// RenderExperience renders the work experience section, or "" when there are no entries.
func RenderExperience(entries []types.WorkExperience) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n" + MarkerExperience + "\n")
	sb.WriteString(`\section{Experience}` + "\n")
	sb.WriteString(`  \resumeSubHeadingListStart` + "\n")

	for _, exp := range entries {
		sb.WriteString(`    \resumeSubheading` + "\n")
		sb.WriteString(fmt.Sprintf("      {%s}{%s}\n", EscapeLaTeX(exp.CompanyName), EscapeLaTeX(exp.Location)))
		sb.WriteString(fmt.Sprintf("      {%s}{%s}\n", EscapeLaTeX(exp.Position), dateRange(exp.StartDate, exp.EndDate)))
		writeItemList(&sb, "      ", escapeBullets(exp.Achievements))
		sb.WriteString("\n")
	}

	sb.WriteString(`  \resumeSubHeadingListEnd`)
	return sb.String()
}

// RenderProjects renders the projects section, or "" when there are no entries.
func RenderProjects(projects []types.Project) string {
	if len(projects) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n" + MarkerProjects + "\n")
	sb.WriteString(`\section{Projects}` + "\n")
	sb.WriteString(`    \resumeSubHeadingListStart` + "\n")

	for _, project := range projects {
		heading := `\textbf{` + EscapeLaTeX(project.Name) + `}`
		var links []string
		if !isBlank(project.WebsiteURL) {
			links = append(links, href(project.WebsiteURL, "Website"))
		}
		if !isBlank(project.SourceCodeURL) {
			links = append(links, href(project.SourceCodeURL, "Source"))
		}
		if len(links) > 0 {
			heading += linkSeparator + strings.Join(links, linkSeparator)
		}

		sb.WriteString(`      \resumeProjectHeading` + "\n")
		sb.WriteString(fmt.Sprintf("          {%s}{%s}\n", heading, EscapeLaTeX(project.Technologies)))
		writeItemList(&sb, "          ", escapeBullets(project.Description))
		sb.WriteString("\n")
	}

	sb.WriteString(`    \resumeSubHeadingListEnd`)
	return sb.String()
}

// RenderLeadership renders the leadership section, or "" when there are no entries.
// Each non-blank URL becomes a generic "Link" on the organization line.
func RenderLeadership(entries []types.Leadership) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n" + MarkerLeadership + "\n")
	sb.WriteString(`\section{Leadership \& Extracurricular Activities}` + "\n")
	sb.WriteString(`    \resumeSubHeadingListStart` + "\n")

	for _, lead := range entries {
		heading := EscapeLaTeX(lead.OrganizationName)
		for _, url := range FilterBullets(lead.URLs) {
			heading += linkSeparator + href(url, "Link")
		}

		sb.WriteString(`      \resumeSubheading` + "\n")
		sb.WriteString(fmt.Sprintf("        {%s}{%s}\n", heading, dateRange(lead.StartDate, lead.EndDate)))
		sb.WriteString(fmt.Sprintf("        {%s}{}\n", EscapeLaTeX(lead.Role)))
		writeItemList(&sb, "        ", escapeBullets(lead.Achievements))
		sb.WriteString("\n")
	}

	sb.WriteString(`    \resumeSubHeadingListEnd`)
	return sb.String()
}

// RenderSkills renders the three skill lines. Empty values keep their label.
func RenderSkills(skills types.TechnicalSkills) string {
	var sb strings.Builder

	sb.WriteString("\n" + MarkerSkills + "\n")
	sb.WriteString(`\section{Technical Skills}` + "\n")
	sb.WriteString(` \begin{itemize}[leftmargin=0.15in, label={}]` + "\n")
	sb.WriteString(`    \small{\item{` + "\n")
	sb.WriteString(`     \textbf{Programming Languages}{: ` + EscapeLaTeX(skills.ProgrammingLanguages) + `} \\` + "\n")
	sb.WriteString(`     \textbf{Developer Tools}{: ` + EscapeLaTeX(skills.DeveloperTools) + `} \\` + "\n")
	sb.WriteString(`     \textbf{Libraries/Frameworks}{: ` + EscapeLaTeX(skills.LibrariesFrameworks) + `}` + "\n")
	sb.WriteString(`    }}` + "\n")
	sb.WriteString(` \end{itemize}`)

	return sb.String()
}
