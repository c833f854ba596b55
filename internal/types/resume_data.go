// Package types provides type definitions for structured data used throughout the resume generator.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds the contact block shown at the top of the resume.
type PersonalInfo struct {
	FullName     string `json:"fullName" yaml:"fullName" validate:"notblank"`
	Phone        string `json:"phone" yaml:"phone" validate:"notblank"`
	Email        string `json:"email" yaml:"email" validate:"notblank,email"`
	Location     string `json:"location,omitempty" yaml:"location,omitempty"`
	LinkedInURL  string `json:"linkedinUrl" yaml:"linkedinUrl"`
	GitHubURL    string `json:"githubUrl" yaml:"githubUrl"`
	PortfolioURL string `json:"portfolioUrl" yaml:"portfolioUrl"`
}

// Education is the single education entry of a resume.
type Education struct {
	UniversityName     string `json:"universityName" yaml:"universityName" validate:"notblank"`
	Degree             string `json:"degree" yaml:"degree" validate:"notblank"`
	Minor              string `json:"minor,omitempty" yaml:"minor,omitempty"`
	ExpectedGraduation string `json:"expectedGraduation" yaml:"expectedGraduation" validate:"notblank"`
	Location           string `json:"location" yaml:"location" validate:"notblank"`
	GPA                string `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	RelevantCourses    string `json:"relevantCourses" yaml:"relevantCourses"`
	Honors             string `json:"honors" yaml:"honors"`
}

// WorkExperience is one job. EndDate is free text, so "Present" is valid.
type WorkExperience struct {
	ID           string   `json:"id" yaml:"id"`
	CompanyName  string   `json:"companyName" yaml:"companyName"`
	Position     string   `json:"position" yaml:"position"`
	StartDate    string   `json:"startDate" yaml:"startDate"`
	EndDate      string   `json:"endDate" yaml:"endDate"`
	Location     string   `json:"location" yaml:"location"`
	Achievements []string `json:"achievements" yaml:"achievements"`
}

// Project is one entry of the projects section.
type Project struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	WebsiteURL    string   `json:"websiteUrl,omitempty" yaml:"websiteUrl,omitempty"`
	SourceCodeURL string   `json:"sourceCodeUrl,omitempty" yaml:"sourceCodeUrl,omitempty"`
	Technologies  string   `json:"technologies" yaml:"technologies"`
	Description   []string `json:"description" yaml:"description"`
}

// Leadership is one leadership or extracurricular activity.
type Leadership struct {
	ID               string   `json:"id" yaml:"id"`
	OrganizationName string   `json:"organizationName" yaml:"organizationName"`
	Role             string   `json:"role" yaml:"role"`
	StartDate        string   `json:"startDate" yaml:"startDate"`
	EndDate          string   `json:"endDate" yaml:"endDate"`
	URLs             []string `json:"urls" yaml:"urls"`
	Achievements     []string `json:"achievements" yaml:"achievements"`
}

// TechnicalSkills holds the three free-text skill lines.
type TechnicalSkills struct {
	ProgrammingLanguages string `json:"programmingLanguages" yaml:"programmingLanguages" validate:"notblank"`
	DeveloperTools       string `json:"developerTools" yaml:"developerTools" validate:"notblank"`
	LibrariesFrameworks  string `json:"librariesFrameworks" yaml:"librariesFrameworks" validate:"notblank"`
}

// ResumeData is the aggregate root handed to the renderer.
// Renderers only read it; the form/state layer owns every mutation.
type ResumeData struct {
	PersonalInfo    PersonalInfo     `json:"personalInfo" yaml:"personalInfo"`
	Education       Education        `json:"education" yaml:"education"`
	WorkExperience  []WorkExperience `json:"workExperience" yaml:"workExperience"`
	Projects        []Project        `json:"projects" yaml:"projects"`
	Leadership      []Leadership     `json:"leadership" yaml:"leadership"`
	TechnicalSkills TechnicalSkills  `json:"technicalSkills" yaml:"technicalSkills"`
}

// EmptyResumeData returns the value a draft is reset to.
func EmptyResumeData() ResumeData {
	return ResumeData{
		WorkExperience: []WorkExperience{},
		Projects:       []Project{},
		Leadership:     []Leadership{},
	}
}
