package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleResumeJSON = `{
  "personalInfo": {
    "fullName": "Jane Doe",
    "phone": "555-0100",
    "email": "jane@example.com",
    "linkedinUrl": "https://linkedin.com/in/janedoe",
    "githubUrl": "https://github.com/janedoe",
    "portfolioUrl": ""
  },
  "education": {
    "universityName": "State University",
    "degree": "B.S. Computer Science",
    "expectedGraduation": "May 2026",
    "location": "Springfield, IL",
    "relevantCourses": "",
    "honors": ""
  },
  "workExperience": [
    {
      "companyName": "Acme & Co",
      "position": "Software Intern",
      "startDate": "Jun 2024",
      "endDate": "Present",
      "location": "Remote",
      "achievements": ["Cut build time by 40%", ""]
    }
  ],
  "projects": [],
  "leadership": [],
  "technicalSkills": {
    "programmingLanguages": "Go, Python",
    "developerTools": "Git, Docker",
    "librariesFrameworks": "React"
  }
}`

const sampleResumeYAML = `personalInfo:
  fullName: John Roe
  phone: 555-0101
  email: john@example.com
education:
  universityName: Tech Institute
  degree: M.S. Data Science
  expectedGraduation: Dec 2025
  location: Boston, MA
technicalSkills:
  programmingLanguages: R
  developerTools: Jupyter
  librariesFrameworks: pandas
`

// useTempStore points the draft store at a fresh SQLite file and clears
// environment that would otherwise leak in from .env.
func useTempStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RESUME_STORE_DRIVER", "sqlite")
	t.Setenv("RESUME_STORE_DSN", filepath.Join(dir, "draft.db"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RESUME_TEMPLATE", "")
	t.Setenv("RESUME_OUTPUT_DIR", "")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// executeCommand runs the CLI in-process and returns everything it printed.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// getBinaryPath returns the path to the resume_latex binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_latex"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_latex ./cmd/resume_latex'", binaryPath)
	}

	return binaryPath
}
