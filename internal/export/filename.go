package export

import (
	"regexp"
	"strings"
	"time"
)

// DefaultBaseName is used when a name yields no usable characters.
const DefaultBaseName = "resume"

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	unsafeFileChars = regexp.MustCompile(`[^a-z0-9-]`)
)

// DeriveBaseName turns a person's name into a download-safe base name,
// e.g. "Jane Doe" -> "jane-doe".
func DeriveBaseName(fullName string) string {
	name := strings.ToLower(fullName)
	name = whitespaceRun.ReplaceAllString(name, "-")
	name = unsafeFileChars.ReplaceAllString(name, "")
	if name == "" {
		return DefaultBaseName
	}
	return name
}

// ExportFileName names a data export taken at t.
func ExportFileName(t time.Time) string {
	return "resume-data-" + t.Format("2006-01-02") + ".json"
}
