// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// ResumeExport is the schema for files produced by the data export command.
//
//go:embed resume_export.schema.json
var ResumeExport string
