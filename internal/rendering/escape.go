// Package rendering turns résumé data into a complete LaTeX document.
package rendering

import "strings"

// latexReplacements maps each LaTeX special character to the text that renders it literally.
var latexReplacements = map[byte]string{
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'%':  `\%`,
	'#':  `\#`,
	'^':  `\textasciicircum{}`,
	'_':  `\_`,
	'~':  `\textasciitilde{}`,
}

// EscapeLaTeX escapes special LaTeX characters in text.
// Special characters: \ { } $ & % # ^ _ ~
//
// The input is scanned once and replacement text is never rescanned, so the
// braces emitted for a backslash stay unescaped. Escaping is not idempotent.
// Every special character is ASCII, so other bytes (invalid UTF-8 included) are copied unchanged.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	for i := 0; i < len(text); i++ {
		b := text[i]
		if replacement, ok := latexReplacements[b]; ok {
			result.WriteString(replacement)
			continue
		}
		result.WriteByte(b)
	}

	return result.String()
}
