// Package export delivers a rendered LaTeX document to the user: clipboard, .tex files,
// HTTP downloads and a highlighted HTML preview.
package export

import (
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// CSS classes emitted by HighlightSyntax.
const (
	ClassComment  = "latex-comment"
	ClassCommand  = "latex-command"
	ClassBrace    = "latex-brace"
	ClassMath     = "latex-math"
	ClassOptional = "latex-optional"
)

var (
	commandPattern  = regexp.MustCompile(`^\\[a-zA-Z]+$`)
	optionalPattern = regexp.MustCompile(`\[[^\]]*\]`)
)

func span(class, text string) string {
	return `<span class="` + class + `">` + html.EscapeString(text) + `</span>`
}

// HighlightSyntax returns latex as HTML-escaped text with <span class="latex-…"> tags around
// comments, commands, braces, inline math and optional arguments.
// The result is for on-screen preview only and is never what gets copied or downloaded.
func HighlightSyntax(latex string) string {
	if latex == "" {
		return ""
	}

	lexer := lexers.Get("latex")
	if lexer == nil {
		return html.EscapeString(latex)
	}

	// The lexer only recognises comments terminated by a newline.
	source := latex
	addedNewline := !strings.HasSuffix(source, "\n")
	if addedNewline {
		source += "\n"
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return html.EscapeString(latex)
	}

	h := &highlighter{}
	for _, token := range iterator.Tokens() {
		h.write(token)
	}
	h.finish()

	result := h.out.String()
	if addedNewline {
		result = strings.TrimSuffix(result, "\n")
	}
	return result
}

// highlighter turns a TeX token stream into tagged HTML.
type highlighter struct {
	out strings.Builder

	// command is held back until the next token shows whether a * belongs to it.
	command string

	math   strings.Builder
	inMath bool

	// optional holds the tokens of a [ group whose ] has not been seen yet.
	optional []chroma.Token
}

func (h *highlighter) write(token chroma.Token) {
	if h.inMath {
		h.math.WriteString(token.Value)
		if token.Type == chroma.LiteralString && token.Value == "$" {
			h.out.WriteString(span(ClassMath, h.math.String()))
			h.math.Reset()
			h.inMath = false
		}
		return
	}

	if token.Type == chroma.Keyword && token.Value == "*" && h.command != "" {
		h.out.WriteString(span(ClassCommand, h.command+"*"))
		h.command = ""
		return
	}
	h.flushCommand()

	for h.optional != nil {
		if h.continueOptional(token) {
			return
		}
		h.abortOptional()
	}

	switch {
	case token.Type == chroma.LiteralString && token.Value == "$":
		h.inMath = true
		h.math.WriteString(token.Value)
	case token.Type == chroma.Comment:
		body := strings.TrimSuffix(token.Value, "\n")
		h.out.WriteString(span(ClassComment, body))
		if len(body) < len(token.Value) {
			h.out.WriteString("\n")
		}
	case token.Type == chroma.Keyword && commandPattern.MatchString(token.Value):
		h.command = token.Value
	case token.Type == chroma.NameBuiltin && (token.Value == "{" || token.Value == "}"):
		h.out.WriteString(span(ClassBrace, token.Value))
	case token.Type == chroma.NameAttribute:
		h.out.WriteString(span(ClassOptional, token.Value))
	case token.Type == chroma.Text:
		h.text(token.Value)
	default:
		h.out.WriteString(html.EscapeString(token.Value))
	}
}

func (h *highlighter) flushCommand() {
	if h.command != "" {
		h.out.WriteString(span(ClassCommand, h.command))
		h.command = ""
	}
}

// text tags complete [..] groups and starts collecting at a [ left open.
func (h *highlighter) text(s string) {
	last := 0
	for _, loc := range optionalPattern.FindAllStringIndex(s, -1) {
		h.out.WriteString(html.EscapeString(s[last:loc[0]]))
		h.out.WriteString(span(ClassOptional, s[loc[0]:loc[1]]))
		last = loc[1]
	}

	rest := s[last:]
	if i := strings.IndexByte(rest, '['); i >= 0 {
		h.out.WriteString(html.EscapeString(rest[:i]))
		h.optional = []chroma.Token{{Type: chroma.Text, Value: rest[i:]}}
		return
	}
	h.out.WriteString(html.EscapeString(rest))
}

// continueOptional extends an open [ group with text and braces, closing it at the first ].
func (h *highlighter) continueOptional(token chroma.Token) bool {
	switch token.Type {
	case chroma.Text:
		i := strings.IndexByte(token.Value, ']')
		if i < 0 {
			h.optional = append(h.optional, token)
			return true
		}
		var group strings.Builder
		for _, t := range h.optional {
			group.WriteString(t.Value)
		}
		group.WriteString(token.Value[:i+1])
		h.out.WriteString(span(ClassOptional, group.String()))
		h.optional = nil
		h.text(token.Value[i+1:])
		return true
	case chroma.NameBuiltin:
		h.optional = append(h.optional, token)
		return true
	}
	return false
}

// abortOptional emits the open [ as plain text and replays the tokens collected after it.
func (h *highlighter) abortOptional() {
	tokens := h.optional
	h.optional = nil
	h.out.WriteString(html.EscapeString(tokens[0].Value))
	for _, t := range tokens[1:] {
		h.write(t)
	}
}

func (h *highlighter) finish() {
	h.flushCommand()
	for h.optional != nil {
		h.abortOptional()
	}
	// An unterminated math span is shown as plain text.
	if h.inMath {
		h.out.WriteString(html.EscapeString(h.math.String()))
	}
}
