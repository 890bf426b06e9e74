// Package render formats parse diagnostics for a terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kindelia-archive/Lambolt/lexer"
)

// Colors
var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorOK    = lipgloss.Color("#10B981")
	colorPath  = lipgloss.Color("#F9FAFB")
)

// Renderer styles diagnostics for one output stream. Colors are dropped
// automatically when the stream is not a terminal.
type Renderer struct {
	path   lipgloss.Style
	label  lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
	note   lipgloss.Style
	ok     lipgloss.Style
}

// New returns a Renderer for w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		path:   r.NewStyle().Bold(true).Foreground(colorPath),
		label:  r.NewStyle().Bold(true).Foreground(colorError),
		gutter: r.NewStyle().Foreground(colorMuted),
		caret:  r.NewStyle().Bold(true).Foreground(colorError),
		note:   r.NewStyle().Foreground(colorMuted).Italic(true),
		ok:     r.NewStyle().Foreground(colorOK),
	}
}

// Error renders err, found while reading file, as
//
//	file:line:col: error: expected X, found Y
//	 1 | source line
//	   |      ^
//	  note: while parsing definition at line 1, column 1
//
// The location is that of the innermost syntax error; each enclosing error
// adds a note. Errors that are not syntax errors render on one line.
func (r *Renderer) Error(file string, err error) string {
	var se *lexer.SyntaxError
	if !errors.As(err, &se) {
		return r.path.Render(file) + ": " + r.label.Render("error:") + " " + err.Error()
	}
	inner := se.Innermost()

	var b strings.Builder
	loc := fmt.Sprintf("%s:%d:%d", file, inner.Pos.Line, inner.Pos.Column)
	b.WriteString(r.path.Render(loc))
	b.WriteString(": ")
	b.WriteString(r.label.Render("error:"))
	b.WriteString(" " + describe(inner))
	b.WriteString("\n")

	lines := strings.Split(inner.Highlight(), "\n")
	for i, line := range lines {
		bar := strings.Index(line, "|")
		if bar < 0 {
			b.WriteString(line + "\n")
			continue
		}
		b.WriteString(r.gutter.Render(line[:bar+1]))
		rest := line[bar+1:]
		if i == len(lines)-1 {
			rest = strings.Replace(rest, "^", r.caret.Render("^"), 1)
		}
		b.WriteString(rest + "\n")
	}

	for e := se; e != nil && e != inner; {
		note := fmt.Sprintf("  note: while parsing %s at %s", e.Expected, e.Pos)
		b.WriteString(r.note.Render(note) + "\n")
		next, ok := e.Cause.(*lexer.SyntaxError)
		if !ok {
			break
		}
		e = next
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// OK renders the success line printed by `lambolt check`.
func (r *Renderer) OK(file string, rules int) string {
	noun := "rules"
	if rules == 1 {
		noun = "rule"
	}
	return r.path.Render(file) + ": " + r.ok.Render(fmt.Sprintf("ok (%d %s)", rules, noun))
}

func describe(se *lexer.SyntaxError) string {
	s := "expected " + se.Expected
	if se.Found != "" {
		s += ", found " + se.Found
	}
	return s
}
