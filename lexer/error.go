package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

// Position is a location in the source text.
// Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

func positionAt(src string, offset int) Position {
	p := Position{Offset: offset, Line: 1, Column: 1}
	for _, r := range src[:offset] {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}

// Kind classifies a [SyntaxError].
type Kind int

const (
	// KindLiteral: a mandatory literal such as "=" or ";" was absent.
	KindLiteral Kind = iota + 1
	// KindName: a binder position held no identifier.
	KindName
	// KindGrammar: no alternative of a grammar alternation matched.
	KindGrammar
	// KindNumber: a '#' literal was not an unsigned 32-bit decimal.
	KindNumber
	// KindOperator: an unknown operator token under strict operator parsing.
	KindOperator
	// KindDefinition: input remained where a rule was expected.
	KindDefinition
)

var kindNames = map[Kind]string{
	KindLiteral:    "literal",
	KindName:       "name",
	KindGrammar:    "grammar",
	KindNumber:     "number",
	KindOperator:   "operator",
	KindDefinition: "definition",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SyntaxError reports what the parser expected and where.
type SyntaxError struct {
	Kind     Kind
	Expected string // what was expected, e.g. `"="`, "name", "Term"
	Found    string // a short excerpt of the input at Pos, or "end of input"
	Pos      Position
	Source   string // the full source, kept for Highlight
	Cause    error  // the inner error of a malformed definition, if any
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error at %s: expected %s", e.Pos, e.Expected)
	if e.Found != "" {
		msg += ", found " + e.Found
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

// Innermost follows the Cause chain and returns the deepest SyntaxError,
// which points at the token that actually broke the parse.
func (e *SyntaxError) Innermost() *SyntaxError {
	inner := e
	for {
		next, ok := inner.Cause.(*SyntaxError)
		if !ok {
			return inner
		}
		inner = next
	}
}

// Highlight renders the source line holding the error with a caret under
// the offending column:
//
//	1 | (Foo = bar
//	  |      ^
func (e *SyntaxError) Highlight() string {
	line := sourceLine(e.Source, e.Pos.Line)
	gutter := fmt.Sprintf("%d", e.Pos.Line)
	pad := strings.Repeat(" ", len(gutter))

	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s\n", gutter, line)
	fmt.Fprintf(&b, "%s | %s^", pad, caretIndent(line, e.Pos.Column))
	return b.String()
}

// Errorf builds a SyntaxError of the given kind anchored at the first
// significant input after c.
func (c Cursor) Errorf(kind Kind, format string, args ...any) *SyntaxError {
	s := c.Skip()
	return &SyntaxError{
		Kind:     kind,
		Expected: fmt.Sprintf(format, args...),
		Found:    near(s.Rest()),
		Pos:      s.Position(),
		Source:   c.src,
	}
}

// near quotes the token-ish prefix of rest for error messages.
func near(rest string) string {
	if rest == "" {
		return "end of input"
	}
	const maxRunes = 12
	n := 0
	end := len(rest)
	for i, r := range rest {
		if n == maxRunes || (n > 0 && unicode.IsSpace(r)) {
			end = i
			break
		}
		n++
	}
	return fmt.Sprintf("%q", rest[:end])
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

// caretIndent keeps tabs so the caret lines up under tab-indented source.
func caretIndent(line string, column int) string {
	var b strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		i++
	}
	if i < column {
		b.WriteString(strings.Repeat(" ", column-i))
	}
	return b.String()
}
