// Package lexer implements the input cursor and the primitive matchers that
// the Lambolt grammar is built from.
//
// A [Cursor] is an immutable value: the full source text plus a byte offset.
// Every matcher takes a Cursor and returns a new one; a matcher that does not
// match hands back its input Cursor untouched, so callers can retry another
// alternative from the same place without undoing anything.
//
// Design notes:
//   - Insignificant input (spaces, tabs, carriage returns, newlines and
//     // line comments) is skipped by each matcher before it looks at the
//     input, never after.
//   - Identifiers are runs of ASCII letters, digits, '_' and '.'.
//   - Positions are reported 1-based; columns count runes, not bytes, so the
//     two-byte 'λ' occupies a single column.
package lexer

import (
	"strings"
	"unicode/utf8"
)

// Cursor marks how much of the source has been consumed.
// The zero value is a cursor over empty input.
type Cursor struct {
	src string // the full source text
	pos int    // byte offset of the first unconsumed byte
}

// New returns a Cursor positioned at the start of src.
func New(src string) Cursor {
	return Cursor{src: src}
}

// Source returns the full text the cursor walks over.
func (c Cursor) Source() string { return c.src }

// Offset returns the byte offset of the first unconsumed byte.
func (c Cursor) Offset() int { return c.pos }

// Rest returns the unconsumed input, including leading whitespace.
func (c Cursor) Rest() string { return c.src[c.pos:] }

// Position returns the line and column of the cursor.
func (c Cursor) Position() Position {
	return positionAt(c.src, c.pos)
}

// Skip returns a cursor past any whitespace and line comments.
func (c Cursor) Skip() Cursor {
	pos := c.pos
	for pos < len(c.src) {
		switch c.src[pos] {
		case ' ', '\t', '\r', '\n':
			pos++
		case '/':
			// A second '/' opens a line comment; a lone '/' is the DIV operator.
			if pos+1 < len(c.src) && c.src[pos+1] == '/' {
				for pos < len(c.src) && c.src[pos] != '\n' {
					pos++
				}
			} else {
				return Cursor{src: c.src, pos: pos}
			}
		default:
			return Cursor{src: c.src, pos: pos}
		}
	}
	return Cursor{src: c.src, pos: pos}
}

// Match reports whether the significant input starts with lit. On a match it
// returns the cursor just past lit; otherwise it returns c unchanged.
// The empty literal always matches.
func (c Cursor) Match(lit string) (Cursor, bool) {
	s := c.Skip()
	if !strings.HasPrefix(s.Rest(), lit) {
		return c, false
	}
	return Cursor{src: c.src, pos: s.pos + len(lit)}, true
}

// Consume is Match for literals the grammar cannot do without: a missing lit
// is a [KindLiteral] syntax error at the position where it was expected.
func (c Cursor) Consume(lit string) (Cursor, error) {
	next, ok := c.Match(lit)
	if !ok {
		return c, c.Errorf(KindLiteral, "%q", lit)
	}
	return next, nil
}

// Keyword is Match for a word that must stand alone: the input after word
// may not continue the identifier, so "let" matches in "let x" and "let)"
// but not in "letter" or "let.x".
func (c Cursor) Keyword(word string) (Cursor, bool) {
	next, ok := c.Match(word)
	if !ok || word == "" {
		return c, false
	}
	if next.pos < len(c.src) && isNameChar(c.src[next.pos]) {
		return c, false
	}
	return next, true
}

// Name lexes the longest run of identifier characters after any skipped
// input. When there is none it returns c unchanged and the empty string.
func (c Cursor) Name() (Cursor, string) {
	s := c.Skip()
	end := s.pos
	for end < len(c.src) && isNameChar(c.src[end]) {
		end++
	}
	if end == s.pos {
		return c, ""
	}
	return Cursor{src: c.src, pos: end}, c.src[s.pos:end]
}

// Name1 is Name for binder positions: an empty identifier is a [KindName]
// syntax error.
func (c Cursor) Name1() (Cursor, string, error) {
	next, name := c.Name()
	if name == "" {
		return c, "", c.Errorf(KindName, "name")
	}
	return next, name, nil
}

// Done reports whether only insignificant input remains.
func (c Cursor) Done() bool {
	return c.Skip().pos >= len(c.src)
}

// Peek returns the next significant rune without consuming it.
// ok is false at the end of input.
func (c Cursor) Peek() (r rune, ok bool) {
	s := c.Skip()
	if s.pos >= len(c.src) {
		return 0, false
	}
	r, _ = utf8.DecodeRuneInString(c.src[s.pos:])
	return r, true
}

// Char consumes the next significant rune. At the end of input it returns c
// unchanged and ok is false.
func (c Cursor) Char() (next Cursor, r rune, ok bool) {
	s := c.Skip()
	if s.pos >= len(c.src) {
		return c, 0, false
	}
	r, size := utf8.DecodeRuneInString(c.src[s.pos:])
	return Cursor{src: c.src, pos: s.pos + size}, r, true
}

// IsNameRune reports whether r may appear in an identifier.
func IsNameRune(r rune) bool {
	return r < utf8.RuneSelf && isNameChar(byte(r))
}

// isNameChar reports whether b is an identifier byte: [a-zA-Z0-9_.]
func isNameChar(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '_' || b == '.'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
