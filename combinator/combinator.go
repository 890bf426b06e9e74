// Package combinator is a small backtracking parser-combinator runtime over
// [lexer.Cursor] values.
//
// A [Parser] maps a Cursor to a [Result] that is in exactly one of three
// states:
//
//	hit   OK=true,  Err=nil  Value is set, Next is past the consumed input
//	miss  OK=false, Err=nil  nothing here; Next is the input cursor
//	fatal OK=false, Err!=nil the input is malformed; Next is the input cursor
//
// A miss lets an enclosing [Grammar] try its next alternative from the very
// same cursor. Because cursors are values, backtracking is just reusing the
// saved one; nothing has to be undone. A fatal result stops every enclosing
// combinator and travels up to the caller unchanged.
package combinator

import (
	"strconv"
	"strings"

	"github.com/kindelia-archive/Lambolt/lexer"
)

// Result is the outcome of running a Parser.
type Result[T any] struct {
	Next  lexer.Cursor
	Value T
	OK    bool
	Err   error
}

// Hit is a successful result ending at next.
func Hit[T any](next lexer.Cursor, v T) Result[T] {
	return Result[T]{Next: next, Value: v, OK: true}
}

// Miss is a clean no-match at c.
func Miss[T any](c lexer.Cursor) Result[T] {
	return Result[T]{Next: c}
}

// Fail is a fatal result at c.
func Fail[T any](c lexer.Cursor, err error) Result[T] {
	return Result[T]{Next: c, Err: err}
}

// Parser is one parsing step.
type Parser[T any] func(c lexer.Cursor) Result[T]

// Matcher recognises a fixed piece of input without producing a value.
// Label names it in error messages.
type Matcher struct {
	Label string
	Match func(c lexer.Cursor) (lexer.Cursor, bool)
}

// Literal matches lit after any insignificant input.
func Literal(lit string) Matcher {
	return Matcher{
		Label: strconv.Quote(lit),
		Match: func(c lexer.Cursor) (lexer.Cursor, bool) { return c.Match(lit) },
	}
}

// Keyword matches word as a whole identifier, but only when the next
// significant input is neither the end of input nor one of the runes in
// closers. A word with nothing but a closer after it is left for the
// caller to read as an ordinary name.
func Keyword(word, closers string) Matcher {
	return Matcher{
		Label: strconv.Quote(word),
		Match: func(c lexer.Cursor) (lexer.Cursor, bool) {
			next, ok := c.Keyword(word)
			if !ok {
				return c, false
			}
			if r, ok := next.Peek(); !ok || strings.ContainsRune(closers, r) {
				return c, false
			}
			return next, true
		},
	}
}

// Guard runs body only when look matches at c. The body receives the
// original cursor, not the one past look, and consumes the prefix itself.
// When look does not match the result is a miss and body is never run.
func Guard[T any](look Matcher, body Parser[T]) Parser[T] {
	return func(c lexer.Cursor) Result[T] {
		if _, ok := look.Match(c); !ok {
			return Miss[T](c)
		}
		return body(c)
	}
}

// Grammar is ordered choice: the alternatives are tried in order against
// the same cursor and the first hit wins, so earlier alternatives take
// precedence over later ones. A fatal alternative ends the choice at once.
// When every alternative misses, Grammar fails with a [lexer.KindGrammar]
// error naming label.
func Grammar[T any](label string, alts ...Parser[T]) Parser[T] {
	return func(c lexer.Cursor) Result[T] {
		for _, alt := range alts {
			r := alt(c)
			if r.Err != nil {
				return Fail[T](c, r.Err)
			}
			if r.OK {
				return r
			}
		}
		return Fail[T](c, c.Errorf(lexer.KindGrammar, "%s", label))
	}
}

// List parses open, then items separated by sep, then close, and folds the
// items with reduce. A missing open is a miss. Once open has matched, every
// other failure is fatal, including an error returned by reduce, which is
// reported at the closing delimiter.
func List[T, R any](open, sep, close Matcher, item Parser[T], reduce func([]T) (R, error)) Parser[R] {
	return func(in lexer.Cursor) Result[R] {
		c, ok := open.Match(in)
		if !ok {
			return Miss[R](in)
		}
		var items []T
		for {
			if next, ok := close.Match(c); ok {
				v, err := reduce(items)
				if err != nil {
					return Fail[R](in, c.Errorf(lexer.KindGrammar, "%v", err))
				}
				return Hit(next, v)
			}
			if len(items) > 0 {
				next, ok := sep.Match(c)
				if !ok {
					return Fail[R](in, c.Errorf(lexer.KindLiteral, "%s or %s", sep.Label, close.Label))
				}
				c = next
			}
			r := item(c)
			if r.Err != nil {
				return Fail[R](in, r.Err)
			}
			if !r.OK || r.Next.Offset() == c.Offset() {
				return Fail[R](in, c.Errorf(lexer.KindLiteral, "%s", close.Label))
			}
			items = append(items, r.Value)
			c = r.Next
		}
	}
}

// Until parses items until close matches and returns them in order.
// Zero items is fine. An item that misses before close is fatal.
func Until[T any](close Matcher, item Parser[T]) Parser[[]T] {
	return func(in lexer.Cursor) Result[[]T] {
		c := in
		items := []T{}
		for {
			if next, ok := close.Match(c); ok {
				return Hit(next, items)
			}
			r := item(c)
			if r.Err != nil {
				return Fail[[]T](in, r.Err)
			}
			if !r.OK || r.Next.Offset() == c.Offset() {
				return Fail[[]T](in, c.Errorf(lexer.KindLiteral, "%s", close.Label))
			}
			items = append(items, r.Value)
			c = r.Next
		}
	}
}

// Map transforms the value of a hit.
func Map[T, R any](p Parser[T], f func(T) R) Parser[R] {
	return func(c lexer.Cursor) Result[R] {
		r := p(c)
		if !r.OK {
			return Result[R]{Next: r.Next, Err: r.Err}
		}
		return Hit(r.Next, f(r.Value))
	}
}
