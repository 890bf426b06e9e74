// Package parser implements the Lambolt grammar on top of the combinator
// runtime.
//
// Each term form has its own parse function. They are combined by ordered
// choice into [Parser.ParseTerm], which the rule and file parsers call
// recursively for subterms:
//
//	File ::= Rule*
//	Rule ::= Term '=' Term
//	Term ::= 'let' Name1 '=' Term ';' Term
//	       | 'dup' Name1 Name1 '=' Term ';' Term
//	       | 'λ' Name Term
//	       | '[' Term+ ']'
//	       | '(' Name1 Term* ')'
//	       | '#' Digits
//	       | '{' Term Oper Term '}'
//	       | Name
//
// The order of the alternatives is significant: the keyword forms are tried
// before the bare variable, which would otherwise lex "let" as a name. A
// keyword must stand alone as an identifier, and "let" or "dup" with only a
// closing ')' ']' '}' ';' after it is read as a variable.
//
// Usage:
//
//	file, err := parser.File(source)
//	if err != nil {
//		var se *lexer.SyntaxError
//		if errors.As(err, &se) { fmt.Println(se.Highlight()) }
//	}
//
// Parsing stops at the first error; there is no recovery.
package parser

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kindelia-archive/Lambolt/ast"
	"github.com/kindelia-archive/Lambolt/combinator"
	"github.com/kindelia-archive/Lambolt/lexer"
)

// Options configures a Parser. The zero value is usable.
type Options struct {
	// Logger receives debug records about rules and failures. Nil discards.
	Logger *slog.Logger
	// StrictOperators makes an unknown operator inside {...} a syntax error
	// instead of reading it as ADD.
	StrictOperators bool
}

// Parser holds the grammar. It keeps no per-parse state, so one Parser may
// be reused and shared.
type Parser struct {
	opts Options
	log  *slog.Logger
	term combinator.Parser[ast.Term]
}

// New builds a Parser with the given options.
func New(opts Options) *Parser {
	p := &Parser{opts: opts, log: opts.Logger}
	if p.log == nil {
		p.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p.term = combinator.Grammar[ast.Term]("Term",
		p.parseLet,
		p.parseDup,
		p.parseLam,
		p.parseApp,
		p.parseCtr,
		p.parseU32,
		p.parseOp2,
		p.parseVar,
	)
	return p
}

var defaultParser = New(Options{})

// ── Whole-input helpers ───────────────────────────────────────────────────────

// Term parses src as a single term with the default options.
// The whole input must be consumed.
func Term(src string) (ast.Term, error) { return defaultParser.Term(src) }

// Rule parses src as a single rule with the default options.
func Rule(src string) (ast.Rule, error) { return defaultParser.Rule(src) }

// File parses src as a sequence of rules with the default options.
func File(src string) (ast.File, error) { return defaultParser.File(src) }

// Term parses src as a single term. The whole input must be consumed.
func (p *Parser) Term(src string) (ast.Term, error) {
	r := p.ParseTerm(lexer.New(src))
	if r.Err != nil {
		return nil, r.Err
	}
	if !r.Next.Done() {
		return nil, r.Next.Errorf(lexer.KindGrammar, "end of input")
	}
	return r.Value, nil
}

// Rule parses src as a single rule. The whole input must be consumed.
func (p *Parser) Rule(src string) (ast.Rule, error) {
	c := lexer.New(src)
	r := p.ParseRule(c)
	if r.Err != nil {
		return ast.Rule{}, r.Err
	}
	if !r.OK {
		return ast.Rule{}, c.Errorf(lexer.KindDefinition, "definition")
	}
	if !r.Next.Done() {
		return ast.Rule{}, r.Next.Errorf(lexer.KindGrammar, "end of input")
	}
	return r.Value, nil
}

// File parses src as a sequence of rules.
func (p *Parser) File(src string) (ast.File, error) {
	r := p.ParseFile(lexer.New(src))
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value, nil
}

// ── File and rule ─────────────────────────────────────────────────────────────

// ParseFile parses rules until the input is exhausted. Input that remains
// once no further rule parses is a [lexer.KindDefinition] error; when the
// rule there was malformed the specific error is kept as its Cause.
func (p *Parser) ParseFile(c lexer.Cursor) combinator.Result[ast.File] {
	p.log.Debug("parsing file", slog.Int("bytes", len(c.Rest())))
	file := ast.File{}
	for {
		r := p.ParseRule(c)
		if r.Err != nil {
			return p.fileError(c, r.Err)
		}
		if !r.OK {
			break
		}
		p.log.Debug("parsed rule",
			slog.Int("index", len(file)),
			slog.Int("offset", c.Skip().Offset()))
		file = append(file, r.Value)
		c = r.Next
	}
	if !c.Done() {
		return p.fileError(c, nil)
	}
	p.log.Debug("parsing complete", slog.Int("rules", len(file)))
	return combinator.Hit(c, file)
}

func (p *Parser) fileError(c lexer.Cursor, cause error) combinator.Result[ast.File] {
	err := c.Errorf(lexer.KindDefinition, "definition")
	err.Cause = cause
	p.log.Debug("parse failed",
		slog.Int("offset", err.Pos.Offset),
		slog.String("error", err.Innermost().Error()))
	return combinator.Fail[ast.File](c, err)
}

// ParseRule parses lhs '=' rhs. It misses cleanly when no term starts at c,
// which is how the end of a file is recognised; a rule that starts but does
// not finish is fatal.
func (p *Parser) ParseRule(in lexer.Cursor) combinator.Result[ast.Rule] {
	c, lhs, err := p.subterm(in)
	if err != nil {
		if startsNothing(err, in) {
			return combinator.Miss[ast.Rule](in)
		}
		return combinator.Fail[ast.Rule](in, err)
	}
	if c, err = c.Consume("="); err != nil {
		return combinator.Fail[ast.Rule](in, err)
	}
	c, rhs, err := p.subterm(c)
	if err != nil {
		return combinator.Fail[ast.Rule](in, err)
	}
	return combinator.Hit(c, ast.NewRule(lhs, rhs))
}

// startsNothing reports whether err is the Term alternation failing on the
// very first token at c.
func startsNothing(err error, c lexer.Cursor) bool {
	var se *lexer.SyntaxError
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == lexer.KindGrammar && se.Pos.Offset == c.Skip().Offset()
}

// ── Term ──────────────────────────────────────────────────────────────────────

// ParseTerm parses one term. It never misses: when no alternative applies it
// fails with a [lexer.KindGrammar] error expecting "Term".
func (p *Parser) ParseTerm(c lexer.Cursor) combinator.Result[ast.Term] {
	return p.term(c)
}

func (p *Parser) subterm(c lexer.Cursor) (lexer.Cursor, ast.Term, error) {
	r := p.ParseTerm(c)
	return r.Next, r.Value, r.Err
}

var (
	letKeyword = combinator.Keyword("let", termClosers)
	dupKeyword = combinator.Keyword("dup", termClosers)
	lambda     = combinator.Literal("λ")
	appOpen    = combinator.Literal("[")
	appClose   = combinator.Literal("]")
	ctrOpen    = combinator.Literal("(")
	ctrClose   = combinator.Literal(")")
	numSign    = combinator.Literal("#")
	op2Open    = combinator.Literal("{")
	spacing    = combinator.Literal("")
)

// parseLet parses `let name = expr; body`.
func (p *Parser) parseLet(c lexer.Cursor) combinator.Result[ast.Term] {
	return combinator.Guard[ast.Term](letKeyword, func(in lexer.Cursor) combinator.Result[ast.Term] {
		c, _ := letKeyword.Match(in)
		c, name, err := c.Name1()
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		if c, err = c.Consume("="); err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		c, expr, err := p.subterm(c)
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		if c, err = c.Consume(";"); err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		c, body, err := p.subterm(c)
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		return combinator.Hit[ast.Term](c, ast.NewLet(name, expr, body))
	})(c)
}

// parseDup parses `dup a b = expr; body`.
func (p *Parser) parseDup(c lexer.Cursor) combinator.Result[ast.Term] {
	return combinator.Guard[ast.Term](dupKeyword, func(in lexer.Cursor) combinator.Result[ast.Term] {
		c, _ := dupKeyword.Match(in)
		c, nam0, err := c.Name1()
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		c, nam1, err := c.Name1()
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		if c, err = c.Consume("="); err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		c, expr, err := p.subterm(c)
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		if c, err = c.Consume(";"); err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		c, body, err := p.subterm(c)
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		return combinator.Hit[ast.Term](c, ast.NewDup(nam0, nam1, expr, body))
	})(c)
}

// parseLam parses `λname body`. The name may be empty.
func (p *Parser) parseLam(c lexer.Cursor) combinator.Result[ast.Term] {
	return combinator.Guard[ast.Term](lambda, func(in lexer.Cursor) combinator.Result[ast.Term] {
		c, _ := in.Match("λ")
		c, name := c.Name()
		c, body, err := p.subterm(c)
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		return combinator.Hit[ast.Term](c, ast.NewLam(name, body))
	})(c)
}

var errNoHead = errors.New("application head")

// parseApp parses `[f a b ...]` into a left-leaning App spine.
func (p *Parser) parseApp(c lexer.Cursor) combinator.Result[ast.Term] {
	return combinator.Guard[ast.Term](appOpen, combinator.List[ast.Term, ast.Term](appOpen, spacing, appClose, p.ParseTerm,
		func(terms []ast.Term) (ast.Term, error) {
			if len(terms) == 0 {
				return nil, errNoHead
			}
			return ast.NewSpine(terms[0], terms[1:]...), nil
		}))(c)
}

// parseCtr parses `(Name args...)`.
func (p *Parser) parseCtr(c lexer.Cursor) combinator.Result[ast.Term] {
	return combinator.Guard[ast.Term](ctrOpen, func(in lexer.Cursor) combinator.Result[ast.Term] {
		c, _ := in.Match("(")
		c, name, err := c.Name1()
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		args := combinator.Until[ast.Term](ctrClose, p.ParseTerm)(c)
		if args.Err != nil {
			return combinator.Fail[ast.Term](in, args.Err)
		}
		return combinator.Hit[ast.Term](args.Next, ast.NewCtr(name, args.Value...))
	})(c)
}

// parseU32 parses `#digits`; the value must fit in 32 bits.
func (p *Parser) parseU32(c lexer.Cursor) combinator.Result[ast.Term] {
	return combinator.Guard[ast.Term](numSign, func(in lexer.Cursor) combinator.Result[ast.Term] {
		c, _ := in.Match("#")
		next, digits := c.Name()
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return combinator.Fail[ast.Term](in, c.Errorf(lexer.KindNumber, "u32 literal"))
		}
		return combinator.Hit[ast.Term](next, ast.NewU32(uint32(n)))
	})(c)
}

// parseOp2 parses `{val0 op val1}`.
func (p *Parser) parseOp2(c lexer.Cursor) combinator.Result[ast.Term] {
	return combinator.Guard[ast.Term](op2Open, func(in lexer.Cursor) combinator.Result[ast.Term] {
		c, _ := in.Match("{")
		c, val0, err := p.subterm(c)
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		c, oper, err := p.operator(c)
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		c, val1, err := p.subterm(c)
		if err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		if c, err = c.Consume("}"); err != nil {
			return combinator.Fail[ast.Term](in, err)
		}
		return combinator.Hit[ast.Term](c, ast.NewOp2(oper, val0, val1))
	})(c)
}

// termClosers are the runes that may directly follow a complete term.
// A "let" or "dup" followed by one of them is a variable, which the printer
// reproduces exactly; followed by anything else it starts a binding.
const termClosers = ")]};"

// termDelims are the runes that open or close a term. The lenient operator
// fallback never swallows them.
const termDelims = "([{#λ)]}"

// operator reads one of + - * / % & | ^ as a single rune. Any other
// token is read as ADD: either nothing at all, or a single rune that cannot
// start or close a term, e.g. the "@" in {a @ b}. StrictOperators turns both
// cases into errors.
func (p *Parser) operator(c lexer.Cursor) (lexer.Cursor, ast.Oper, error) {
	if next, r, ok := c.Char(); ok {
		if o, found := ast.LookupOper(string(r)); found {
			return next, o, nil
		}
	}
	if p.opts.StrictOperators {
		return c, ast.ADD, c.Errorf(lexer.KindOperator, "operator")
	}
	if r, ok := c.Peek(); ok && !lexer.IsNameRune(r) && !strings.ContainsRune(termDelims, r) {
		next, _, _ := c.Char()
		p.log.Debug("unknown operator read as ADD",
			slog.String("token", string(r)),
			slog.Int("offset", c.Skip().Offset()))
		return next, ast.ADD, nil
	}
	return c, ast.ADD, nil
}

// parseVar is the fallback: any non-empty name is a variable.
func (p *Parser) parseVar(c lexer.Cursor) combinator.Result[ast.Term] {
	return combinator.Map[string, ast.Term](identifier, func(name string) ast.Term {
		return ast.NewVar(name)
	})(c)
}

// identifier hits with a non-empty name and misses otherwise.
func identifier(c lexer.Cursor) combinator.Result[string] {
	next, name := c.Name()
	if name == "" {
		return combinator.Miss[string](c)
	}
	return combinator.Hit(next, name)
}
