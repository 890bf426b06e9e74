// Package ast defines the abstract syntax tree of Lambolt rewrite rules.
//
// A source file is a list of rules; each rule rewrites a left-hand side term
// into a right-hand side term. The term hierarchy is:
//
//	Term (interface)
//	  Var, Lam, App, Let, Dup, Ctr, U32, Op2
//
// Nodes are plain data. A tree is built bottom-up by the parser (or by the
// New* constructors) and is never mutated afterwards; every node owns its
// children, so trees contain no sharing and no cycles. Names carry no scope
// information: which binder a Var refers to is left to downstream tools.
//
// The String method of every node is the canonical printer: its output is the
// exact surface syntax the parser accepts, so parsing a printed term yields a
// structurally equal term (see [Equal]).
package ast

import (
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Term is a node of the term calculus.
type Term interface {
	// String returns the canonical surface syntax of the term.
	String() string
	termNode()
}

// ── Terms ─────────────────────────────────────────────────────────────────────

// Var is a variable occurrence: x
type Var struct {
	Name string
}

// Lam is a lambda abstraction binding Name in Body: λx body
// Name may be empty.
type Lam struct {
	Name string
	Body Term
}

// App applies Func to a single Argm. Multi-argument application is a
// left-leaning spine: [f a b] is App(App(f, a), b).
type App struct {
	Func Term
	Argm Term
}

// Let binds Name to Expr over Body: let x = expr; body
type Let struct {
	Name string
	Expr Term
	Body Term
}

// Dup binds two names to copies of Expr over Body: dup a b = expr; body
type Dup struct {
	Nam0 string
	Nam1 string
	Expr Term
	Body Term
}

// Ctr is a saturated constructor application: (Name a b c)
type Ctr struct {
	Name string
	Args []Term
}

// U32 is an unsigned 32-bit literal: #42
type U32 struct {
	Numb uint32
}

// Op2 is a binary numeric operation: {val0 + val1}
type Op2 struct {
	Oper Oper
	Val0 Term
	Val1 Term
}

func (*Var) termNode() {}
func (*Lam) termNode() {}
func (*App) termNode() {}
func (*Let) termNode() {}
func (*Dup) termNode() {}
func (*Ctr) termNode() {}
func (*U32) termNode() {}
func (*Op2) termNode() {}

// ── Constructors ──────────────────────────────────────────────────────────────

// NewVar returns the variable occurrence name.
func NewVar(name string) *Var { return &Var{Name: name} }

// NewLam returns λname body.
func NewLam(name string, body Term) *Lam { return &Lam{Name: name, Body: body} }

// NewApp applies fn to a single argument.
func NewApp(fn, argm Term) *App { return &App{Func: fn, Argm: argm} }

// NewLet returns let name = expr; body.
func NewLet(name string, expr, body Term) *Let {
	return &Let{Name: name, Expr: expr, Body: body}
}

// NewDup returns dup nam0 nam1 = expr; body.
func NewDup(nam0, nam1 string, expr, body Term) *Dup {
	return &Dup{Nam0: nam0, Nam1: nam1, Expr: expr, Body: body}
}

// NewCtr builds a constructor node. A nil args slice is stored as empty so
// that (Nil) built by hand and (Nil) built by the parser look the same.
func NewCtr(name string, args ...Term) *Ctr {
	if args == nil {
		args = []Term{}
	}
	return &Ctr{Name: name, Args: args}
}

// NewU32 returns the literal #numb.
func NewU32(numb uint32) *U32 { return &U32{Numb: numb} }

// NewOp2 returns {val0 oper val1}.
func NewOp2(oper Oper, val0, val1 Term) *Op2 {
	return &Op2{Oper: oper, Val0: val0, Val1: val1}
}

// NewSpine folds fn and args into a left-leaning App spine.
// With no args it returns fn unchanged.
func NewSpine(fn Term, args ...Term) Term {
	for _, a := range args {
		fn = NewApp(fn, a)
	}
	return fn
}

// ── Rules and files ───────────────────────────────────────────────────────────

// Rule is a rewrite rule lhs = rhs. The lhs is conventionally a constructor
// pattern, but nothing here enforces it.
type Rule struct {
	LHS Term
	RHS Term
}

// NewRule returns the rule lhs = rhs.
func NewRule(lhs, rhs Term) Rule { return Rule{LHS: lhs, RHS: rhs} }

// String returns "lhs = rhs".
func (r Rule) String() string {
	return r.LHS.String() + " = " + r.RHS.String()
}

// File is the list of rules of a source file, in source order.
// Consumers that match rules in order depend on that ordering.
type File []Rule

// String returns the rules one per line, without a trailing newline.
func (f File) String() string {
	return DefaultFileFormat.Format(f)
}

// ── Printer ───────────────────────────────────────────────────────────────────

func (t *Var) String() string { return t.Name }

func (t *Lam) String() string {
	return "λ" + t.Name + " " + t.Body.String()
}

// String unrolls the application spine so that App(App(f, a), b) prints as
// [f a b], the inverse of the parser's left fold.
func (t *App) String() string {
	var args []string
	var head Term = t
	for {
		app, ok := head.(*App)
		if !ok {
			break
		}
		args = append(args, app.Argm.String())
		head = app.Func
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(head.String())
	for i := len(args) - 1; i >= 0; i-- {
		b.WriteString(" ")
		b.WriteString(args[i])
	}
	b.WriteString("]")
	return b.String()
}

func (t *Let) String() string {
	return "let " + t.Name + " = " + t.Expr.String() + "; " + t.Body.String()
}

func (t *Dup) String() string {
	return "dup " + t.Nam0 + " " + t.Nam1 + " = " + t.Expr.String() + "; " + t.Body.String()
}

func (t *Ctr) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(t.Name)
	for _, a := range t.Args {
		b.WriteString(" ")
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}

func (t *U32) String() string {
	return "#" + strconv.FormatUint(uint64(t.Numb), 10)
}

func (t *Op2) String() string {
	return "{" + t.Val0.String() + " " + t.Oper.Symbol() + " " + t.Val1.String() + "}"
}

// ShowTerm returns the canonical surface syntax of t.
func ShowTerm(t Term) string { return t.String() }

// ShowRule returns the canonical surface syntax of r.
func ShowRule(r Rule) string { return r.String() }

// ShowFile returns the canonical surface syntax of f, one rule per line.
func ShowFile(f File) string { return f.String() }

// FileFormat controls how rules are joined when a whole file is printed.
type FileFormat struct {
	// Separator is written between consecutive rules.
	Separator string
	// TrailingNewline appends "\n" after the last rule of a non-empty file.
	TrailingNewline bool
}

// DefaultFileFormat is the layout used by [ShowFile].
var DefaultFileFormat = FileFormat{Separator: "\n"}

// Format prints f using the receiver's layout.
func (ff FileFormat) Format(f File) string {
	var b strings.Builder
	for i, r := range f {
		if i > 0 {
			b.WriteString(ff.Separator)
		}
		b.WriteString(r.String())
	}
	if ff.TrailingNewline && len(f) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}
