package ast

// Oper identifies the binary operator of an [Op2] node.
// The zero value is ADD, which is also the operator the parser falls back to
// when it is lenient about unknown operator tokens.
type Oper int

const (
	// ADD is wrapping 32-bit addition: {a + b}
	ADD Oper = iota
	// SUB is wrapping 32-bit subtraction: {a - b}
	SUB
	// MUL is wrapping 32-bit multiplication: {a * b}
	MUL
	// DIV is unsigned division: {a / b}
	DIV
	// MOD is the unsigned remainder: {a % b}
	MOD
	// AND is bitwise and: {a & b}
	AND
	// OR is bitwise or: {a | b}
	OR
	// XOR is bitwise exclusive or: {a ^ b}
	XOR
)

// Opers lists every operator in declaration order.
var Opers = []Oper{ADD, SUB, MUL, DIV, MOD, AND, OR, XOR}

var operSymbols = [...]string{
	ADD: "+",
	SUB: "-",
	MUL: "*",
	DIV: "/",
	MOD: "%",
	AND: "&",
	OR:  "|",
	XOR: "^",
}

var operNames = [...]string{
	ADD: "ADD",
	SUB: "SUB",
	MUL: "MUL",
	DIV: "DIV",
	MOD: "MOD",
	AND: "AND",
	OR:  "OR",
	XOR: "XOR",
}

// Valid reports whether o is one of the eight defined operators.
func (o Oper) Valid() bool {
	return o >= ADD && o <= XOR
}

// Symbol returns the surface token of o, e.g. "+" for ADD.
func (o Oper) Symbol() string {
	if !o.Valid() {
		return "?"
	}
	return operSymbols[o]
}

// String returns the upper-case name of o, e.g. "ADD".
func (o Oper) String() string {
	if !o.Valid() {
		return "Oper(?)"
	}
	return operNames[o]
}

// LookupOper maps a surface token to its operator.
func LookupOper(symbol string) (Oper, bool) {
	for _, o := range Opers {
		if operSymbols[o] == symbol {
			return o, true
		}
	}
	return ADD, false
}
