package ast

// Equal reports whether a and b are structurally identical trees.
// Two nil terms are equal; a nil and a non-nil term are not.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name
	case *Lam:
		y, ok := b.(*Lam)
		return ok && x.Name == y.Name && Equal(x.Body, y.Body)
	case *App:
		y, ok := b.(*App)
		return ok && Equal(x.Func, y.Func) && Equal(x.Argm, y.Argm)
	case *Let:
		y, ok := b.(*Let)
		return ok && x.Name == y.Name && Equal(x.Expr, y.Expr) && Equal(x.Body, y.Body)
	case *Dup:
		y, ok := b.(*Dup)
		return ok && x.Nam0 == y.Nam0 && x.Nam1 == y.Nam1 &&
			Equal(x.Expr, y.Expr) && Equal(x.Body, y.Body)
	case *Ctr:
		y, ok := b.(*Ctr)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *U32:
		y, ok := b.(*U32)
		return ok && x.Numb == y.Numb
	case *Op2:
		y, ok := b.(*Op2)
		return ok && x.Oper == y.Oper && Equal(x.Val0, y.Val0) && Equal(x.Val1, y.Val1)
	}
	return false
}

// EqualRule reports whether both sides of a and b are structurally identical.
func EqualRule(a, b Rule) bool {
	return Equal(a.LHS, b.LHS) && Equal(a.RHS, b.RHS)
}

// EqualFile reports whether a and b hold equal rules in the same order.
func EqualFile(a, b File) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualRule(a[i], b[i]) {
			return false
		}
	}
	return true
}
