package types

import "github.com/sylva-lang/sylva/internal/ast"

// unifier matches declared type expressions against concrete types,
// binding template parameter slots as it goes. Unification is
// invariant: a slot bound once must be matched by the identical type
// everywhere else it appears.
type unifier struct {
	params []string
	slots  map[string]Type
}

func newUnifier(params []string) *unifier {
	u := &unifier{params: params, slots: make(map[string]Type, len(params))}
	for _, p := range params {
		u.slots[p] = nil
	}
	return u
}

// match unifies one declared type expression with a concrete type.
func (u *unifier) match(pattern ast.Expr, t Type) bool {
	switch p := pattern.(type) {
	case *ast.Name:
		if bound, isSlot := u.slots[p.Ident]; isSlot {
			if bound != nil {
				return bound == t
			}
			u.slots[p.Ident] = t
			return true
		}
		switch tt := t.(type) {
		case *Builtin:
			return tt.name == p.Ident
		case *Struct:
			return len(tt.Args) == 0 && tt.Decl.Name == p.Ident
		}
		return false
	case *ast.Call:
		head, ok := p.Callee.(*ast.Name)
		if !ok {
			return false
		}
		st, ok := t.(*Struct)
		if !ok || st.Decl.Name != head.Ident || len(st.Args) != len(p.Args) {
			return false
		}
		for i, arg := range p.Args {
			if !u.match(arg, st.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// complete reports whether every slot got bound.
func (u *unifier) complete() bool {
	for _, p := range u.params {
		if u.slots[p] == nil {
			return false
		}
	}
	return true
}

// bindings returns the bound types in declaration order. Only valid
// after complete reports true.
func (u *unifier) bindings() []Type {
	if len(u.params) == 0 {
		return nil
	}
	out := make([]Type, len(u.params))
	for i, p := range u.params {
		out[i] = u.slots[p]
	}
	return out
}
