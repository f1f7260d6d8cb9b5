// Package types models the shape of the external semantic type-checker's
// output that the front-end and monomorphizer need to see: canonical
// types, generic-parameter identity, and specialization maps. Per spec.md
// §1, the checker's own internals (inference, conformance solving) are an
// excluded external collaborator — only these output shapes are specified
// here.
package types

import "fmt"

// GenericParamID is the stable identity of one generic parameter,
// independent of which function or type declares it. Specialization maps
// are keyed by this identity, per spec.md §4.F / Glossary.
type GenericParamID struct {
	OwnerID string // the FunctionID/TypeID string of the declaring generic decl
	Index   int    // position within that decl's generic clause
}

func (id GenericParamID) String() string {
	return fmt.Sprintf("%s#%d", id.OwnerID, id.Index)
}

// Type is a canonical type as produced by the external type-checker. The
// monomorphizer only ever needs to substitute, canonicalize, and compare
// types — never to solve for them — so the interface is deliberately thin.
type Type interface {
	// Repr renders the type for diagnostics and IR dumps.
	Repr() string

	// Equal reports whether two canonical types denote the same type. Since
	// both sides are assumed already canonical, this may be a structural
	// comparison rather than a full unification.
	Equal(Type) bool
}

// -----------------------------------------------------------------------------

// Named is a concrete, non-generic nominal type (a product-type or
// view-type declaration with no unresolved generic parameters).
type Named struct {
	Name string
	ID   string // the declaration's stable identity
}

func (n *Named) Repr() string { return n.Name }

func (n *Named) Equal(other Type) bool {
	o, ok := other.(*Named)
	return ok && o.ID == n.ID
}

// Param is an unresolved reference to a generic parameter. It only appears
// inside the body of a generic declaration; canonicalizing a specialization
// replaces every Param with the corresponding concrete argument.
type Param struct {
	ID   GenericParamID
	Name string
}

func (p *Param) Repr() string { return p.Name }

func (p *Param) Equal(other Type) bool {
	o, ok := other.(*Param)
	return ok && o.ID == p.ID
}

// Specialized is a generic Named type applied to concrete type arguments,
// e.g. `Pair<Int, Bool>`.
type Specialized struct {
	Base *Named
	Args []Type
}

func (s *Specialized) Repr() string {
	r := s.Base.Repr() + "<"
	for i, a := range s.Args {
		if i > 0 {
			r += ", "
		}
		r += a.Repr()
	}
	return r + ">"
}

func (s *Specialized) Equal(other Type) bool {
	o, ok := other.(*Specialized)
	if !ok || !s.Base.Equal(o.Base) || len(s.Args) != len(o.Args) {
		return false
	}
	for i := range s.Args {
		if !s.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Tuple is a fixed-arity product of element types.
type Tuple struct {
	Elems []Type
}

func (t *Tuple) Repr() string {
	r := "("
	for i, e := range t.Elems {
		if i > 0 {
			r += ", "
		}
		r += e.Repr()
	}
	return r + ")"
}

func (t *Tuple) Equal(other Type) bool {
	o, ok := other.(*Tuple)
	if !ok || len(t.Elems) != len(o.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

// Function is a lowered function signature: parameter types to an output
// type, with an explicit volatile flag (spec.md §3/§4.D).
type Function struct {
	Params   []Type
	Output   Type
	Volatile bool
}

func (f *Function) Repr() string {
	r := "("
	for i, p := range f.Params {
		if i > 0 {
			r += ", "
		}
		r += p.Repr()
	}
	r += ") -> " + f.Output.Repr()
	if f.Volatile {
		r = "volatile " + r
	}
	return r
}

func (f *Function) Equal(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(f.Params) != len(o.Params) || f.Volatile != o.Volatile {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return f.Output.Equal(o.Output)
}

// Inout wraps a type as passed by mutable reference (the `mut` signature
// modifier, spec.md §4.D).
type Inout struct {
	Elem Type
}

func (i *Inout) Repr() string       { return "mut " + i.Elem.Repr() }
func (i *Inout) Equal(o Type) bool  { ot, ok := o.(*Inout); return ok && i.Elem.Equal(ot.Elem) }

// -----------------------------------------------------------------------------

// Arg is one entry of a Specialization: either a concrete type argument or
// a concrete constant-value argument (spec.md §4.F allows both generic
// type and generic value parameters).
type Arg struct {
	Type  Type // non-nil for a type argument
	Const string // non-nil (non-empty) for a value argument's canonical literal text
}

func (a Arg) Repr() string {
	if a.Type != nil {
		return a.Type.Repr()
	}
	return a.Const
}

func (a Arg) Equal(other Arg) bool {
	if a.Type != nil {
		return other.Type != nil && a.Type.Equal(other.Type)
	}
	return a.Type == nil && other.Type == nil && a.Const == other.Const
}

// Specialization maps generic-parameter identity to a concrete argument,
// per spec.md Glossary.
type Specialization map[GenericParamID]Arg

// Canonical renders a Specialization deterministically so it can be used as
// (part of) a memoization key, per spec.md §4.F step 1. Map iteration order
// in Go is randomized, so the keys are sorted first.
func (s Specialization) Canonical() string {
	if len(s) == 0 {
		return ""
	}

	keys := make([]GenericParamID, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sortParamIDs(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ","
		}
		out += k.String() + "=" + s[k].Repr()
	}
	return out
}

func sortParamIDs(ids []GenericParamID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && less(ids[j], ids[j-1]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

func less(a, b GenericParamID) bool {
	if a.OwnerID != b.OwnerID {
		return a.OwnerID < b.OwnerID
	}
	return a.Index < b.Index
}
