package ast

// TypeSig is the sum type for type signatures (spec.md §3's "Type
// signature" family).
type TypeSig interface {
	Node
}

// TypeSigBase is embedded by every concrete type signature.
type TypeSigBase struct {
	Base
}

// BareIdentSig is a single, unqualified type name, e.g. `Int`.
type BareIdentSig struct {
	TypeSigBase

	Name string
}

// SpecializedIdentSig is a type name applied to generic arguments, e.g.
// `Pair<Int, Bool>`.
type SpecializedIdentSig struct {
	TypeSigBase

	Name string
	Args []TypeSig
}

// CompoundIdentSig is a `::`-separated namespace path to a type, e.g.
// `collections::List`.
type CompoundIdentSig struct {
	TypeSigBase

	Path []string
	// Generic arguments on the final path component, if any (e.g.
	// `collections::List<Int>`).
	Args []TypeSig
}

// TupleSig is a tuple type signature, e.g. `(Int, Bool)`.
type TupleSig struct {
	TypeSigBase

	Elems []TypeSig
}

// FunctionSig is a `param -> return` function type signature, right
// recursive per spec.md §4.D, with the `volatile` flag permitted only here.
type FunctionSig struct {
	TypeSigBase

	Params   []TypeSig
	Output   TypeSig
	Volatile bool
}

// InoutSig wraps a signature with the `mut` modifier.
type InoutSig struct {
	TypeSigBase

	Elem TypeSig
}

// AsyncSig wraps a signature with the `async` modifier.
type AsyncSig struct {
	TypeSigBase

	Elem TypeSig
}

// UnionSig is a `|`-disjunction of alternative signatures (a "maxterm").
type UnionSig struct {
	TypeSigBase

	Alts []TypeSig
}

// ViewCompositionSig is a `&`-conjunction of view signatures (a "minterm").
type ViewCompositionSig struct {
	TypeSigBase

	Views []TypeSig
}

// ErrorSig is a placeholder signature produced when parsing a type
// signature fails; it lets the parser continue without a nil TypeSig.
type ErrorSig struct {
	TypeSigBase
}
