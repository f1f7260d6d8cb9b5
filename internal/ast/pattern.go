package ast

// Pattern is the sum type for patterns (spec.md §3's "Pattern" family):
// named, binding, tuple, wildcard.
type Pattern interface {
	Node
}

// PatternBase is embedded by every concrete pattern.
type PatternBase struct {
	Base
}

// NamedPattern binds a single variable decl to the matched value.
type NamedPattern struct {
	PatternBase

	Name string
	// Var is the VariableDecl this pattern introduces; it is filled in when
	// the parser reads the pattern's name, per
	// spec.md §3's "Variable decls within a pattern are owned by the
	// enclosing pattern-binding declaration."
	Var DeclID
}

// BindingPattern is a `val`/`var` sub-pattern with an optional type
// signature, e.g. `val (x, y)` or `var x: Int`.
type BindingPattern struct {
	PatternBase

	IsVar bool
	Sub   Pattern
	Sig   TypeSig // nil if untyped
}

// TuplePattern destructures a tuple value element-wise.
type TuplePattern struct {
	PatternBase

	Elems []Pattern
}

// WildcardPattern (`_`) matches and discards a value.
type WildcardPattern struct {
	PatternBase
}
