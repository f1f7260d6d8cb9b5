package ast

// Modifiers is the parsed set of declaration modifiers from spec.md §4.D:
// `pub`, `mod`, `mut`, `infix`, `prefix`, `postfix`, `volatile`, `static`,
// `moveonly`. The parser enforces the exclusivity/context rules before
// building one of these; by the time a Modifiers value exists it is
// already valid for the decl it is attached to.
type Modifiers struct {
	Pub, Mod             bool
	Mut                  bool
	Infix, Prefix, Postfix bool
	Volatile             bool
	Static               bool
	Moveonly             bool
}

// GenericParamDecl is one parameter of a generic clause, e.g. the `A` in
// `type Pair<A, B where A: Eq>`.
type GenericParamDecl struct {
	DeclBase
	Name string
}

// TypeRequirement is one `where` clause entry: either an equality
// constraint (`T == U`) or a conformance constraint (`T: Trait`).
type TypeRequirement struct {
	Subject    TypeSig
	IsEquality bool // false means conformance (':')
	Trait      TypeSig
}

// GenericClause is the `<...>` parameter list and optional `where` clause
// attached to a type or function declaration.
type GenericClause struct {
	Params       []*GenericParamDecl
	Requirements []TypeRequirement
}

// -----------------------------------------------------------------------------

// PatternBindingDecl is a `val`/`var` declaration: a pattern, an optional
// type signature, and an optional initializer.
type PatternBindingDecl struct {
	DeclBase

	IsVar bool
	Patt  Pattern
	Sig   TypeSig // nil if untyped
	Init  Expr    // nil if uninitialized (only legal for `var`)
}

// VariableDecl is one variable introduced by a pattern; its PatternBinding
// field points back to the PatternBindingDecl that owns it, per spec.md §8's
// "all variable decls inside a pattern-binding point back to the binding
// via patternBindingDecl" invariant.
type VariableDecl struct {
	DeclBase

	Name           string
	PatternBinding DeclID
}

// -----------------------------------------------------------------------------

// FuncArg is one function parameter: `(label | '_')? NAME ':' sign`, per
// spec.md §4.D. A single bareword serves as both the external label and
// the internal name; Anonymous is set when the external label is `_`.
type FuncArg struct {
	ExternalLabel string
	Anonymous     bool
	InternalName  string
	Sig           TypeSig
}

// FuncDecl is a function declaration, including operator-function forms
// (recorded by Modifiers.Infix/Prefix/Postfix).
type FuncDecl struct {
	DeclBase

	Modifiers Modifiers
	Name      string
	Generic   *GenericClause // nil if non-generic
	Params    []FuncArg
	Output    TypeSig // nil if unspecified (inferred unit)
	Body      *BlockStmt
	BodySpace DeclSpaceID
}

// CtorDecl is `new(...)`: a type's constructor.
type CtorDecl struct {
	DeclBase

	Params    []FuncArg
	Body      *BlockStmt
	BodySpace DeclSpaceID
}

// DtorDecl is `del()`: a type's destructor.
type DtorDecl struct {
	DeclBase

	Body      *BlockStmt
	BodySpace DeclSpaceID
}

// -----------------------------------------------------------------------------

// ProductTypeDecl is `type NAME [<generic>] [: views] { members }`.
type ProductTypeDecl struct {
	DeclBase

	Modifiers Modifiers
	Name      string
	Generic   *GenericClause
	Inherits  []TypeSig
	Members   []Decl
	OwnedSpace DeclSpaceID
}

// ViewTypeDecl is `view NAME [: views] { members }`. Views forbid generic
// clauses of their own (their associated types are abstract members
// instead) and forbid nested non-abstract types, per spec.md §4.D.
type ViewTypeDecl struct {
	DeclBase

	Modifiers Modifiers
	Name      string
	Inherits  []TypeSig
	Members   []Decl
	OwnedSpace DeclSpaceID
}

// AbstractTypeDecl is an associated-type requirement declared inside a view
// body, e.g. `type Elem where Eq`.
type AbstractTypeDecl struct {
	DeclBase

	Name        string
	Constraints []TypeSig
}

// AliasTypeDecl is `type NAME [<generic>] = sign`.
type AliasTypeDecl struct {
	DeclBase

	Name    string
	Generic *GenericClause
	Target  TypeSig
}

// ExtnDecl is `extn [<generic>] TargetSig { members }`. Extensions (like
// views) must appear at top level, per spec.md §4.D.
type ExtnDecl struct {
	DeclBase

	Generic *GenericClause
	Target  TypeSig
	Members []Decl
	OwnedSpace DeclSpaceID
}
