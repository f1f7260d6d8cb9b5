package ast

// Stmt is the sum type for statements (spec.md §3's "Statement" family).
// Decls and Exprs are also embeddable as statements, per spec.md §3.
type Stmt interface {
	Node
}

// StmtBase is embedded by every concrete statement.
type StmtBase struct {
	Base
}

// BlockStmt is a brace-delimited sequence of statements; it is itself a
// declaration space (spec.md §9) so nested val/var decls are scoped to it.
type BlockStmt struct {
	StmtBase

	Space DeclSpaceID
	Stmts []Stmt
}

// ReturnStmt is `ret [expr]`.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil for a bare `ret`
}

// BreakStmt is `break`. Per spec.md §9, the parser's handling of `break` is
// an explicit, clearly-marked stub — see State.notImplemented in
// internal/parser/parse_stmt.go, which raises via diag.NotImplemented.
type BreakStmt struct {
	StmtBase
}

// ContinueStmt is `continue`, stubbed for the same reason as BreakStmt.
type ContinueStmt struct {
	StmtBase
}

// MatchCaseStmt is one `case pattern [where expr] { ... }` arm of a match.
type MatchCaseStmt struct {
	StmtBase

	Space  DeclSpaceID
	Patt   Pattern
	Guard  Expr // nil if no `where` clause
	Body   *BlockStmt
}

// MatchStmt is a top-level match used as a statement (as opposed to
// MatchExpr used in expression position), per spec.md §4.D: "A top-level
// match inside a brace-block is treated as a statement."
type MatchStmt struct {
	StmtBase

	Scrutinee Expr
	Cases     []*MatchCaseStmt
}

// DeclStmt embeds a declaration (e.g. a local `val`/`var` binding) inside a
// statement sequence.
type DeclStmt struct {
	StmtBase
	D Decl
}

// ExprStmt embeds a bare expression as a statement.
type ExprStmt struct {
	StmtBase
	E Expr
}
