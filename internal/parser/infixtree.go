package parser

import "chai/internal/ast"

// opGroup names a precedence group, per spec.md §9's InfixTree group table:
// standard weights per operator name, plus the special groups `identifier`
// (identifier-used-as-infix) and `casting` (`as?`/`as!`).
type opGroup string

const (
	groupAssign   opGroup = "assign"
	groupLogicOr  opGroup = "logicOr"
	groupLogicAnd opGroup = "logicAnd"
	groupCompare  opGroup = "compare"
	groupBitOr    opGroup = "bitOr"
	groupBitXor   opGroup = "bitXor"
	groupBitAnd   opGroup = "bitAnd"
	groupShift    opGroup = "shift"
	groupAdd      opGroup = "add"
	groupMul      opGroup = "mul"
	groupCasting  opGroup = "casting"
	groupIdent    opGroup = "identifier"
)

// groupWeights gives each group a precedence weight; higher binds tighter.
// `=` sits at the bottom per spec.md §9 ("`=` has the lowest weight and
// right-associativity"); `identifier`-as-infix binds loosest of the
// "real" operators, just above assignment, matching the teacher's rule that
// a bareword used infix behaves like a low-precedence custom operator.
var groupWeights = map[opGroup]int{
	groupAssign:   0,
	groupIdent:    1,
	groupLogicOr:  2,
	groupLogicAnd: 3,
	groupCompare:  4,
	groupBitOr:    5,
	groupBitXor:   6,
	groupBitAnd:   7,
	groupShift:    8,
	groupAdd:      9,
	groupMul:      10,
	groupCasting:  11,
}

// rightAssoc reports whether a group associates right-to-left; every other
// group is left-associative.
var rightAssoc = map[opGroup]bool{
	groupAssign: true,
}

// operGroups maps a standard operator's literal spelling to its group. Any
// spelling not present here falls back to groupCompare for multi-char
// comparison-shaped operators or groupAdd/groupMul by leading character, so
// that user-defined operator spellings (spec.md allows `fun` declarations to
// introduce new operators) still get a sane default weight.
var operGroups = map[string]opGroup{
	"||": groupLogicOr,
	"&&": groupLogicAnd,
	"==": groupCompare,
	"!=": groupCompare,
	"<=": groupCompare,
	">=": groupCompare,
	"<":  groupCompare,
	">":  groupCompare,
	"|":  groupBitOr,
	"^":  groupBitXor,
	"&":  groupBitAnd,
	"<<": groupShift,
	">>": groupShift,
	"+":  groupAdd,
	"-":  groupAdd,
	"*":  groupMul,
	"/":  groupMul,
	"%":  groupMul,
}

// groupFor resolves the precedence group for an operator spelling not found
// as a standard operator, keyed by leading byte; this is the fallback for
// user-declared infix operator functions.
func groupFor(spelling string) opGroup {
	if g, ok := operGroups[spelling]; ok {
		return g
	}
	if spelling == "" {
		return groupAdd
	}
	switch spelling[0] {
	case '*', '/', '%':
		return groupMul
	case '<', '>', '=', '!':
		return groupCompare
	default:
		return groupAdd
	}
}

// infixTree is the sum type `Leaf(operand) | Node(op, group, left, right)` of
// spec.md §9: an auxiliary structure built while parsing one expression's
// chain of binary suffixes, before it is flattened into real AST nodes.
type infixTree struct {
	// leaf fields
	operand ast.Expr

	// node fields (operand == nil for a Node)
	op      binSuffix
	group   opGroup
	left    *infixTree
	right   *infixTree
}

// binSuffix is one parsed binary suffix: a standard operator, an
// identifier-as-infix, or a `cast` (whose "right operand" is actually a type
// signature captured in castTarget/castKind rather than an Expr).
type binSuffix struct {
	kind binSuffixKind

	operText string // operator spelling, or the infix identifier's name

	castKind   castKind
	castTarget ast.TypeSig
}

type binSuffixKind int

const (
	binOperator binSuffixKind = iota
	binIdentInfix
	binCast
)

type castKind int

const (
	castDyn    castKind = iota // `as?`
	castUnsafe                 // `as!`
)

func leaf(e ast.Expr) *infixTree { return &infixTree{operand: e} }

// append inserts a newly parsed `(oper, group, rhs)` triple into the tree,
// per spec.md §9's rotation rule: descend right while the pending operator
// has strictly higher weight, or equal weight with right-associativity;
// otherwise rotate up by wrapping the whole tree as the new left child.
func (t *infixTree) append(op binSuffix, group opGroup, rhs *infixTree) *infixTree {
	if t.operand != nil {
		// t is a leaf: it becomes the new node's left child.
		return &infixTree{op: op, group: group, left: t, right: rhs}
	}

	if higherOrRightAssocEqual(group, t.group) {
		t.right = t.right.append(op, group, rhs)
		return t
	}

	return &infixTree{op: op, group: group, left: t, right: rhs}
}

// higherOrRightAssocEqual reports whether a new suffix of group `incoming`
// should descend into the right subtree of a pending node of group
// `pending`, per spec.md §9.
func higherOrRightAssocEqual(incoming, pending opGroup) bool {
	wi, wp := groupWeights[incoming], groupWeights[pending]
	if wi > wp {
		return true
	}
	return wi == wp && rightAssoc[incoming]
}

// flatten lowers the infix tree to AST per spec.md §4.D step 4: `=`→Assign,
// `as?`→DynCast, `as!`→UnsafeCast, anything else→CallExpr-infix over an
// unresolved member.
func (t *infixTree) flatten() ast.Expr {
	if t.operand != nil {
		return t.operand
	}

	lhs := t.left.flatten()
	rng := lhs.Range()

	switch t.op.kind {
	case binCast:
		rng = ast.SpanRange(lhs, t.op.castTarget)
		if t.op.castKind == castDyn {
			return &ast.DynCastExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(rng)}, Operand: lhs, Target: t.op.castTarget}
		}
		return &ast.UnsafeCastExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(rng)}, Operand: lhs, Target: t.op.castTarget}
	}

	rhs := t.right.flatten()
	rng = ast.SpanRange(lhs, rhs)

	if t.op.kind == binOperator && t.op.operText == "=" {
		return &ast.AssignExpr{ExprBase: ast.ExprBase{Base: ast.NewBase(rng)}, LHS: lhs, RHS: rhs}
	}

	notation := ast.CallInfix
	member := &ast.MemberExpr{
		ExprBase: ast.ExprBase{Base: ast.NewBase(lhs.Range())},
		Root:     lhs,
		Field:    t.op.operText,
	}
	return &ast.CallExpr{
		ExprBase: ast.ExprBase{Base: ast.NewBase(rng)},
		Callee:   member,
		Args:     []ast.Expr{rhs},
		Notation: notation,
	}
}
