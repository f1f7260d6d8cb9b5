package parser

import (
	"testing"

	"chai/internal/ast"
)

// TestParsePrecedence is spec.md §8 scenario 3: `1 + 2 * 3` flattens to
// `Call.infix(+, 1, Call.infix(*, 2, 3))` since `*` outweighs `+`.
func TestParsePrecedence(t *testing.T) {
	s, sink := newTestState("1 + 2 * 3")
	e := s.parseExpr()

	if s.HasError() {
		t.Fatalf("expected no error, got diagnostics: %v", sink.messages())
	}

	outer, ok := e.(*ast.CallExpr)
	if !ok || outer.Notation != ast.CallInfix {
		t.Fatalf("expected an infix call at the top, got %#v", e)
	}

	outerMember, ok := outer.Callee.(*ast.MemberExpr)
	if !ok || outerMember.Field != "+" {
		t.Fatalf("expected the outer operator to be +, got %#v", outer.Callee)
	}

	lhs, ok := outerMember.Root.(*ast.IntLitExpr)
	if !ok || lhs.Text != "1" {
		t.Fatalf("expected the outer left operand to be 1, got %#v", outerMember.Root)
	}

	if len(outer.Args) != 1 {
		t.Fatalf("expected exactly one argument to the infix call, got %d", len(outer.Args))
	}

	inner, ok := outer.Args[0].(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected +'s right operand to be the nested * call, got %#v", outer.Args[0])
	}

	innerMember, ok := inner.Callee.(*ast.MemberExpr)
	if !ok || innerMember.Field != "*" {
		t.Fatalf("expected the inner operator to be *, got %#v", inner.Callee)
	}

	innerLHS, ok := innerMember.Root.(*ast.IntLitExpr)
	if !ok || innerLHS.Text != "2" {
		t.Fatalf("expected the inner left operand to be 2, got %#v", innerMember.Root)
	}
	if len(inner.Args) != 1 {
		t.Fatalf("expected exactly one argument to the nested call, got %d", len(inner.Args))
	}
	innerRHS, ok := inner.Args[0].(*ast.IntLitExpr)
	if !ok || innerRHS.Text != "3" {
		t.Fatalf("expected the inner right operand to be 3, got %#v", inner.Args[0])
	}
}

func TestParsePrecedenceRightAssociativeAssign(t *testing.T) {
	s, sink := newTestState("x = y = 1")
	e := s.parseExpr()

	if s.HasError() {
		t.Fatalf("expected no error, got diagnostics: %v", sink.messages())
	}

	outer, ok := e.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected the top-level node to be an assignment, got %#v", e)
	}
	if _, ok := outer.RHS.(*ast.AssignExpr); !ok {
		t.Fatalf("expected `=` to associate right, got RHS %#v", outer.RHS)
	}
}
