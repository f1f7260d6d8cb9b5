package parser

import (
	"testing"

	"chai/internal/ast"
	"chai/internal/diag"
)

// TestParseValDecl is spec.md §8 scenario 2.
func TestParseValDecl(t *testing.T) {
	s, sink := newTestState("val x: Int = 42;")
	d := s.parseDecl()

	if s.HasError() {
		t.Fatalf("expected no error, got diagnostics: %v", sink.messages())
	}

	pb, ok := d.(*ast.PatternBindingDecl)
	if !ok {
		t.Fatalf("expected a *ast.PatternBindingDecl, got %T", d)
	}
	if pb.IsVar {
		t.Fatalf("expected IsVar == false for a val declaration")
	}

	named, ok := pb.Patt.(*ast.NamedPattern)
	if !ok || named.Name != "x" {
		t.Fatalf("expected a named pattern \"x\", got %#v", pb.Patt)
	}

	sig, ok := pb.Sig.(*ast.BareIdentSig)
	if !ok || sig.Name != "Int" {
		t.Fatalf("expected a bare-ident signature \"Int\", got %#v", pb.Sig)
	}

	init, ok := pb.Init.(*ast.IntLitExpr)
	if !ok || init.Text != "42" {
		t.Fatalf("expected an int-literal initializer 42, got %#v", pb.Init)
	}
}

func TestParseValDeclMissingInitializerIsError(t *testing.T) {
	s, _ := newTestState("val x: Int;")

	if le := diag.Try(func() { s.parseDecl() }); le == nil {
		t.Fatalf("expected `val` without an initializer to raise a parse error")
	}
}

func TestParseVarDeclWithoutInitializer(t *testing.T) {
	s, sink := newTestState("var x: Int;")
	d := s.parseDecl()

	if s.HasError() {
		t.Fatalf("expected no error, got diagnostics: %v", sink.messages())
	}
	pb, ok := d.(*ast.PatternBindingDecl)
	if !ok || !pb.IsVar || pb.Init != nil {
		t.Fatalf("expected an uninitialized var decl, got %#v", d)
	}
}
