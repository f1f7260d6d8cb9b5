package parser

import (
	"testing"

	"chai/internal/ast"
)

// TestParseGenericTypeDeclWithRequirement is spec.md §8 scenario 5: a
// generic product type with a `where` clause carries both its generic
// parameters and its conformance requirements.
func TestParseGenericTypeDeclWithRequirement(t *testing.T) {
	s, sink := newTestState("type Pair<A, B where A: Eq> {}")
	s.flags.parsingTopLevel = true
	d := s.parseDecl()

	if s.HasError() {
		t.Fatalf("expected no error, got diagnostics: %v", sink.messages())
	}

	pd, ok := d.(*ast.ProductTypeDecl)
	if !ok {
		t.Fatalf("expected a *ast.ProductTypeDecl, got %T", d)
	}
	if pd.Name != "Pair" {
		t.Fatalf("expected the type's name to be Pair, got %q", pd.Name)
	}
	if pd.Generic == nil {
		t.Fatalf("expected a non-nil generic clause")
	}
	if len(pd.Generic.Params) != 2 || pd.Generic.Params[0].Name != "A" || pd.Generic.Params[1].Name != "B" {
		t.Fatalf("expected generic params [A, B], got %#v", pd.Generic.Params)
	}

	if len(pd.Generic.Requirements) != 1 {
		t.Fatalf("expected exactly one requirement, got %d", len(pd.Generic.Requirements))
	}
	req := pd.Generic.Requirements[0]
	if req.IsEquality {
		t.Fatalf("expected a conformance requirement, not an equality one")
	}

	subject, ok := req.Subject.(*ast.BareIdentSig)
	if !ok || subject.Name != "A" {
		t.Fatalf("expected the requirement's subject to be A, got %#v", req.Subject)
	}
	trait, ok := req.Trait.(*ast.BareIdentSig)
	if !ok || trait.Name != "Eq" {
		t.Fatalf("expected the requirement's trait to be Eq, got %#v", req.Trait)
	}

	if len(pd.Members) != 0 {
		t.Fatalf("expected an empty member list, got %#v", pd.Members)
	}
}

// TestParseStaticModifierInsideProductBody guards against parseTypeBody
// never entering parsingProdBody: `static` must be legal on a member.
func TestParseStaticModifierInsideProductBody(t *testing.T) {
	s, sink := newTestState("type T { static fun f() { ret 1 } }")
	s.flags.parsingTopLevel = true
	d := s.parseDecl()

	if s.HasError() {
		t.Fatalf("expected no error, got diagnostics: %v", sink.messages())
	}

	pd, ok := d.(*ast.ProductTypeDecl)
	if !ok || len(pd.Members) != 1 {
		t.Fatalf("expected a product type with one member, got %#v", d)
	}
	fd, ok := pd.Members[0].(*ast.FuncDecl)
	if !ok || !fd.Modifiers.Static {
		t.Fatalf("expected a static member function, got %#v", pd.Members[0])
	}
}

// TestParseNestedViewDeclWarnsOutsideTopLevel guards against
// parsingTopLevel staying true forever: a view nested in a product body
// must still be flagged as illegal.
func TestParseNestedViewDeclWarnsOutsideTopLevel(t *testing.T) {
	s, sink := newTestState("type T { view V {} }")
	s.flags.parsingTopLevel = true
	d := s.parseDecl()

	if s.HasError() {
		t.Fatalf("expected only a warning, not a hard error, got diagnostics: %v", sink.messages())
	}
	pd, ok := d.(*ast.ProductTypeDecl)
	if !ok || len(pd.Members) != 1 {
		t.Fatalf("expected a product type with one member, got %#v", d)
	}

	found := false
	for _, m := range sink.messages() {
		if m == "view declarations must appear at top level" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a %q diagnostic, got %v", "view declarations must appear at top level", sink.messages())
	}
}
