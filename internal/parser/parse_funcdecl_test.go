package parser

import (
	"testing"

	"chai/internal/ast"
	"chai/internal/source"
)

// TestParseFuncDeclRecoversMalformedParamList is spec.md §8 scenario 4: a
// function whose parameter list cannot be parsed still yields a best-effort
// FuncDecl, with the malformed parameter list recovered to empty rather than
// the whole declaration being discarded.
func TestParseFuncDeclRecoversMalformedParamList(t *testing.T) {
	mgr := source.NewManager()
	file := mgr.LoadSynthesized("test.chai", "fun f( -> Int { ret 1 }")
	sink := &testSink{}

	unit := ParseUnit(file, sink)

	if !unit.HasErr {
		t.Fatalf("expected the malformed parameter list to raise an error")
	}
	found := false
	for _, d := range sink.diags {
		if d.Message == "expected parameter list" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a %q diagnostic, got %v", "expected parameter list", sink.messages())
	}

	if len(unit.Decls) != 1 {
		t.Fatalf("expected exactly one surviving declaration, got %d", len(unit.Decls))
	}

	fd, ok := unit.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected the declaration to survive as a *ast.FuncDecl, got %T", unit.Decls[0])
	}
	if fd.Name != "f" {
		t.Fatalf("expected the function's name to survive as \"f\", got %q", fd.Name)
	}
	if len(fd.Params) != 0 {
		t.Fatalf("expected an empty recovered parameter list, got %v", fd.Params)
	}

	out, ok := fd.Output.(*ast.BareIdentSig)
	if !ok || out.Name != "Int" {
		t.Fatalf("expected the return sign to survive as Int, got %#v", fd.Output)
	}

	if fd.Body == nil || len(fd.Body.Stmts) != 1 {
		t.Fatalf("expected a one-statement body to survive, got %#v", fd.Body)
	}
	if _, ok := fd.Body.Stmts[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("expected the body's statement to be a return statement, got %#v", fd.Body.Stmts[0])
	}
}
