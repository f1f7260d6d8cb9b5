package typesvc

import (
	"testing"

	"chai/internal/ast"
	"chai/internal/ir"
	"chai/internal/types"
)

func TestSpecializeTypeSubstitutesParam(t *testing.T) {
	p := &types.Param{ID: types.GenericParamID{OwnerID: "f", Index: 0}, Name: "T"}
	spec := types.Specialization{p.ID: {Type: &types.Named{Name: "int", ID: "int"}}}

	prog := NewStandinProgram()
	got := prog.SpecializeType(p, spec, ast.NoDeclSpace)
	if got.Repr() != "int" {
		t.Fatalf("expected substituted type int, got %s", got.Repr())
	}
}

func TestSpecializeTypeLeavesUncoveredParamUntouched(t *testing.T) {
	p := &types.Param{ID: types.GenericParamID{OwnerID: "f", Index: 0}, Name: "T"}

	prog := NewStandinProgram()
	got := prog.SpecializeType(p, types.Specialization{}, ast.NoDeclSpace)
	if got.Repr() != "T" {
		t.Fatalf("expected param to pass through unsubstituted, got %s", got.Repr())
	}
}

func TestSpecializeMapComposesThroughOuter(t *testing.T) {
	outerParam := types.GenericParamID{OwnerID: "outer", Index: 0}
	innerParam := types.GenericParamID{OwnerID: "inner", Index: 0}

	inner := types.Specialization{
		innerParam: {Type: &types.Param{ID: outerParam, Name: "U"}},
	}
	outer := types.Specialization{
		outerParam: {Type: &types.Named{Name: "int", ID: "int"}},
	}

	prog := NewStandinProgram()
	composed := prog.SpecializeMap(inner, outer, ast.NoDeclSpace)

	if composed[innerParam].Type.Repr() != "int" {
		t.Fatalf("expected composed specialization to resolve to int, got %s", composed[innerParam].Repr())
	}
}

func TestCanonicalRebuildsStructurally(t *testing.T) {
	elem := &types.Named{Name: "int", ID: "int"}
	tuple := &types.Tuple{Elems: []types.Type{elem, elem}}

	prog := NewStandinProgram()
	a := prog.Canonical(tuple, ast.NoDeclSpace)
	b := prog.Canonical(&types.Tuple{Elems: []types.Type{elem, elem}}, ast.NoDeclSpace)

	if a.Repr() != b.Repr() {
		t.Fatalf("expected two structurally-equal tuples to canonicalize to the same representation")
	}
}

func TestConformanceLookup(t *testing.T) {
	model := &types.Named{Name: "Point", ID: "Point"}
	trait := &types.Named{Name: "Eq", ID: "Eq"}
	implID := ir.FunctionID{Kind: ir.FuncLowered, Decl: "Point.Eq.eq"}

	prog := NewStandinProgram()
	prog.RegisterConformance(Conformance{
		Model:        model,
		Trait:        trait,
		Requirements: map[string]ir.FunctionID{"eq": implID},
	})

	conf, ok := prog.Conformance(model, trait, ast.NoDeclSpace)
	if !ok {
		t.Fatalf("expected a registered conformance to be found")
	}
	if conf.Requirements["eq"] != implID {
		t.Fatalf("expected the registered implementation id to round-trip")
	}

	if _, ok := prog.Conformance(model, &types.Named{Name: "Ord", ID: "Ord"}, ast.NoDeclSpace); ok {
		t.Fatalf("expected no conformance for an unregistered trait")
	}
}
