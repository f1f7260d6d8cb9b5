package mono

import (
	"testing"

	"chai/internal/ast"
	"chai/internal/ir"
	"chai/internal/source"
	"chai/internal/types"
	"chai/internal/typesvc"
)

func namedType(name string) *types.Named { return &types.Named{Name: name, ID: name} }

// buildIdentity constructs `identity<T>(x: T) -> T { return x }` as IR: one
// block taking a single input of the generic parameter's type, returning it
// unchanged.
func buildIdentity() (*ir.Function, types.GenericParamID) {
	id := ir.FunctionID{Kind: ir.FuncLowered, Decl: "identity"}
	paramID := types.GenericParamID{OwnerID: id.String(), Index: 0}
	param := &types.Param{ID: paramID, Name: "T"}

	f := ir.NewFunction(id, "identity", source.Range{}, ir.LinkagePublic,
		[]types.Type{param}, param,
		[]ir.GenericParam{{ID: paramID, Name: "T"}})

	entry := f.AppendBlock([]types.Type{param})
	f.Block(entry).AppendInstruction(ir.Instruction{
		Op:       ir.Return,
		Operands: []ir.Operand{ir.BlockParamOperand{Block: entry, Index: 0}},
	})

	return f, paramID
}

func TestMonomorphizeFunctionSpecializesBlockInputs(t *testing.T) {
	f, paramID := buildIdentity()

	mod := ir.NewModule()
	mod.AddFunction(f)

	prog := typesvc.NewStandinProgram()
	mo := New(mod, prog)

	spec := types.Specialization{paramID: {Type: namedType("int")}}
	target := mo.MonomorphizeFunction(f, spec, ast.NoDeclSpace)

	if len(target.Generic) != 0 {
		t.Fatalf("monomorphized target must not itself be generic")
	}

	entry := target.Entry()
	inputs := target.Block(entry).Inputs
	if len(inputs) != 1 || inputs[0].Repr() != "int" {
		t.Fatalf("expected specialized block input type int, got %v", inputs)
	}

	term := target.Block(entry).Terminator()
	if term.Op != ir.Return {
		t.Fatalf("expected a Return terminator, got %s", term.Op)
	}
	if bp, ok := term.Operands[0].(ir.BlockParamOperand); !ok || bp.Block != entry {
		t.Fatalf("expected the return operand to reference the specialized entry block's own parameter")
	}
}

func TestMonomorphizeFunctionMemoizes(t *testing.T) {
	f, paramID := buildIdentity()

	mod := ir.NewModule()
	mod.AddFunction(f)

	mo := New(mod, typesvc.NewStandinProgram())
	spec := types.Specialization{paramID: {Type: namedType("int")}}

	first := mo.MonomorphizeFunction(f, spec, ast.NoDeclSpace)
	second := mo.MonomorphizeFunction(f, spec, ast.NoDeclSpace)

	if first != second {
		t.Fatalf("expected the same specialization to memoize to one target function")
	}
}

func TestMonomorphizeFunctionDistinctSpecializationsDiffer(t *testing.T) {
	f, paramID := buildIdentity()

	mod := ir.NewModule()
	mod.AddFunction(f)

	mo := New(mod, typesvc.NewStandinProgram())

	intTarget := mo.MonomorphizeFunction(f, types.Specialization{paramID: {Type: namedType("int")}}, ast.NoDeclSpace)
	strTarget := mo.MonomorphizeFunction(f, types.Specialization{paramID: {Type: namedType("string")}}, ast.NoDeclSpace)

	if intTarget.ID == strTarget.ID {
		t.Fatalf("expected distinct specializations of the same base to produce distinct targets")
	}
}

func TestRunRewritesCallToGenericCallee(t *testing.T) {
	identity, paramID := buildIdentity()

	callerID := ir.FunctionID{Kind: ir.FuncLowered, Decl: "caller"}
	caller := ir.NewFunction(callerID, "caller", source.Range{}, ir.LinkagePrivate, nil, namedType("int"), nil)
	entry := caller.AppendBlock(nil)

	spec := types.Specialization{paramID: {Type: namedType("int")}}
	callInstr := ir.Instruction{
		Op: ir.Call,
		Operands: []ir.Operand{
			ir.ConstOperand{Value: ir.FuncRef{ID: identity.ID}},
			ir.ConstOperand{Value: ir.ConstInt{Val: 1, Typ: namedType("int")}},
		},
		Spec: spec,
	}
	callID := caller.Block(entry).AppendInstruction(callInstr)
	caller.Block(entry).AppendInstruction(ir.Instruction{
		Op:       ir.Return,
		Operands: []ir.Operand{ir.ResultOperand{Instr: callID}},
	})

	mod := ir.NewModule()
	mod.AddFunction(identity)
	mod.AddFunction(caller)

	mo := New(mod, typesvc.NewStandinProgram())
	mo.Run(ast.NoDeclSpace)

	rewritten := caller.Block(entry).Instruction(callID)
	ref, ok := rewritten.Operands[0].(ir.ConstOperand).Value.(ir.FuncRef)
	if !ok {
		t.Fatalf("expected the call's callee operand to remain a FuncRef")
	}
	if ref.ID == identity.ID {
		t.Fatalf("expected the call to be retargeted at a monomorphized copy, not the generic base")
	}

	if _, ok := mod.Function(ref.ID); !ok {
		t.Fatalf("expected the monomorphized target to be registered in the module")
	}
}
