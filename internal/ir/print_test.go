package ir

import (
	"strings"
	"testing"

	"chai/internal/types"
)

func TestFunctionReprIncludesSignatureAndBlocks(t *testing.T) {
	intType := &types.Named{Name: "int", ID: "int"}
	f := NewFunction(testFunctionID("add"), "add", noRange(), LinkagePublic, []types.Type{intType, intType}, intType, nil)

	entry := f.AppendBlock([]types.Type{intType, intType})
	f.Block(entry).AppendInstruction(Instruction{
		Op:       Return,
		Operands: []Operand{BlockParamOperand{Block: entry, Index: 0}},
	})

	repr := f.Repr()
	if !strings.Contains(repr, "func @add.lowered") {
		t.Fatalf("expected Repr to contain the function's declaration line, got: %s", repr)
	}
	if !strings.Contains(repr, "return") {
		t.Fatalf("expected Repr to contain the return instruction, got: %s", repr)
	}
}

func TestModuleReprConcatenatesFunctions(t *testing.T) {
	mod := NewModule()
	mod.AddFunction(NewFunction(testFunctionID("a"), "a", noRange(), LinkagePrivate, nil, nil, nil))
	mod.AddFunction(NewFunction(testFunctionID("b"), "b", noRange(), LinkagePrivate, nil, nil, nil))

	repr := mod.Repr()
	if !strings.Contains(repr, "a.lowered") || !strings.Contains(repr, "b.lowered") {
		t.Fatalf("expected module Repr to mention both functions, got: %s", repr)
	}
}

func TestDebugDumpRendersValue(t *testing.T) {
	out := DebugDump(ConstInt{Val: 42, Typ: &types.Named{Name: "int", ID: "int"}})
	if out == "" {
		t.Fatalf("expected DebugDump to produce non-empty output")
	}
}
