package ir

import (
	"strings"

	"github.com/kr/pretty"
)

// Repr renders a block as `<function id>:bN(inputs):` followed by its
// instructions,
// mirroring the teacher's ir.Block.Repr()/mir.Block.Repr() text-dump shape.
func (b *Block) Repr() string {
	sb := strings.Builder{}
	sb.WriteString(b.id.String())
	sb.WriteRune('(')
	for i, t := range b.Inputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.Repr())
	}
	sb.WriteString("):\n")

	for _, instr := range b.Instructions() {
		sb.WriteString("  ")
		sb.WriteString(instr.Repr())
		sb.WriteRune('\n')
	}

	return sb.String()
}

// Repr renders a function as its declaration line followed by every
// block's Repr, mirroring the teacher's ir.FuncDef.Repr()/ir.Bundle.Repr().
func (f *Function) Repr() string {
	sb := strings.Builder{}
	sb.WriteString("func @")
	sb.WriteString(f.ID.String())
	sb.WriteRune('(')
	for i, t := range f.Inputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.Repr())
	}
	sb.WriteString(") -> ")
	if f.Output != nil {
		sb.WriteString(f.Output.Repr())
	}
	sb.WriteString(":\n")

	for _, b := range f.Blocks() {
		sb.WriteString(b.Repr())
	}

	return sb.String()
}

// Repr renders every function of a module, in registration order.
func (m *Module) Repr() string {
	sb := strings.Builder{}
	for _, f := range m.Functions() {
		sb.WriteString(f.Repr())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// DebugDump renders v with kr/pretty's structural formatter, for debugging
// where the compact Repr text above doesn't show enough (e.g. an
// Instruction's exact Cases table or a type's internals).
func DebugDump(v any) string {
	return pretty.Sprint(v)
}
