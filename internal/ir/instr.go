package ir

import (
	"strconv"
	"strings"

	"chai/internal/source"
	"chai/internal/types"
)

// Opcode enumerates every instruction kind spec.md §3 names. The rewriter
// in internal/mono switches exhaustively over this enum; an unrecognized
// value is an internal invariant violation (spec.md §4.F "Instruction
// coverage"), never a silent skip.
type Opcode int

const (
	// Memory operations.
	AllocStack Opcode = iota
	DeallocStack
	Load
	Store
	MarkState
	AddressToPointer
	PointerToAddress
	AdvancedByBytes
	AdvancedByStrides
	SubfieldView

	// Control flow. Per spec.md §3, a terminator appears only as the last
	// instruction of a block.
	Branch
	CondBranch
	Switch
	Return
	Unreachable

	// Capability / access tracking.
	Access
	EndAccess
	CaptureIn
	OpenCapture
	CloseCapture
	ReleaseCaptures

	// Union handling.
	OpenUnion
	CloseUnion
	UnionDiscriminator

	// Calls.
	Call
	CallFFI
	LLVMInstruction

	// Projections.
	Project
	EndProject

	// Literals.
	ConstantString
	GlobalAddr

	// Generator yield.
	Yield
)

var opcodeNames = [...]string{
	AllocStack:         "alloc_stack",
	DeallocStack:       "dealloc_stack",
	Load:               "load",
	Store:              "store",
	MarkState:          "mark_state",
	AddressToPointer:   "address_to_pointer",
	PointerToAddress:   "pointer_to_address",
	AdvancedByBytes:    "advanced_by_bytes",
	AdvancedByStrides:  "advanced_by_strides",
	SubfieldView:       "subfield_view",
	Branch:             "branch",
	CondBranch:         "cond_branch",
	Switch:             "switch",
	Return:             "return",
	Unreachable:        "unreachable",
	Access:             "access",
	EndAccess:          "end_access",
	CaptureIn:          "capture_in",
	OpenCapture:        "open_capture",
	CloseCapture:       "close_capture",
	ReleaseCaptures:    "release_captures",
	OpenUnion:          "open_union",
	CloseUnion:         "close_union",
	UnionDiscriminator: "union_discriminator",
	Call:               "call",
	CallFFI:            "call_ffi",
	LLVMInstruction:    "llvm_instruction",
	Project:            "project",
	EndProject:         "end_project",
	ConstantString:     "constant_string",
	GlobalAddr:         "global_addr",
	Yield:              "yield",
}

func (op Opcode) String() string { return opcodeNames[op] }

// isTerminator reports whether op may only appear as the last instruction
// of a block, per spec.md §3.
func (op Opcode) isTerminator() bool {
	switch op {
	case Branch, CondBranch, Switch, Return, Unreachable, Yield:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// SwitchCase pairs a case constant with the block to branch to when an
// instruction's scrutinee equals it; see Instruction.Cases.
type SwitchCase struct {
	Value  Constant
	Target BlockID
}

// Instruction is a single operation within a block, tagged by Op per
// spec.md §3, generalizing the teacher's flat `mir.Instruction{OpCode int,
// Operands []Value}` with the extra per-opcode fields a real block-CFG
// needs (successor blocks, field indices, FFI conventions) that the
// teacher's blockless MIR never required.
type Instruction struct {
	id     InstructionID
	Op     Opcode
	Type   types.Type // result type; nil for void instructions and terminators
	Anchor source.Range

	Operands []Operand

	// Targets holds successor blocks for control-flow opcodes: Branch has
	// exactly one; CondBranch has exactly two, ordered (then, else); Switch
	// holds one per Cases entry plus a trailing default block.
	Targets []BlockID

	// Cases holds the (value, target) table for Switch.
	Cases []SwitchCase

	// Field is the subfield/tuple-element index for SubfieldView and
	// Project.
	Field int

	// Text carries the raw instruction text for LLVMInstruction and the
	// literal value for ConstantString/GlobalAddr(Name stored in Text too).
	Text string

	// Convention is the calling convention name for CallFFI.
	Convention string

	// Spec is the specialization the external type-checker inferred for
	// this call/projection site's generic callee or subscript, per
	// spec.md §4.F's entry point ("for each function with a body ...
	// replace any Call to a generic callee ... with references to
	// specialized versions"). Empty when the callee/subscript is already
	// non-generic.
	Spec types.Specialization

	// Receiver is the concrete-or-still-generic model type a Call
	// targeting a trait requirement is being made against, the `T` in
	// spec.md §4.F step 7's `conformance(of: receiverModel, to: trait,
	// exposedTo: scopeOfUse)`. Nil unless the callee is a requirement.
	Receiver types.Type
}

// ID returns the instruction's stable handle.
func (i *Instruction) ID() InstructionID { return i.id }

// IsTerminator reports whether this instruction is a block terminator.
func (i *Instruction) IsTerminator() bool { return i.Op.isTerminator() }

// Repr renders the instruction for debugging dumps, following the
// teacher's `op operand, operand, ...` Repr shape (mir.Instruction.Repr /
// ir.Instruction.Repr).
func (i *Instruction) Repr() string {
	sb := strings.Builder{}
	if i.Type != nil {
		sb.WriteRune('%')
		sb.WriteString(i.id.String())
		sb.WriteString(" = ")
	}

	sb.WriteString(i.Op.String())

	switch i.Op {
	case SubfieldView, Project:
		sb.WriteRune(' ')
		sb.WriteString(strconv.Itoa(i.Field))
	case CallFFI:
		sb.WriteString(" [")
		sb.WriteString(i.Convention)
		sb.WriteRune(']')
	case LLVMInstruction, ConstantString, GlobalAddr:
		sb.WriteString(" \"")
		sb.WriteString(i.Text)
		sb.WriteRune('"')
	}

	for _, o := range i.Operands {
		sb.WriteRune(' ')
		sb.WriteString(o.Repr())
	}

	for _, t := range i.Targets {
		sb.WriteString(" -> ")
		sb.WriteString(t.String())
	}

	for _, c := range i.Cases {
		sb.WriteString(" case ")
		sb.WriteString(c.Value.Repr())
		sb.WriteString(" -> ")
		sb.WriteString(c.Target.String())
	}

	return sb.String()
}
