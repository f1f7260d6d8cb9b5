package ir

import (
	"fmt"

	"chai/internal/types"
)

// Operand is one operand of an Instruction: a constant, a block parameter,
// or another instruction's result, per spec.md §3.
type Operand interface {
	Repr() string
}

// ConstOperand wraps a Constant as an operand.
type ConstOperand struct {
	Value Constant
}

func (o ConstOperand) Repr() string { return o.Value.Repr() }

// BlockParamOperand refers to the index-th input of a block, per spec.md
// §3's `(block_id, index)` operand form.
type BlockParamOperand struct {
	Block BlockID
	Index int
}

func (o BlockParamOperand) Repr() string { return fmt.Sprintf("%s.p%d", o.Block, o.Index) }

// ResultOperand refers to the result of a previously-appended instruction,
// per spec.md §3's `(instruction_id)` operand form.
type ResultOperand struct {
	Instr InstructionID
}

func (o ResultOperand) Repr() string { return "%" + o.Instr.String() }

// -----------------------------------------------------------------------------

// Constant is a compile-time-known value usable as an Operand. It is the
// generalization of the teacher's mir.Constant{Value string, Type
// typing.DataType} to the several literal/reference shapes spec.md §3's
// `Operand ::= constant | ...` leaves otherwise unspecified.
type Constant interface {
	Repr() string
}

// ConstInt is an integer, boolean, or pointer-sized constant.
type ConstInt struct {
	Val int64
	Typ types.Type
}

func (c ConstInt) Repr() string { return fmt.Sprintf("%d:%s", c.Val, c.Typ.Repr()) }

// ConstFloat is a floating-point constant.
type ConstFloat struct {
	Val float64
	Typ types.Type
}

func (c ConstFloat) Repr() string { return fmt.Sprintf("%g:%s", c.Val, c.Typ.Repr()) }

// ConstBool is a boolean constant.
type ConstBool struct {
	Val bool
}

func (c ConstBool) Repr() string {
	if c.Val {
		return "true"
	}
	return "false"
}

// FuncRef names a function as a constant, used as the callee operand of
// Call and the value of a function-pointer-typed constant. Monomorphizing
// an instruction whose operand is a FuncRef requires monomorphizing the
// referenced function too, per spec.md §4.F step 5.
type FuncRef struct {
	ID FunctionID
}

func (c FuncRef) Repr() string { return "@" + c.ID.String() }

// GlobalRef names a module-level global as a constant, the operand of
// GlobalAddr.
type GlobalRef struct {
	Name string
	Typ  types.Type
}

func (c GlobalRef) Repr() string { return "@" + c.Name }

// MetatypeConst carries a type as a runtime-passable constant value (a
// generic type parameter instantiated as a value), per spec.md §4.F step
// 5's "metatypes are specialized" operand-rewrite rule.
type MetatypeConst struct {
	Typ types.Type
}

func (c MetatypeConst) Repr() string { return "type:" + c.Typ.Repr() }
