// Package mono implements the monomorphizer (depolymorphizer) of spec.md
// §4.F: rewriting calls and subscript projections that target a generic
// function into references to a specialized, non-generic copy, memoized
// by `(base_id, canonical_specialization)`. Grounded on the teacher's
// `mir.lowerer`/`mir.lower_def.go` — the teacher's own generic-HIR to
// monomorphic-MIR lowering pass, the closest analog in the corpus — but
// restructured around internal/ir's stable block/instruction handles
// instead of the teacher's flat `[]Statement` list, which has no blocks
// to dominate one another.
package mono

import (
	"chai/internal/ast"
	"chai/internal/diag"
	"chai/internal/ir"
	"chai/internal/types"
	"chai/internal/typesvc"
)

// memoKey is the `(base_id, canonical_specialization)` identity spec.md
// §4.F step 1 memoizes monomorphic copies under.
type memoKey struct {
	base  ir.FunctionID
	canon string
}

// Monomorphizer drives the pass over one module. It is single-threaded
// and synchronous, per spec.md §5.
type Monomorphizer struct {
	module *ir.Module
	prog   typesvc.Program
	memo   map[memoKey]*ir.Function
}

// New creates a Monomorphizer over module, resolving specialize/canonical/
// conformance calls through prog.
func New(module *ir.Module, prog typesvc.Program) *Monomorphizer {
	return &Monomorphizer{module: module, prog: prog, memo: make(map[memoKey]*ir.Function)}
}

// Run is spec.md §4.F's module-level entry point: every non-generic
// function with a body has its Calls/Projects through generic callees
// rewritten in place; every generic public function with a body is instead
// passed to Existentialize, which returns it unchanged.
func (mo *Monomorphizer) Run(scope ast.DeclSpaceID) {
	for _, f := range mo.module.Functions() {
		if !f.HasBody() {
			continue
		}

		if len(f.Generic) == 0 {
			mo.rewriteBody(f, nil, scope)
		} else if f.Linkage&ir.LinkagePublic != 0 {
			mo.Existentialize(f)
		}
	}
}

// Existentialize is the existentialized-wrapper stub spec.md §9 leaves
// unimplemented: a real implementation would synthesize a function that
// type-erases f's generic parameters behind a vtable-style dispatch. This
// returns f unchanged, which is a safe (if unoptimized) default — callers
// still see a valid function, just not an existentialized one.
func (mo *Monomorphizer) Existentialize(f *ir.Function) *ir.Function {
	return f
}

// rewriteBody rewrites every Call/Project in f in place, monomorphizing
// whatever generic callee/subscript each one names. outerSpec is the
// specialization in force because f itself is being monomorphized (nil at
// the module-level entry point, where f is already non-generic).
func (mo *Monomorphizer) rewriteBody(f *ir.Function, outerSpec types.Specialization, scope ast.DeclSpaceID) {
	for _, bid := range f.BlockOrder() {
		b := f.Block(bid)
		for _, instr := range b.Instructions() {
			switch instr.Op {
			case ir.Call, ir.Project:
				mo.rewriteCalleeInPlace(instr, outerSpec, scope)
			}
		}
	}
}

// rewriteCalleeInPlace implements spec.md §4.F's entry-point rewrite for
// one Call/Project: if it targets a generic callee, it is pointed at the
// monomorphized copy for its composed specialization.
func (mo *Monomorphizer) rewriteCalleeInPlace(instr *ir.Instruction, outerSpec types.Specialization, scope ast.DeclSpaceID) {
	if len(instr.Operands) == 0 {
		return
	}

	co, ok := instr.Operands[0].(ir.ConstOperand)
	if !ok {
		return
	}
	ref, ok := co.Value.(ir.FuncRef)
	if !ok {
		return
	}

	callee, ok := mo.module.Function(ref.ID)
	if !ok || len(callee.Generic) == 0 {
		return
	}

	composed := instr.Spec
	if outerSpec != nil {
		composed = mo.prog.SpecializeMap(instr.Spec, outerSpec, scope)
	}

	target := mo.resolveCallee(callee, instr.Receiver, composed, scope)
	instr.Operands[0] = ir.ConstOperand{Value: ir.FuncRef{ID: target.ID}}
}

// resolveCallee implements spec.md §4.F step 7: if callee is a trait
// requirement, it is resolved through a conformance lookup first and the
// *implementation* is monomorphized; otherwise callee itself is.
func (mo *Monomorphizer) resolveCallee(callee *ir.Function, receiver types.Type, spec types.Specialization, scope ast.DeclSpaceID) *ir.Function {
	if callee.Requirement == nil {
		return mo.MonomorphizeFunction(callee, spec, scope)
	}

	if receiver == nil {
		diag.ICE("monomorphizer: call to requirement %s has no receiver model", callee.Requirement.Name)
	}

	conf, ok := mo.prog.Conformance(receiver, callee.Requirement.Trait, scope)
	if !ok {
		diag.ICE("monomorphizer: %s does not conform to %s", receiver.Repr(), callee.Requirement.Trait.Repr())
	}

	implID, ok := conf.Requirements[callee.Requirement.Name]
	if !ok {
		diag.ICE("monomorphizer: conformance of %s to %s has no implementation for %s", receiver.Repr(), callee.Requirement.Trait.Repr(), callee.Requirement.Name)
	}

	impl, ok := mo.module.Function(implID)
	if !ok {
		diag.ICE("monomorphizer: conformance implementation %s not found in module", implID)
	}

	if len(impl.Generic) == 0 {
		return impl
	}
	return mo.MonomorphizeFunction(impl, spec, scope)
}

// resolveCalleeOperand is rewriteInstruction's hook back into resolveCallee:
// a Call/Project's callee constant, resolved against the composed
// specialization and (if callee is a requirement) conformance lookup,
// rather than the generic per-operand rewrite every other constant goes
// through. Non-generic and unresolvable (FFI-only) references pass through
// unchanged.
func (mo *Monomorphizer) resolveCalleeOperand(ref ir.FuncRef, receiver types.Type, spec types.Specialization, scope ast.DeclSpaceID) ir.Operand {
	callee, ok := mo.module.Function(ref.ID)
	if !ok || len(callee.Generic) == 0 {
		return ir.ConstOperand{Value: ref}
	}
	target := mo.resolveCallee(callee, receiver, spec, scope)
	return ir.ConstOperand{Value: ir.FuncRef{ID: target.ID}}
}
