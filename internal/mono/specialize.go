package mono

import (
	"chai/internal/ast"
	"chai/internal/diag"
	"chai/internal/ir"
	"chai/internal/types"
)

// MonomorphizeFunction implements spec.md §4.F steps 1-5 for one base
// function under one specialization map: memoize-or-build a non-generic
// copy, visiting blocks in dominator-BFS order so every operand's
// definition is rewritten before any of its uses.
func (mo *Monomorphizer) MonomorphizeFunction(base *ir.Function, spec types.Specialization, scope ast.DeclSpaceID) *ir.Function {
	canon := mo.canonicalizeSpec(spec, scope)

	// Step 1: memoization, checked before any work begins — this is what
	// terminates a recursive generic function and avoids rebuilding a
	// specialization already produced for another call site.
	key := memoKey{base: base.ID, canon: canon.Canonical()}
	if existing, ok := mo.memo[key]; ok {
		return existing
	}

	// Step 2: declare the specialized function with empty blocks, and
	// memoize it immediately — before its body is walked — so a call
	// inside base's own body back to base (direct or mutual recursion)
	// resolves to this same target instead of recursing forever.
	target := mo.declareTarget(base, canon, scope)
	mo.memo[key] = target
	mo.module.AddFunction(target)

	if !base.HasBody() {
		return target
	}

	// Step 3: one target block per source block, same order, with
	// specialized input types; remember the mapping.
	blockMap := make(map[ir.BlockID]ir.BlockID, len(base.BlockOrder()))
	for _, bid := range base.BlockOrder() {
		b := base.Block(bid)
		inputs := make([]types.Type, len(b.Inputs))
		for i, t := range b.Inputs {
			inputs[i] = mo.specializeAndCanonicalize(t, canon, scope)
		}
		blockMap[bid] = target.AppendBlock(inputs)
	}

	// Step 4: dominator-BFS visitation order.
	cfg := ir.BuildCFG(base)
	dom := ir.BuildDomTree(base, cfg)

	// Step 5: rewrite every instruction, in source order within each
	// block, populating the source->target instruction table
	// incrementally as each is appended.
	resultMap := make(map[ir.InstructionID]ir.InstructionID)
	for _, bid := range dom.BFSOrder() {
		src := base.Block(bid)
		dst := target.Block(blockMap[bid])
		for _, instr := range src.Instructions() {
			rewritten := mo.rewriteInstruction(instr, canon, scope, blockMap, resultMap)
			newID := dst.AppendInstruction(rewritten)
			resultMap[instr.ID()] = newID
		}
	}

	return target
}

// declareTarget builds the empty, specialized function shell of step 2.
// Its FunctionID keeps base's Kind/serialized suffix but folds the
// canonical specialization into Decl, so distinct specializations of the
// same base never collide as Module keys while base's own
// "<decl>.lowered"-shaped String() still renders per spec.md §6 when the
// specialization is empty (the non-generic common case).
func (mo *Monomorphizer) declareTarget(base *ir.Function, canon types.Specialization, scope ast.DeclSpaceID) *ir.Function {
	id := base.ID
	if s := canon.Canonical(); s != "" {
		id.Decl = base.ID.Decl + "<" + s + ">"
	}

	inputs := make([]types.Type, len(base.Inputs))
	for i, t := range base.Inputs {
		inputs[i] = mo.specializeAndCanonicalize(t, canon, scope)
	}
	output := mo.specializeAndCanonicalize(base.Output, canon, scope)

	return ir.NewFunction(id, base.Name, base.Anchor, base.Linkage, inputs, output, nil)
}

func (mo *Monomorphizer) specializeAndCanonicalize(t types.Type, spec types.Specialization, scope ast.DeclSpaceID) types.Type {
	return mo.prog.Canonical(mo.prog.SpecializeType(t, spec, scope), scope)
}

// canonicalizeSpec is spec.md §4.F's "Type canonicalization": every
// specialized type is passed through canonical(_, in: scope) before being
// installed, including the argument types making up the specialization
// map itself, so two calls that infer the same types via different paths
// memoize to the same target.
func (mo *Monomorphizer) canonicalizeSpec(spec types.Specialization, scope ast.DeclSpaceID) types.Specialization {
	out := make(types.Specialization, len(spec))
	for id, arg := range spec {
		if arg.Type != nil {
			out[id] = types.Arg{Type: mo.prog.Canonical(arg.Type, scope)}
		} else {
			out[id] = arg
		}
	}
	return out
}

// rewriteInstruction is spec.md §4.F step 5's per-instruction rewrite: an
// equivalent instruction with specialized operands, type, and (for
// Call/Project) composed specialization. The switch is total over every
// opcode internal/ir/instr.go enumerates; an unhandled one is an internal
// invariant violation, per spec.md §4.F "Instruction coverage".
func (mo *Monomorphizer) rewriteInstruction(instr *ir.Instruction, spec types.Specialization, scope ast.DeclSpaceID, blockMap map[ir.BlockID]ir.BlockID, resultMap map[ir.InstructionID]ir.InstructionID) ir.Instruction {
	out := ir.Instruction{
		Op:         instr.Op,
		Anchor:     instr.Anchor,
		Field:      instr.Field,
		Text:       instr.Text,
		Convention: instr.Convention,
	}

	if instr.Type != nil {
		out.Type = mo.specializeAndCanonicalize(instr.Type, spec, scope)
	}
	if instr.Receiver != nil {
		out.Receiver = mo.specializeAndCanonicalize(instr.Receiver, spec, scope)
	}

	// The callee constant of a Call/Project (always Operands[0]) is
	// resolved separately below, against the *composed* specialization
	// rather than this function's own — skip it here so it is never
	// monomorphized twice under two different specializations.
	calleeOperand := instr.Op == ir.Call || instr.Op == ir.Project

	out.Operands = make([]ir.Operand, len(instr.Operands))
	for i, op := range instr.Operands {
		if i == 0 && calleeOperand {
			continue
		}
		out.Operands[i] = mo.rewriteOperand(op, spec, scope, blockMap, resultMap)
	}

	out.Targets = make([]ir.BlockID, len(instr.Targets))
	for i, t := range instr.Targets {
		out.Targets[i] = blockMap[t]
	}

	if len(instr.Cases) > 0 {
		out.Cases = make([]ir.SwitchCase, len(instr.Cases))
		for i, c := range instr.Cases {
			out.Cases[i] = ir.SwitchCase{
				Value:  mo.rewriteConstant(c.Value, spec, scope),
				Target: blockMap[c.Target],
			}
		}
	}

	switch instr.Op {
	case ir.Call, ir.Project:
		// Step 6: specialization composition. instr.Spec is keyed by the
		// callee's own generic parameters, whose argument types may
		// themselves mention base's generic parameters; compose it
		// through the specialization this function is being rewritten
		// under, in the callee's scope of use.
		out.Spec = mo.prog.SpecializeMap(instr.Spec, spec, scope)

		// The callee constant (always Operands[0], left unset by the loop
		// above) is resolved against the composed specialization, not this
		// function's own — steps 6/7 require the *composed* spec, and
		// step 7 additionally routes a trait-requirement callee through
		// conformance lookup.
		if len(instr.Operands) > 0 {
			if co, ok := instr.Operands[0].(ir.ConstOperand); ok {
				if ref, ok := co.Value.(ir.FuncRef); ok {
					out.Operands[0] = mo.resolveCalleeOperand(ref, out.Receiver, out.Spec, scope)
				}
			}
			if out.Operands[0] == nil {
				out.Operands[0] = mo.rewriteOperand(instr.Operands[0], spec, scope, blockMap, resultMap)
			}
		}

	case ir.AllocStack, ir.DeallocStack, ir.Load, ir.Store, ir.MarkState,
		ir.AddressToPointer, ir.PointerToAddress, ir.AdvancedByBytes, ir.AdvancedByStrides, ir.SubfieldView,
		ir.Branch, ir.CondBranch, ir.Switch, ir.Return, ir.Unreachable,
		ir.Access, ir.EndAccess, ir.CaptureIn, ir.OpenCapture, ir.CloseCapture, ir.ReleaseCaptures,
		ir.OpenUnion, ir.CloseUnion, ir.UnionDiscriminator,
		ir.CallFFI, ir.LLVMInstruction, ir.EndProject, ir.ConstantString, ir.GlobalAddr, ir.Yield:
		// No opcode-specific rewrite beyond the generic operand/type/
		// target handling above.

	default:
		diag.ICE("monomorphizer: unrecognized instruction kind %s", instr.Op)
	}

	return out
}

func (mo *Monomorphizer) rewriteOperand(op ir.Operand, spec types.Specialization, scope ast.DeclSpaceID, blockMap map[ir.BlockID]ir.BlockID, resultMap map[ir.InstructionID]ir.InstructionID) ir.Operand {
	switch v := op.(type) {
	case ir.ConstOperand:
		return ir.ConstOperand{Value: mo.rewriteConstant(v.Value, spec, scope)}

	case ir.BlockParamOperand:
		target, ok := blockMap[v.Block]
		if !ok {
			diag.ICE("monomorphizer: block parameter %s refers to an unmapped block", v.Block)
		}
		return ir.BlockParamOperand{Block: target, Index: v.Index}

	case ir.ResultOperand:
		target, ok := resultMap[v.Instr]
		if !ok {
			diag.ICE("monomorphizer: operand %s used before its definition was rewritten", v.Instr)
		}
		return ir.ResultOperand{Instr: target}

	default:
		diag.ICE("monomorphizer: unrecognized operand kind %T", op)
		return nil
	}
}

// rewriteConstant is spec.md §4.F step 5's "constants are mapped:
// function references are themselves monomorphized; metatypes are
// specialized".
func (mo *Monomorphizer) rewriteConstant(c ir.Constant, spec types.Specialization, scope ast.DeclSpaceID) ir.Constant {
	switch v := c.(type) {
	case ir.FuncRef:
		callee, ok := mo.module.Function(v.ID)
		if !ok || len(callee.Generic) == 0 {
			// Either an external/FFI reference with no IR body, or
			// already non-generic: nothing to specialize.
			return v
		}
		return ir.FuncRef{ID: mo.MonomorphizeFunction(callee, spec, scope).ID}

	case ir.MetatypeConst:
		return ir.MetatypeConst{Typ: mo.specializeAndCanonicalize(v.Typ, spec, scope)}

	case ir.ConstInt:
		return ir.ConstInt{Val: v.Val, Typ: mo.specializeAndCanonicalize(v.Typ, spec, scope)}

	case ir.ConstFloat:
		return ir.ConstFloat{Val: v.Val, Typ: mo.specializeAndCanonicalize(v.Typ, spec, scope)}

	case ir.ConstBool:
		return v

	case ir.GlobalRef:
		return ir.GlobalRef{Name: v.Name, Typ: mo.specializeAndCanonicalize(v.Typ, spec, scope)}

	default:
		diag.ICE("monomorphizer: unrecognized constant kind %T", c)
		return nil
	}
}
