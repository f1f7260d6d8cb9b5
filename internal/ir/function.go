package ir

import (
	"chai/internal/diag"
	"chai/internal/source"
	"chai/internal/types"
)

// FunctionIDKind distinguishes the function-identity cases spec.md §3/§6
// enumerates.
type FunctionIDKind int

const (
	FuncLowered FunctionIDKind = iota
	FuncConstructor
	FuncAccessor
	FuncInitializer
	FuncSynthesized
)

// FunctionID is a function's stable, comparable identity. It is
// deliberately a plain struct of strings/ints (not a handle into some
// other arena) so it can key the monomorphizer's `(base_id,
// canonical_specialization)` memo table directly, per spec.md §4.F step 1.
type FunctionID struct {
	Kind FunctionIDKind

	// Decl is the stable textual identity of the declaration this id
	// names (e.g. a `::`-qualified path through the declaration-space
	// tree). Always set.
	Decl string

	// ForType is set only when Kind == FuncSynthesized: the type the
	// requirement was synthesized for.
	ForType string
}

// String implements the serialization spec.md §6 specifies:
// "<decl>.lowered" | "<decl>.constructor" | "<decl>.accessor" |
// "<decl>.initializer" | "synthesized <decl> for <type>".
func (id FunctionID) String() string {
	switch id.Kind {
	case FuncConstructor:
		return id.Decl + ".constructor"
	case FuncAccessor:
		return id.Decl + ".accessor"
	case FuncInitializer:
		return id.Decl + ".initializer"
	case FuncSynthesized:
		return "synthesized " + id.Decl + " for " + id.ForType
	default:
		return id.Decl + ".lowered"
	}
}

// Linkage flags, following the bit-flag style of the teacher's
// ir.Bundle/IRSymbol linkage constants.
type Linkage int

const (
	LinkagePrivate  Linkage = 1 << iota // visible only within this module
	LinkagePublic                       // visible to importers
	LinkageExternal                     // defined elsewhere; this module only declares it
)

// GenericParam names one of a generic function's type/value parameters by
// stable identity, per spec.md §3's `generic_parameters`.
type GenericParam struct {
	ID   types.GenericParamID
	Name string
}

// Requirement names the trait and requirement a view-body function
// declaration stands for, per spec.md §4.F step 7.
type Requirement struct {
	Trait types.Type
	Name  string
}

// Function is spec.md §3's IR Function: `(name, anchor, linkage, inputs,
// output, blocks, generic_parameters)`. It owns its blocks through a
// generational-index container so appendBlock/removeBlock never disturb
// another block's address, per spec.md §4.E.
type Function struct {
	ID      FunctionID
	Name    string
	Anchor  source.Range
	Linkage Linkage

	Inputs  []types.Type // ParameterType, one per parameter
	Output  types.Type   // LoweredType
	Generic []GenericParam

	// Requirement, when non-nil, marks this function as a trait
	// requirement declared inside a view body: it has no blocks of its
	// own, and a Call naming it must be resolved through conformance
	// lookup (spec.md §4.F step 7) rather than monomorphized directly.
	Requirement *Requirement

	slots []blockSlot
	free  []int
	order []BlockID
}

// NewFunction creates an empty function with no blocks.
func NewFunction(id FunctionID, name string, anchor source.Range, linkage Linkage, inputs []types.Type, output types.Type, generic []GenericParam) *Function {
	return &Function{ID: id, Name: name, Anchor: anchor, Linkage: linkage, Inputs: inputs, Output: output, Generic: generic}
}

// HasBody reports whether the function has at least one block, spec.md
// §4.F's test for whether the monomorphizer's entry point has anything to
// rewrite ("for each function with a body").
func (f *Function) HasBody() bool { return len(f.order) > 0 }

// Entry returns the first block, per spec.md §3 "entry is the first
// block". Panics via ICE if the function has no blocks yet.
func (f *Function) Entry() BlockID {
	if len(f.order) == 0 {
		diag.ICE("Entry() called on function %s with no blocks", f.ID)
	}
	return f.order[0]
}

// Blocks returns the function's blocks in order.
func (f *Function) Blocks() []*Block {
	out := make([]*Block, len(f.order))
	for i, id := range f.order {
		out[i] = f.mustResolve(id)
	}
	return out
}

// BlockOrder returns the function's block handles in order, without
// resolving them — the shape internal/ir/cfg.go and dominator.go need to
// walk deterministically.
func (f *Function) BlockOrder() []BlockID {
	out := make([]BlockID, len(f.order))
	copy(out, f.order)
	return out
}

// AppendBlock appends a new, empty block taking the given input types and
// returns its stable handle, per spec.md §4.E's `appendBlock(taking:)`.
func (f *Function) AppendBlock(inputs []types.Type) BlockID {
	slot := f.allocSlot()
	id := BlockID{Func: f.ID, slot: slot, gen: f.slots[slot].gen}
	f.slots[slot].block = &Block{id: id, Inputs: inputs}
	f.order = append(f.order, id)
	return id
}

// RemoveBlock removes the block at id, per spec.md §4.E's `removeBlock`.
// Every other block's handle remains valid.
func (f *Function) RemoveBlock(id BlockID) {
	f.checkLocal(id)

	f.slots[id.slot].block = nil
	f.free = append(f.free, id.slot)

	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Block resolves a handle to its block, fatally if the handle is stale or
// belongs to a different function.
func (f *Function) Block(id BlockID) *Block {
	f.checkLocal(id)
	return f.mustResolve(id)
}

func (f *Function) allocSlot() int {
	if n := len(f.free); n > 0 {
		slot := f.free[n-1]
		f.free = f.free[:n-1]
		f.slots[slot].gen++
		return slot
	}
	slot := len(f.slots)
	f.slots = append(f.slots, blockSlot{gen: 1})
	return slot
}

func (f *Function) checkLocal(id BlockID) {
	if id.Func != f.ID {
		diag.ICE("block handle %s used against function %s", id, f.ID)
	}
}

func (f *Function) mustResolve(id BlockID) *Block {
	if id.slot >= len(f.slots) || f.slots[id.slot].gen != id.gen || f.slots[id.slot].block == nil {
		diag.ICE("stale or invalid block handle %s", id)
	}
	return f.slots[id.slot].block
}
