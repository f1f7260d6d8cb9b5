package ir

import (
	"chai/internal/diag"
	"chai/internal/types"
)

// Block is an ordered list of instructions with typed block parameters
// (`inputs: [LoweredType]` per spec.md §3). A Block's instruction container
// is a generational index so replacing or removing an instruction never
// disturbs the address of any other, per spec.md §4.E "Replacing an
// instruction preserves its address."
type Block struct {
	id     BlockID
	Inputs []types.Type

	slots []instrSlot
	free  []int
	order []InstructionID
}

// ID returns the block's stable handle.
func (b *Block) ID() BlockID { return b.id }

// Instructions returns the block's instructions in order.
func (b *Block) Instructions() []*Instruction {
	out := make([]*Instruction, len(b.order))
	for i, id := range b.order {
		out[i] = b.mustResolve(id)
	}
	return out
}

// Terminator returns the block's terminating instruction, or nil if the
// block is empty or (transiently, mid-construction) not yet terminated.
func (b *Block) Terminator() *Instruction {
	if len(b.order) == 0 {
		return nil
	}
	last := b.mustResolve(b.order[len(b.order)-1])
	if !last.IsTerminator() {
		return nil
	}
	return last
}

// AppendInstruction appends instr to the block and returns its stable
// handle. Per spec.md §3, a terminator must be the last instruction; the
// caller is responsible for not appending after one (checked defensively
// here as an internal invariant, since a well-formed pass never does).
func (b *Block) AppendInstruction(instr Instruction) InstructionID {
	if t := b.Terminator(); t != nil {
		diag.ICE("appended instruction %s after terminator %s in block %s", instr.Op, t.Op, b.id)
	}

	slot := b.allocSlot()
	id := InstructionID{Block: b.id, slot: slot, gen: b.slots[slot].gen}
	instr.id = id

	stored := instr
	b.slots[slot].inst = &stored
	b.order = append(b.order, id)
	return id
}

// RemoveInstruction removes the instruction at id, invalidating any handle
// to it while leaving every other instruction's handle intact.
func (b *Block) RemoveInstruction(id InstructionID) {
	b.checkLocal(id)

	b.slots[id.slot].inst = nil
	b.free = append(b.free, id.slot)

	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Instruction resolves a handle to its instruction, fatally if the handle
// is stale or foreign to this block.
func (b *Block) Instruction(id InstructionID) *Instruction {
	b.checkLocal(id)
	return b.mustResolve(id)
}

func (b *Block) allocSlot() int {
	if n := len(b.free); n > 0 {
		slot := b.free[n-1]
		b.free = b.free[:n-1]
		b.slots[slot].gen++
		return slot
	}
	slot := len(b.slots)
	b.slots = append(b.slots, instrSlot{gen: 1})
	return slot
}

func (b *Block) checkLocal(id InstructionID) {
	if id.Block != b.id {
		diag.ICE("instruction handle %s used against block %s", id, b.id)
	}
}

func (b *Block) mustResolve(id InstructionID) *Instruction {
	if id.slot >= len(b.slots) || b.slots[id.slot].gen != id.gen || b.slots[id.slot].inst == nil {
		diag.ICE("stale or invalid instruction handle %s", id)
	}
	return b.slots[id.slot].inst
}
