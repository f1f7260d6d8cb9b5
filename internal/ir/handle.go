// Package ir implements the basic-block IR model of spec.md §3/§4.E: a
// Function owns an ordered, stable-address list of Blocks, each owning an
// ordered, stable-address list of Instructions. Handles are generational
// indices (the same "reference by handle, never by raw pointer" idiom the
// ast package uses for its arena) rather than the teacher's flat, blockless
// mir.Instruction list, which has no notion of a block to anchor a handle
// to.
package ir

import "fmt"

// BlockID is a stable handle to one block of a function: (function_id,
// block_address) per spec.md §9. It stays valid across unrelated
// insertions and removals; only RemoveBlock on the exact block invalidates
// it, which Function detects via the generation counter.
type BlockID struct {
	Func FunctionID
	slot int
	gen  uint32
}

func (id BlockID) String() string {
	return fmt.Sprintf("%s:b%d", id.Func, id.slot)
}

// InstructionID is a stable handle to one instruction within a block:
// (block_id, instruction_address) per spec.md §9.
type InstructionID struct {
	Block BlockID
	slot  int
	gen   uint32
}

func (id InstructionID) String() string {
	return fmt.Sprintf("%s:i%d", id.Block, id.slot)
}

// blockSlot and instrSlot back Function/Block's generational-index
// containers: a slot's generation is bumped whenever it is vacated by
// RemoveBlock/RemoveInstruction and later reused, so a handle minted before
// the removal no longer resolves to the reused slot's new occupant.
type blockSlot struct {
	gen   uint32
	block *Block
}

type instrSlot struct {
	gen  uint32
	inst *Instruction
}
