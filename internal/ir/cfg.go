package ir

import "chai/internal/diag"

// CFG is a function's control-flow graph, built by walking each block's
// terminator per spec.md §4.E's `cfg()` query API.
type CFG struct {
	entry BlockID
	preds map[BlockID][]BlockID
	succs map[BlockID][]BlockID
}

// BuildCFG walks every block of f and records the successor/predecessor
// edges implied by its terminator's Targets. Every block must already be
// terminated; an unterminated block is an internal invariant violation,
// since spec.md §3 requires a terminator as a block's last instruction.
func BuildCFG(f *Function) *CFG {
	c := &CFG{entry: f.Entry(), preds: make(map[BlockID][]BlockID), succs: make(map[BlockID][]BlockID)}

	for _, id := range f.BlockOrder() {
		c.succs[id] = nil
		b := f.Block(id)

		term := b.Terminator()
		if term == nil {
			diag.ICE("block %s has no terminator", id)
		}

		for _, target := range term.Targets {
			c.succs[id] = append(c.succs[id], target)
			c.preds[target] = append(c.preds[target], id)
		}
	}

	return c
}

// Entry returns the function's entry block.
func (c *CFG) Entry() BlockID { return c.entry }

// Successors returns the blocks id branches to.
func (c *CFG) Successors(id BlockID) []BlockID { return c.succs[id] }

// Predecessors returns the blocks that branch to id.
func (c *CFG) Predecessors(id BlockID) []BlockID { return c.preds[id] }
