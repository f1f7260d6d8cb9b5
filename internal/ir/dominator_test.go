package ir

import "testing"

// buildDiamond builds entry -> (left, right) -> join, the smallest CFG
// shape with a non-trivial dominance relation (join is dominated by entry
// but not by either branch alone).
func buildDiamond(t *testing.T) (*Function, BlockID, BlockID, BlockID, BlockID) {
	t.Helper()
	f := NewFunction(testFunctionID("diamond"), "diamond", noRange(), LinkagePrivate, nil, nil, nil)

	entry := f.AppendBlock(nil)
	left := f.AppendBlock(nil)
	right := f.AppendBlock(nil)
	join := f.AppendBlock(nil)

	f.Block(entry).AppendInstruction(Instruction{Op: CondBranch, Targets: []BlockID{left, right}})
	f.Block(left).AppendInstruction(Instruction{Op: Branch, Targets: []BlockID{join}})
	f.Block(right).AppendInstruction(Instruction{Op: Branch, Targets: []BlockID{join}})
	f.Block(join).AppendInstruction(Instruction{Op: Return})

	return f, entry, left, right, join
}

func TestBuildCFGEdges(t *testing.T) {
	f, entry, left, right, join := buildDiamond(t)
	cfg := BuildCFG(f)

	if cfg.Entry() != entry {
		t.Fatalf("expected entry block to be %s, got %s", entry, cfg.Entry())
	}

	succs := cfg.Successors(entry)
	if len(succs) != 2 || succs[0] != left || succs[1] != right {
		t.Fatalf("unexpected successors of entry: %v", succs)
	}

	preds := cfg.Predecessors(join)
	if len(preds) != 2 {
		t.Fatalf("expected join to have 2 predecessors, got %d", len(preds))
	}
}

func TestBuildCFGRejectsUnterminatedBlock(t *testing.T) {
	f := NewFunction(testFunctionID("f"), "f", noRange(), LinkagePrivate, nil, nil, nil)
	f.AppendBlock(nil) // left empty: no terminator

	defer func() {
		if recover() == nil {
			t.Fatalf("expected ICE panic for a block with no terminator")
		}
	}()
	BuildCFG(f)
}

func TestDominatorTreeDiamond(t *testing.T) {
	f, entry, left, right, join := buildDiamond(t)
	cfg := BuildCFG(f)
	dom := BuildDomTree(f, cfg)

	if dom.Idom(left) != entry || dom.Idom(right) != entry {
		t.Fatalf("expected entry to immediately dominate both branches")
	}
	if dom.Idom(join) != entry {
		t.Fatalf("expected entry (not either branch) to immediately dominate join, since neither branch alone dominates it")
	}

	if !dom.Dominates(entry, join) {
		t.Fatalf("expected entry to dominate join")
	}
	if dom.Dominates(left, join) {
		t.Fatalf("left must not dominate join: right is a path around it")
	}

	order := dom.BFSOrder()
	pos := make(map[BlockID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos[entry] != 0 {
		t.Fatalf("expected entry to be first in BFS order")
	}
	if pos[left] >= pos[join] || pos[right] >= pos[join] {
		t.Fatalf("expected both branches to precede join in dominator-BFS order")
	}
}
