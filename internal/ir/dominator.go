package ir

// DomTree is a function's dominator tree, computed from its CFG via the
// iterative algorithm of Cooper, Harvey & Kennedy, "A Simple, Fast
// Dominance Algorithm" — the algorithm spec.md §4.E names by name. It
// exposes the dominator-BFS order spec.md §4.F step 4 requires the
// monomorphizer to visit blocks in, so that every operand definition is
// rewritten before any of its uses.
type DomTree struct {
	entry BlockID
	idom  map[BlockID]BlockID
	bfs   []BlockID
}

// BuildDomTree computes the dominator tree of f's CFG.
func BuildDomTree(f *Function, cfg *CFG) *DomTree {
	entry := cfg.Entry()

	post := postorder(entry, cfg)
	postNum := make(map[BlockID]int, len(post))
	for i, b := range post {
		postNum[b] = i
	}

	// rpo is the reverse of a postorder walk, i.e. entry first. Processing
	// in this order converges the fixed point below in few passes; the
	// algorithm is correct in any order, fast in this one.
	rpo := make([]BlockID, len(post))
	for i, b := range post {
		rpo[len(post)-1-i] = b
	}

	idom := map[BlockID]BlockID{entry: entry}
	changed := true
	for changed {
		changed = false

		for _, b := range rpo {
			if b == entry {
				continue
			}

			var newIdom BlockID
			found := false
			for _, p := range cfg.Predecessors(b) {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !found {
					newIdom = p
					found = true
					continue
				}
				newIdom = intersect(newIdom, p, idom, postNum)
			}

			if !found {
				continue
			}
			if old, ok := idom[b]; !ok || old != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}

	dt := &DomTree{entry: entry, idom: idom}
	dt.bfs = bfsOrder(f, entry, idom)
	return dt
}

// postorder returns a postorder walk of the CFG reachable from entry:
// entry itself is appended last.
func postorder(entry BlockID, cfg *CFG) []BlockID {
	visited := make(map[BlockID]bool)
	var order []BlockID

	var visit func(BlockID)
	visit = func(b BlockID) {
		if visited[b] {
			return
		}
		visited[b] = true
		for _, s := range cfg.Successors(b) {
			visit(s)
		}
		order = append(order, b)
	}
	visit(entry)

	return order
}

// intersect finds the nearest common dominator of b1 and b2 already
// computed, walking each finger up the (partial) dominator tree until they
// meet — the CHK paper's `intersect`.
func intersect(b1, b2 BlockID, idom map[BlockID]BlockID, postNum map[BlockID]int) BlockID {
	f1, f2 := b1, b2
	for f1 != f2 {
		for postNum[f1] < postNum[f2] {
			f1 = idom[f1]
		}
		for postNum[f2] < postNum[f1] {
			f2 = idom[f2]
		}
	}
	return f1
}

// bfsOrder walks the dominator tree breadth-first from entry. Children are
// collected by iterating f's block order (a slice) rather than the idom
// map directly, so the result is deterministic despite Go's randomized map
// iteration.
func bfsOrder(f *Function, entry BlockID, idom map[BlockID]BlockID) []BlockID {
	children := make(map[BlockID][]BlockID)
	for _, b := range f.BlockOrder() {
		if b == entry {
			continue
		}
		if p, ok := idom[b]; ok {
			children[p] = append(children[p], b)
		}
	}

	order := []BlockID{entry}
	queue := []BlockID{entry}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		kids := children[b]
		order = append(order, kids...)
		queue = append(queue, kids...)
	}

	return order
}

// Idom returns b's immediate dominator (b itself for the entry block).
func (d *DomTree) Idom(b BlockID) BlockID { return d.idom[b] }

// Dominates reports whether a dominates b (reflexively: a dominates a).
func (d *DomTree) Dominates(a, b BlockID) bool {
	for {
		if a == b {
			return true
		}
		if b == d.entry {
			return a == d.entry
		}
		b = d.idom[b]
	}
}

// BFSOrder returns the dominator-BFS order spec.md §4.F step 4 requires.
func (d *DomTree) BFSOrder() []BlockID { return d.bfs }
