package ir

// Preds returns the predecessors of every block of f, keyed by block name,
// in block order.
func Preds(f *Function) map[string][]string {
	preds := make(map[string][]string, len(f.Blocks))
	for _, b := range f.Blocks {
		for _, s := range b.Succs() {
			preds[s] = append(preds[s], b.Name)
		}
	}
	return preds
}

// ReversePostOrder returns the names of the blocks of f in reverse
// post-order, starting from the entry block. Unreachable blocks are
// excluded.
func ReversePostOrder(f *Function) []string {
	entry := f.Entry()
	if entry == nil {
		return nil
	}
	visited := make(map[string]bool, len(f.Blocks))
	var order []string

	var dfs func(b *Block)
	dfs = func(b *Block) {
		if b == nil || visited[b.Name] {
			return
		}
		visited[b.Name] = true
		for _, s := range b.Succs() {
			dfs(f.Block(s))
		}
		order = append(order, b.Name)
	}
	dfs(entry)

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// DomTree is the dominator tree of the reachable blocks of a function.
type DomTree struct {
	entry  string
	idom   map[string]string // block -> immediate dominator; entry maps to ""
	rpoNum map[string]int
}

// ComputeDom computes the dominator tree of f using Cooper, Harvey and
// Kennedy's "A Simple, Fast Dominance Algorithm".
func ComputeDom(f *Function) *DomTree {
	rpo := ReversePostOrder(f)
	t := &DomTree{
		idom:   make(map[string]string, len(rpo)),
		rpoNum: make(map[string]int, len(rpo)),
	}
	if len(rpo) == 0 {
		return t
	}
	for i, b := range rpo {
		t.rpoNum[b] = i
	}
	preds := Preds(f)

	intersect := func(b1, b2 string) string {
		for b1 != b2 {
			for t.rpoNum[b1] > t.rpoNum[b2] {
				b1 = t.idom[b1]
			}
			for t.rpoNum[b2] > t.rpoNum[b1] {
				b2 = t.idom[b2]
			}
		}
		return b1
	}

	// The entry is its own dominator while iterating.
	t.entry = rpo[0]
	t.idom[t.entry] = t.entry

	changed := true
	for changed {
		changed = false
		for _, b := range rpo[1:] {
			newIdom := ""
			for _, p := range preds[b] {
				if _, done := t.idom[p]; !done {
					continue
				}
				if newIdom == "" {
					newIdom = p
				} else {
					newIdom = intersect(p, newIdom)
				}
			}
			if newIdom != "" && t.idom[b] != newIdom {
				t.idom[b] = newIdom
				changed = true
			}
		}
	}

	t.idom[t.entry] = ""
	return t
}

// Reachable reports whether block b is reachable from the entry.
func (t *DomTree) Reachable(b string) bool {
	_, ok := t.rpoNum[b]
	return ok
}

// Idom returns the immediate dominator of b, or "" for the entry and for
// unreachable blocks.
func (t *DomTree) Idom(b string) string {
	return t.idom[b]
}

// Dominates reports whether block a dominates block b. Every block
// dominates itself. Unreachable blocks neither dominate nor are dominated.
func (t *DomTree) Dominates(a, b string) bool {
	if !t.Reachable(a) || !t.Reachable(b) {
		return false
	}
	for b != "" {
		if a == b {
			return true
		}
		b = t.idom[b]
	}
	return false
}
