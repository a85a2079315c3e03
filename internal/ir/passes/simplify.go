package passes

import "github.com/you-not-fish/nexus/internal/ir"

// simplify forwards the non-constant operand of algebraic identities
// (x+0, 0+x, x-0, x*1, 1*x, x/1) to every use of the instruction. The
// instruction itself is left for dce.
func simplify(f *ir.Function) bool {
	consts := intConsts(f)
	isConst := func(name string, v int32) bool {
		c, ok := consts[name]
		return ok && c == v
	}

	changed := false
	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			x, ok := instr.(*ir.Binary)
			if !ok || x.Type != ir.Int32 {
				continue
			}
			var keep string
			switch x.Op {
			case ir.OpAdd:
				if isConst(x.Right, 0) {
					keep = x.Left
				} else if isConst(x.Left, 0) {
					keep = x.Right
				}
			case ir.OpSub:
				if isConst(x.Right, 0) {
					keep = x.Left
				}
			case ir.OpMul:
				if isConst(x.Right, 1) {
					keep = x.Left
				} else if isConst(x.Left, 1) {
					keep = x.Right
				}
			case ir.OpDiv:
				if isConst(x.Right, 1) {
					keep = x.Left
				}
			}
			if keep == "" || keep == x.Name() {
				continue
			}
			if replaceAllUses(f, x.Name(), keep) {
				changed = true
			}
		}
	}
	return changed
}
