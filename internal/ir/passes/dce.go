package passes

import "github.com/you-not-fish/nexus/internal/ir"

// dce removes side-effect free instructions (Const, Binary, Unary, Load,
// Phi) whose result is not used anywhere in the function. Store, Call,
// Alloca and terminators are always kept.
func dce(f *ir.Function) bool {
	changed := false
	for {
		used := uses(f)
		removed := false
		for _, b := range f.Blocks {
			kept := b.Instrs[:0]
			for _, instr := range b.Instrs {
				if isPure(instr) && used[instr.Name()] == 0 {
					removed = true
					continue
				}
				kept = append(kept, instr)
			}
			b.Instrs = kept
		}
		if !removed {
			return changed
		}
		changed = true
	}
}

func isPure(instr ir.Instruction) bool {
	switch instr.(type) {
	case *ir.Const, *ir.Binary, *ir.Unary, *ir.Load, *ir.Phi:
		return true
	}
	return false
}
