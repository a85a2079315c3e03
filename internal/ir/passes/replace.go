package passes

import "github.com/you-not-fish/nexus/internal/ir"

// ReplaceInstructionUse rewrites every operand of the instructions in b
// that refers to old so that it refers to new instead. It reports whether
// any operand changed.
func ReplaceInstructionUse(old, new string, b *ir.Block) bool {
	changed := false
	for _, instr := range b.Instrs {
		if instr.ReplaceOperand(old, new) {
			changed = true
		}
	}
	return changed
}

// replaceAllUses applies ReplaceInstructionUse to every block of f.
func replaceAllUses(f *ir.Function, old, new string) bool {
	changed := false
	for _, b := range f.Blocks {
		if ReplaceInstructionUse(old, new, b) {
			changed = true
		}
	}
	return changed
}

// uses counts how often each value name appears as an operand in f.
func uses(f *ir.Function) map[string]int {
	n := make(map[string]int)
	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			for _, op := range instr.Operands() {
				n[op]++
			}
		}
	}
	return n
}
