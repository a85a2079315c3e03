// Package rtabi defines the target conventions shared between the backend
// and the C runtime it links against (System V AMD64).
package rtabi

// External functions
const (
	// FnPrintf is the libc function println and print lower to.
	FnPrintf = "printf"
)

// EntrySymbol is the symbol exported for the synthetic main function.
const EntrySymbol = "main"

// WordSize is the size in bytes of a stack slot and of a register.
const WordSize = 8

// StackAlign is the required stack alignment at call sites.
const StackAlign = 16

// ArgRegs are the integer argument registers, in order. Further arguments
// are passed on the stack.
var ArgRegs = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// RetReg holds integer return values.
const RetReg = "rax"

// ScratchB is the second operand register of the instruction templates,
// next to RetReg. It is caller-saved, so generated functions do not
// preserve it.
const ScratchB = "r11"
