// Package ir implements the block-structured intermediate representation
// produced from the Nexus AST and consumed by the optimizer and backend.
package ir

// Type is the machine-level type of an IR value.
type Type int

const (
	Void Type = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Float
	Double
	Pointer
	Array
	Struct
)

var typeNames = [...]string{
	Void:    "void",
	Bool:    "i1",
	Int8:    "i8",
	Int16:   "i16",
	Int32:   "i32",
	Int64:   "i64",
	Float:   "float",
	Double:  "double",
	Pointer: "ptr",
	Array:   "array",
	Struct:  "struct",
}

// String returns the type mnemonic, e.g. "i32".
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Opcode identifies the operation an instruction performs.
type Opcode int

const (
	// Arithmetic
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	// Comparison
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// Logical
	OpAnd
	OpOr
	OpNot

	// Bitwise
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpUShr

	// Memory
	OpLoad
	OpStore
	OpAlloc
	OpFree

	// Control flow
	OpBr
	OpCondBr
	OpPhi
	OpCall
	OpRet

	// Values and addressing
	OpConst
	OpGlobal
	OpAlloca
	OpGetElementPtr
)

var opcodeNames = [...]string{
	OpAdd:           "add",
	OpSub:           "sub",
	OpMul:           "mul",
	OpDiv:           "div",
	OpMod:           "mod",
	OpEq:            "eq",
	OpNe:            "ne",
	OpLt:            "lt",
	OpLe:            "le",
	OpGt:            "gt",
	OpGe:            "ge",
	OpAnd:           "and",
	OpOr:            "or",
	OpNot:           "not",
	OpBitAnd:        "bitand",
	OpBitOr:         "bitor",
	OpBitXor:        "bitxor",
	OpShl:           "shl",
	OpShr:           "shr",
	OpUShr:          "ushr",
	OpLoad:          "load",
	OpStore:         "store",
	OpAlloc:         "alloc",
	OpFree:          "free",
	OpBr:            "br",
	OpCondBr:        "cond_br",
	OpPhi:           "phi",
	OpCall:          "call",
	OpRet:           "ret",
	OpConst:         "const",
	OpGlobal:        "global",
	OpAlloca:        "alloca",
	OpGetElementPtr: "getelementptr",
}

// String returns the opcode mnemonic, e.g. "add".
func (op Opcode) String() string {
	if op >= 0 && int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "unknown"
}

// IsTerminator reports whether op ends a basic block.
func (op Opcode) IsTerminator() bool {
	return op == OpBr || op == OpCondBr || op == OpRet
}

// IsComparison reports whether op is a comparison producing a boolean.
func (op Opcode) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}
