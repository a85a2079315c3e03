package ir

import (
	"fmt"
	"strings"
)

// Instruction is a single IR instruction. Values are referred to by the
// textual name of the instruction or parameter that defines them.
type Instruction interface {
	Opcode() Opcode

	// Name returns the result name (e.g. "%instr3"), or "" if the
	// instruction produces no value.
	Name() string
	SetName(name string)

	// String renders the instruction without its "%name = " prefix.
	String() string

	// Operands returns the value names the instruction reads.
	Operands() []string

	// ReplaceOperand rewrites every operand equal to old to new and
	// reports whether anything changed.
	ReplaceOperand(old, new string) bool
}

// result is embedded in instructions that produce a value.
type result struct {
	name string
}

func (r *result) Name() string        { return r.name }
func (r *result) SetName(name string) { r.name = name }

// noResult is embedded in instructions that produce no value.
type noResult struct{}

func (noResult) Name() string    { return "" }
func (noResult) SetName(string) {}

// replace rewrites *s to new if it equals old.
func replace(s *string, old, new string) bool {
	if *s == old {
		*s = new
		return true
	}
	return false
}

// Incoming is one (value, predecessor block) pair of a Phi.
type Incoming struct {
	Value string
	Block string
}

type (
	// Const materializes a constant. Value is the literal's source text.
	Const struct {
		result
		Type  Type
		Value string
	}

	// Binary computes Left Op Right.
	Binary struct {
		result
		Op    Opcode
		Type  Type
		Left  string
		Right string
	}

	// Unary computes Op Operand.
	Unary struct {
		result
		Op      Opcode
		Type    Type
		Operand string
	}

	// CondBr branches to True if Cond is nonzero, else to False.
	CondBr struct {
		noResult
		Cond  string
		True  string
		False string
	}

	// Br branches unconditionally to Target.
	Br struct {
		noResult
		Target string
	}

	// Call calls the function named Func.
	Call struct {
		result
		Type Type
		Func string
		Args []string
	}

	// Ret returns Value, or nothing if Type is Void.
	Ret struct {
		noResult
		Type  Type
		Value string
	}

	// Alloca reserves a stack slot of type Type.
	Alloca struct {
		result
		Type Type
	}

	// Load reads a Type from Pointer.
	Load struct {
		result
		Type    Type
		Pointer string
	}

	// Store writes Value to Pointer.
	Store struct {
		noResult
		Type    Type
		Value   string
		Pointer string
	}

	// Phi selects a value according to the predecessor block.
	Phi struct {
		result
		Type     Type
		Incoming []Incoming
	}
)

func (*Const) Opcode() Opcode    { return OpConst }
func (x *Binary) Opcode() Opcode { return x.Op }
func (x *Unary) Opcode() Opcode  { return x.Op }
func (*CondBr) Opcode() Opcode   { return OpCondBr }
func (*Br) Opcode() Opcode       { return OpBr }
func (*Call) Opcode() Opcode     { return OpCall }
func (*Ret) Opcode() Opcode      { return OpRet }
func (*Alloca) Opcode() Opcode   { return OpAlloca }
func (*Load) Opcode() Opcode     { return OpLoad }
func (*Store) Opcode() Opcode    { return OpStore }
func (*Phi) Opcode() Opcode      { return OpPhi }

// ----------------------------------------------------------------------------
// Rendering

func (x *Const) String() string {
	return fmt.Sprintf("const %s %s", x.Type, x.Value)
}

func (x *Binary) String() string {
	return fmt.Sprintf("%s %s %s, %s", x.Op, x.Type, x.Left, x.Right)
}

func (x *Unary) String() string {
	return fmt.Sprintf("%s %s %s", x.Op, x.Type, x.Operand)
}

func (x *CondBr) String() string {
	return fmt.Sprintf("cond_br i1 %s, label %%%s, label %%%s", x.Cond, x.True, x.False)
}

func (x *Br) String() string {
	return "br label %" + x.Target
}

func (x *Call) String() string {
	return fmt.Sprintf("call %s @%s(%s)", x.Type, x.Func, strings.Join(x.Args, ", "))
}

func (x *Ret) String() string {
	if x.Type == Void {
		return "ret void"
	}
	return fmt.Sprintf("ret %s %s", x.Type, x.Value)
}

func (x *Alloca) String() string {
	return "alloca " + x.Type.String()
}

func (x *Load) String() string {
	return fmt.Sprintf("load %s, ptr %s", x.Type, x.Pointer)
}

func (x *Store) String() string {
	return fmt.Sprintf("store %s %s, ptr %s", x.Type, x.Value, x.Pointer)
}

func (x *Phi) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "phi %s [", x.Type)
	for i, in := range x.Incoming {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s, label %%%s", in.Value, in.Block)
	}
	sb.WriteString("]")
	return sb.String()
}

// ----------------------------------------------------------------------------
// Operands

func (*Const) Operands() []string    { return nil }
func (x *Binary) Operands() []string { return []string{x.Left, x.Right} }
func (x *Unary) Operands() []string  { return []string{x.Operand} }
func (x *CondBr) Operands() []string { return []string{x.Cond} }
func (*Br) Operands() []string       { return nil }
func (x *Call) Operands() []string   { return x.Args }
func (*Alloca) Operands() []string   { return nil }
func (x *Load) Operands() []string   { return []string{x.Pointer} }
func (x *Store) Operands() []string  { return []string{x.Value, x.Pointer} }

func (x *Ret) Operands() []string {
	if x.Type == Void {
		return nil
	}
	return []string{x.Value}
}

func (x *Phi) Operands() []string {
	ops := make([]string, len(x.Incoming))
	for i, in := range x.Incoming {
		ops[i] = in.Value
	}
	return ops
}

func (*Const) ReplaceOperand(old, new string) bool  { return false }
func (*Br) ReplaceOperand(old, new string) bool     { return false }
func (*Alloca) ReplaceOperand(old, new string) bool { return false }

func (x *Binary) ReplaceOperand(old, new string) bool {
	l := replace(&x.Left, old, new)
	r := replace(&x.Right, old, new)
	return l || r
}

func (x *Unary) ReplaceOperand(old, new string) bool {
	return replace(&x.Operand, old, new)
}

func (x *CondBr) ReplaceOperand(old, new string) bool {
	return replace(&x.Cond, old, new)
}

func (x *Call) ReplaceOperand(old, new string) bool {
	changed := false
	for i := range x.Args {
		if replace(&x.Args[i], old, new) {
			changed = true
		}
	}
	return changed
}

func (x *Ret) ReplaceOperand(old, new string) bool {
	return replace(&x.Value, old, new)
}

func (x *Load) ReplaceOperand(old, new string) bool {
	return replace(&x.Pointer, old, new)
}

func (x *Store) ReplaceOperand(old, new string) bool {
	v := replace(&x.Value, old, new)
	p := replace(&x.Pointer, old, new)
	return v || p
}

func (x *Phi) ReplaceOperand(old, new string) bool {
	changed := false
	for i := range x.Incoming {
		if replace(&x.Incoming[i].Value, old, new) {
			changed = true
		}
	}
	return changed
}
