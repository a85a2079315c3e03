package codegen

import (
	"strconv"

	"github.com/you-not-fish/nexus/internal/ir"
	"github.com/you-not-fish/nexus/internal/rtabi"
)

const exitLabel = ".exit"

// phiCopy moves src into the slot of the phi dst on the edge from a
// predecessor block.
type phiCopy struct {
	dst, src string
}

// lowerFunc emits one function: prologue, parameter spills, blocks and a
// shared epilogue that every ret jumps to.
func (g *generator) lowerFunc(f *ir.Function) {
	g.frame = newFrame(f)
	copies := phiCopies(f)

	g.e.emitComment("Function: %s", f.Name)
	g.e.emitLabel(f.Name)
	g.e.emitInst("push rbp")
	g.e.emitInst("mov rbp, rsp")
	if g.frame.size > 0 {
		g.e.emitInst("sub rsp, %d", g.frame.size)
	}
	for i, p := range f.Params {
		if i < len(rtabi.ArgRegs) {
			g.e.emitInst("mov %s, %s", g.frame.operand(p.Name), rtabi.ArgRegs[i])
			continue
		}
		off := 2*rtabi.WordSize + (i-len(rtabi.ArgRegs))*rtabi.WordSize
		g.e.emitInst("mov rax, qword [rbp+%d]", off)
		g.e.emitInst("mov %s, rax", g.frame.operand(p.Name))
	}

	for _, b := range f.Blocks {
		g.e.emitComment("Block: %s", b.Name)
		g.e.emitLabel("." + b.Name)
		for _, instr := range b.Instrs {
			if instr.Opcode().IsTerminator() {
				for _, c := range copies[b.Name] {
					g.e.emitComment("phi %s <- %s", c.dst, c.src)
					g.move(c.dst, c.src)
				}
			}
			g.lowerInstr(instr)
		}
	}

	g.e.emitLabel(exitLabel)
	g.e.emitInst("mov rsp, rbp")
	g.e.emitInst("pop rbp")
	g.e.emitInst("ret")
	g.e.emitLine()
}

// phiCopies groups the incoming values of every phi in f by predecessor.
func phiCopies(f *ir.Function) map[string][]phiCopy {
	copies := make(map[string][]phiCopy)
	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			phi, ok := instr.(*ir.Phi)
			if !ok {
				continue
			}
			for _, in := range phi.Incoming {
				copies[in.Block] = append(copies[in.Block], phiCopy{dst: phi.Name(), src: in.Value})
			}
		}
	}
	return copies
}

func (g *generator) move(dst, src string) {
	g.e.emitInst("mov rax, %s", g.frame.operand(src))
	g.e.emitInst("mov %s, rax", g.frame.operand(dst))
}

// load emits "mov reg, <value>".
func (g *generator) load(reg, name string) {
	g.e.emitInst("mov %s, %s", reg, g.frame.operand(name))
}

// save stores rax into the slot of instr's result.
func (g *generator) save(instr ir.Instruction) {
	g.e.emitInst("mov %s, rax", g.frame.operand(instr.Name()))
}

// lowerInstr emits the template for a single instruction, preceded by the
// instruction's IR text as a comment.
func (g *generator) lowerInstr(instr ir.Instruction) {
	if name := instr.Name(); name != "" {
		g.e.emitComment("%s = %s", name, instr)
	} else {
		g.e.emitComment("%s", instr)
	}

	switch x := instr.(type) {
	case *ir.Const:
		g.lowerConst(x)

	case *ir.Binary:
		g.load("rax", x.Left)
		g.load(rtabi.ScratchB, x.Right)
		g.lowerBinaryOp(x.Op)
		if x.Type == ir.Int32 {
			g.e.emitInst("movsxd rax, eax")
		}
		g.save(x)

	case *ir.Unary:
		g.load("rax", x.Operand)
		switch x.Op {
		case ir.OpSub:
			g.e.emitInst("neg rax")
		case ir.OpNot:
			g.e.emitInst("cmp rax, 0")
			g.setcc("sete")
		default:
			g.e.emitComment("unsupported unary %s", x.Op)
		}
		if x.Type == ir.Int32 {
			g.e.emitInst("movsxd rax, eax")
		}
		g.save(x)

	case *ir.CondBr:
		g.load("rax", x.Cond)
		g.e.emitInst("cmp rax, 0")
		g.e.emitInst("je .%s", x.False)
		g.e.emitInst("jmp .%s", x.True)

	case *ir.Br:
		g.e.emitInst("jmp .%s", x.Target)

	case *ir.Call:
		g.lowerCall(x)

	case *ir.Ret:
		if x.Type != ir.Void {
			g.load(rtabi.RetReg, x.Value)
		}
		g.e.emitInst("jmp %s", exitLabel)

	case *ir.Alloca:
		g.e.emitInst("lea rax, %s", g.frame.address(allocaMem(x.Name())))
		g.save(x)

	case *ir.Load:
		g.load("rax", x.Pointer)
		if kw := sizeKeyword(x.Type); kw == "qword" {
			g.e.emitInst("mov rax, qword [rax]")
		} else if kw == "dword" {
			g.e.emitInst("movsxd rax, dword [rax]")
		} else {
			g.e.emitInst("movsx rax, %s [rax]", kw)
		}
		g.save(x)

	case *ir.Store:
		g.load("rax", x.Pointer)
		g.load(rtabi.ScratchB, x.Value)
		kw := sizeKeyword(x.Type)
		g.e.emitInst("mov %s [rax], %s", kw, scratchSized(kw))

	case *ir.Phi:
		// Filled in by the predecessors before their terminators.

	default:
		g.e.emitComment("unsupported instruction %T", x)
	}
}

// lowerConst materializes a constant into its slot. Pointer constants
// refer to the string table.
func (g *generator) lowerConst(c *ir.Const) {
	if c.Type == ir.Pointer {
		g.e.emitInst("lea rax, [rel %s]", stringLabel(g.stringIndex(c.Value)))
		g.save(c)
		return
	}
	imm, ok := immediate(c.Value)
	if !ok {
		g.e.emitComment("non-integer constant %s lowered as 0", c.Value)
	}
	g.e.emitInst("mov rax, %d", imm)
	g.save(c)
}

// immediate converts constant text to an integer immediate.
func immediate(s string) (int64, bool) {
	switch s {
	case "true":
		return 1, true
	case "false", "null":
		return 0, true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// lowerBinaryOp combines rax and r11 into rax.
func (g *generator) lowerBinaryOp(op ir.Opcode) {
	switch op {
	case ir.OpAdd:
		g.e.emitInst("add rax, r11")
	case ir.OpSub:
		g.e.emitInst("sub rax, r11")
	case ir.OpMul:
		g.e.emitInst("imul rax, r11")
	case ir.OpDiv:
		g.e.emitInst("cqo")
		g.e.emitInst("idiv r11")
	case ir.OpMod:
		g.e.emitInst("cqo")
		g.e.emitInst("idiv r11")
		g.e.emitInst("mov rax, rdx")
	case ir.OpEq, ir.OpNe, ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe:
		g.e.emitInst("cmp rax, r11")
		g.setcc(setccFor[op])
	case ir.OpAnd, ir.OpOr:
		g.e.emitInst("cmp rax, 0")
		g.e.emitInst("setne al")
		g.e.emitInst("cmp r11, 0")
		g.e.emitInst("setne r11b")
		if op == ir.OpAnd {
			g.e.emitInst("and al, r11b")
		} else {
			g.e.emitInst("or al, r11b")
		}
		g.e.emitInst("movzx rax, al")
	case ir.OpBitAnd:
		g.e.emitInst("and rax, r11")
	case ir.OpBitOr:
		g.e.emitInst("or rax, r11")
	case ir.OpBitXor:
		g.e.emitInst("xor rax, r11")
	case ir.OpShl, ir.OpShr, ir.OpUShr:
		g.e.emitInst("mov rcx, r11")
		g.e.emitInst("%s rax, cl", shiftFor[op])
	default:
		g.e.emitComment("unsupported binary %s", op)
	}
}

var setccFor = map[ir.Opcode]string{
	ir.OpEq: "sete",
	ir.OpNe: "setne",
	ir.OpLt: "setl",
	ir.OpLe: "setle",
	ir.OpGt: "setg",
	ir.OpGe: "setge",
}

var shiftFor = map[ir.Opcode]string{
	ir.OpShl:  "shl",
	ir.OpShr:  "sar",
	ir.OpUShr: "shr",
}

// setcc materializes the flag tested by cc as 0 or 1 in rax.
func (g *generator) setcc(cc string) {
	g.e.emitInst("%s al", cc)
	g.e.emitInst("movzx rax, al")
}

// lowerCall passes the first arguments in registers and the rest on the
// stack, keeping rsp 16-byte aligned at the call.
func (g *generator) lowerCall(c *ir.Call) {
	stackArgs := 0
	if n := len(c.Args) - len(rtabi.ArgRegs); n > 0 {
		stackArgs = n
	}
	pad := 0
	if stackArgs%2 == 1 {
		pad = rtabi.WordSize
		g.e.emitInst("sub rsp, %d", pad)
	}
	for i := len(c.Args) - 1; i >= len(rtabi.ArgRegs); i-- {
		g.e.emitInst("push %s", g.frame.operand(c.Args[i]))
	}
	for i, arg := range c.Args {
		if i >= len(rtabi.ArgRegs) {
			break
		}
		g.load(rtabi.ArgRegs[i], arg)
	}
	g.e.emitInst("xor eax, eax")
	g.e.emitInst("call %s", c.Func)
	if cleanup := stackArgs*rtabi.WordSize + pad; cleanup > 0 {
		g.e.emitInst("add rsp, %d", cleanup)
	}
	g.save(c)
}

// scratchSized returns the part of the second scratch register matching
// the operand size keyword.
func scratchSized(kw string) string {
	switch kw {
	case "byte":
		return rtabi.ScratchB + "b"
	case "word":
		return rtabi.ScratchB + "w"
	case "dword":
		return rtabi.ScratchB + "d"
	}
	return rtabi.ScratchB
}
