package passes

import (
	"strconv"

	"github.com/you-not-fish/nexus/internal/ir"
)

// intConsts maps the names of integer constants in f to their values.
// Constants whose text is not a decimal i32 (strings, floats, null) are
// left out.
func intConsts(f *ir.Function) map[string]int32 {
	consts := make(map[string]int32)
	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			c, ok := instr.(*ir.Const)
			if !ok || c.Type != ir.Int32 {
				continue
			}
			v, err := strconv.ParseInt(c.Value, 10, 32)
			if err != nil {
				continue
			}
			consts[c.Name()] = int32(v)
		}
	}
	return consts
}

// fold replaces Binary and Unary instructions over integer constants with
// a Const carrying the result. The new Const keeps the instruction's name,
// so existing uses stay valid.
func fold(f *ir.Function) bool {
	consts := intConsts(f)
	changed := false
	for _, b := range f.Blocks {
		for i, instr := range b.Instrs {
			var (
				v  int32
				ok bool
			)
			switch x := instr.(type) {
			case *ir.Binary:
				l, lok := consts[x.Left]
				r, rok := consts[x.Right]
				if x.Type != ir.Int32 || !lok || !rok {
					continue
				}
				v, ok = evalBinary(x.Op, l, r)
			case *ir.Unary:
				operand, isConst := consts[x.Operand]
				if x.Type != ir.Int32 || !isConst {
					continue
				}
				v, ok = evalUnary(x.Op, operand)
			default:
				continue
			}
			if !ok {
				continue
			}
			c := &ir.Const{Type: ir.Int32, Value: strconv.FormatInt(int64(v), 10)}
			c.SetName(instr.Name())
			b.Instrs[i] = c
			consts[c.Name()] = v
			changed = true
		}
	}
	return changed
}

func evalBinary(op ir.Opcode, l, r int32) (int32, bool) {
	switch op {
	case ir.OpAdd:
		return l + r, true
	case ir.OpSub:
		return l - r, true
	case ir.OpMul:
		return l * r, true
	case ir.OpDiv:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case ir.OpMod:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case ir.OpEq:
		return b2i(l == r), true
	case ir.OpNe:
		return b2i(l != r), true
	case ir.OpLt:
		return b2i(l < r), true
	case ir.OpLe:
		return b2i(l <= r), true
	case ir.OpGt:
		return b2i(l > r), true
	case ir.OpGe:
		return b2i(l >= r), true
	case ir.OpAnd:
		return b2i(l != 0 && r != 0), true
	case ir.OpOr:
		return b2i(l != 0 || r != 0), true
	case ir.OpBitAnd:
		return l & r, true
	case ir.OpBitOr:
		return l | r, true
	case ir.OpBitXor:
		return l ^ r, true
	case ir.OpShl:
		return l << (uint32(r) & 31), true
	case ir.OpShr:
		return l >> (uint32(r) & 31), true
	case ir.OpUShr:
		return int32(uint32(l) >> (uint32(r) & 31)), true
	}
	return 0, false
}

func evalUnary(op ir.Opcode, x int32) (int32, bool) {
	switch op {
	case ir.OpSub:
		return -x, true
	case ir.OpNot:
		return b2i(x == 0), true
	}
	return 0, false
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
