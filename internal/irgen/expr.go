package irgen

import (
	"github.com/you-not-fish/nexus/internal/ir"
	"github.com/you-not-fish/nexus/internal/syntax"
)

var binaryOps = map[string]ir.Opcode{
	"+":  ir.OpAdd,
	"-":  ir.OpSub,
	"*":  ir.OpMul,
	"/":  ir.OpDiv,
	"%":  ir.OpMod,
	"==": ir.OpEq,
	"!=": ir.OpNe,
	"<":  ir.OpLt,
	"<=": ir.OpLe,
	">":  ir.OpGt,
	">=": ir.OpGe,
	"&&": ir.OpAnd,
	"||": ir.OpOr,
}

// expr lowers x and returns the name of the value holding its result.
func (g *Generator) expr(x syntax.Expr) string {
	switch x := x.(type) {
	case *syntax.Binary:
		left := g.expr(x.Left)
		right := g.expr(x.Right)
		op, ok := binaryOps[x.Op]
		if !ok {
			op = ir.OpAdd
		}
		return g.emit(&ir.Binary{Op: op, Type: ir.Int32, Left: left, Right: right})

	case *syntax.Unary:
		operand := g.expr(x.Right)
		op := ir.OpNot
		if x.Op == "-" {
			op = ir.OpSub
		}
		return g.emit(&ir.Unary{Op: op, Type: ir.Int32, Operand: operand})

	case *syntax.Literal:
		return g.constant(literalType(x.Type), x.Value)

	case *syntax.Identifier:
		if slot, ok := g.vars[x.Name]; ok {
			return g.load(slot)
		}
		return g.constant(ir.Int32, "0")

	case *syntax.Assign:
		value := g.expr(x.Value)
		slot, ok := g.vars[x.Name]
		if !ok {
			slot = g.alloca()
			g.vars[x.Name] = slot
		}
		g.store(value, slot)
		return value

	case *syntax.Call:
		return g.call(x)

	case *syntax.Member:
		return g.expr(x.Object)

	case *syntax.Grouping:
		return g.expr(x.Inner)
	}
	return g.constant(ir.Int32, "0")
}

func literalType(kind string) ir.Type {
	switch kind {
	case syntax.NumberLit:
		return ir.Int32
	case syntax.StringLit:
		return ir.Pointer
	case syntax.BoolLit:
		return ir.Bool
	}
	return ir.Int32
}

// call lowers a call. println and print become printf with a format
// chosen from the first argument: "%s\n" for a string literal and "%d\n"
// for anything else. Other named callees are called directly.
func (g *Generator) call(x *syntax.Call) string {
	fn := "printf"
	var args []string

	// A callee that is not an identifier (a.b(1), f()(2)) keeps the
	// defaults and lowers to printf with no arguments; its argument
	// expressions are not evaluated.
	if id, ok := x.Callee.(*syntax.Identifier); ok {
		switch id.Name {
		case "println", "print":
			if len(x.Args) == 0 {
				args = append(args, g.constant(ir.Pointer, `\n`))
				break
			}
			format := `%d\n`
			if lit, ok := x.Args[0].(*syntax.Literal); ok && lit.Type == syntax.StringLit {
				format = `%s\n`
			}
			args = append(args, g.constant(ir.Pointer, format))
			args = append(args, g.expr(x.Args[0]))
		default:
			fn = id.Name
			for _, arg := range x.Args {
				args = append(args, g.expr(arg))
			}
		}
	}

	return g.emit(&ir.Call{Type: ir.Int32, Func: fn, Args: args})
}
