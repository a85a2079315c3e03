// Package irgen lowers a Nexus AST into an ir.Module.
//
// Every variable lives in an INT32 stack slot: declarations emit an
// alloca followed by a store, and reads emit a load. Control flow is
// lowered into explicit blocks joined by Br and CondBr. The generator
// trusts the semantic analyzer and does not re-validate names.
package irgen

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/you-not-fish/nexus/internal/ir"
	"github.com/you-not-fish/nexus/internal/syntax"
)

// paramPrefix namespaces parameter values. A '.' cannot occur in an
// identifier, so parameters never collide with %instrN values.
const paramPrefix = "%arg."

// Generator holds the state for lowering one program.
type Generator struct {
	module *ir.Module
	fn     *ir.Function // current function
	b      *ir.Block    // current block

	vars map[string]string // variable name -> alloca name

	instrCount int
	blockCount int
}

// NewGenerator returns a Generator ready to lower a program.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers stmts into a module named "main". Top-level statements
// form the body of a synthetic "main" function returning INT32; each fn
// declaration becomes a sibling function, added in the order its lowering
// completes. Instruction and block names are numbered across the module.
func (g *Generator) Generate(stmts []syntax.Stmt) *ir.Module {
	g.module = ir.NewModule("main")
	g.instrCount = 0
	g.blockCount = 0

	g.fn = ir.NewFunction("main", ir.Int32)
	g.b = g.fn.NewBlock(g.blockName())
	g.vars = make(map[string]string)

	for _, s := range stmts {
		g.stmt(s)
	}
	g.finish()
	g.module.AddFunction(g.fn)

	glog.V(3).Infof("irgen: %d functions, %d blocks, %d instructions",
		len(g.module.Functions), g.blockCount, g.instrCount)
	return g.module
}

func (g *Generator) instrName() string {
	name := fmt.Sprintf("%%instr%d", g.instrCount)
	g.instrCount++
	return name
}

func (g *Generator) blockName() string {
	name := fmt.Sprintf("block%d", g.blockCount)
	g.blockCount++
	return name
}

// newBlock appends a fresh block to the current function.
func (g *Generator) newBlock() *ir.Block {
	return g.fn.NewBlock(g.blockName())
}

// finish terminates the current block with "ret i32 0" unless it already
// ends in a terminator.
func (g *Generator) finish() {
	if !g.b.IsTerminated() {
		g.ret(g.constant(ir.Int32, "0"))
	}
}

// ----------------------------------------------------------------------------
// Instruction emission

// emit appends instr to the current block and returns its name, or "" if
// instr produces no value. Emitting after a terminator opens a new
// (unreachable) block so that each block keeps a single trailing
// terminator.
func (g *Generator) emit(instr ir.Instruction) string {
	if g.b.IsTerminated() {
		g.b = g.newBlock()
	}
	switch instr.(type) {
	case *ir.Store, *ir.Br, *ir.CondBr, *ir.Ret:
	default:
		instr.SetName(g.instrName())
	}
	g.b.Append(instr)
	return instr.Name()
}

func (g *Generator) constant(typ ir.Type, value string) string {
	return g.emit(&ir.Const{Type: typ, Value: value})
}

func (g *Generator) alloca() string {
	return g.emit(&ir.Alloca{Type: ir.Int32})
}

func (g *Generator) load(ptr string) string {
	return g.emit(&ir.Load{Type: ir.Int32, Pointer: ptr})
}

func (g *Generator) store(value, ptr string) {
	g.emit(&ir.Store{Type: ir.Int32, Value: value, Pointer: ptr})
}

func (g *Generator) br(target *ir.Block) {
	g.emit(&ir.Br{Target: target.Name})
}

// brIfOpen branches to target unless the current block already ended,
// e.g. with a return.
func (g *Generator) brIfOpen(target *ir.Block) {
	if !g.b.IsTerminated() {
		g.br(target)
	}
}

func (g *Generator) condBr(cond string, t, f *ir.Block) {
	g.emit(&ir.CondBr{Cond: cond, True: t.Name, False: f.Name})
}

func (g *Generator) ret(value string) {
	g.emit(&ir.Ret{Type: ir.Int32, Value: value})
}

// ----------------------------------------------------------------------------
// Statements

func (g *Generator) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case nil:
		// absent optional child

	case *syntax.ExprStmt:
		g.expr(s.X)

	case *syntax.PrintStmt:
		format := g.constant(ir.Pointer, `%d\n`)
		arg := g.expr(s.X)
		g.emit(&ir.Call{Type: ir.Int32, Func: "printf", Args: []string{format, arg}})

	case *syntax.VarStmt:
		g.decl(s.Name, s.Init)

	case *syntax.ConstStmt:
		g.decl(s.Name, s.Init)

	case *syntax.BlockStmt:
		if s == nil {
			return
		}
		for _, inner := range s.Stmts {
			g.stmt(inner)
		}

	case *syntax.IfStmt:
		g.ifStmt(s)

	case *syntax.WhileStmt:
		g.whileStmt(s)

	case *syntax.ForStmt:
		g.forStmt(s)

	case *syntax.ReturnStmt:
		var value string
		if s.Value != nil {
			value = g.expr(s.Value)
		} else {
			value = g.constant(ir.Int32, "0")
		}
		g.ret(value)

	case *syntax.FuncStmt:
		g.funcStmt(s)

	case *syntax.StructStmt, *syntax.ClassStmt:
		// Declarations only; no layout or dispatch is generated.

	default:
		glog.V(3).Infof("irgen: skipping %T at %s", s, s.Pos())
	}
}

// decl lowers let/const: the initializer (or 0) is stored into a new slot.
func (g *Generator) decl(name string, init syntax.Expr) {
	var value string
	if init != nil {
		value = g.expr(init)
	} else {
		value = g.constant(ir.Int32, "0")
	}
	slot := g.alloca()
	g.store(value, slot)
	g.vars[name] = slot
}

// funcStmt lowers a function declaration into a sibling function with its
// own entry block and an empty variable map. Parameters are spilled to
// stack slots on entry.
func (g *Generator) funcStmt(s *syntax.FuncStmt) {
	fn := ir.NewFunction(s.Name, ir.Int32)
	entry := fn.NewBlock(g.blockName())

	outerFn, outerBlock, outerVars := g.fn, g.b, g.vars
	g.fn, g.b, g.vars = fn, entry, make(map[string]string)

	for _, p := range s.Params {
		param := ir.Param{Name: paramPrefix + p.Name, Type: ir.Int32}
		fn.Params = append(fn.Params, param)
		slot := g.alloca()
		g.store(param.Name, slot)
		g.vars[p.Name] = slot
	}

	g.stmt(s.Body)
	g.finish()
	g.module.AddFunction(fn)

	g.fn, g.b, g.vars = outerFn, outerBlock, outerVars
}

// ifStmt lowers
//
//	cur:   cond_br %c, then, else
//	then:  ...; br merge
//	else:  ...; br merge
//	merge:
func (g *Generator) ifStmt(s *syntax.IfStmt) {
	cond := g.expr(s.Cond)

	thenBlock := g.newBlock()
	elseBlock := g.newBlock()
	merge := g.newBlock()

	g.condBr(cond, thenBlock, elseBlock)

	g.b = thenBlock
	g.stmt(s.Then)
	g.brIfOpen(merge)

	g.b = elseBlock
	g.stmt(s.Else)
	g.brIfOpen(merge)

	g.b = merge
}

// whileStmt lowers
//
//	cur:   br cond
//	cond:  cond_br %c, body, merge
//	body:  ...; br cond
//	merge:
func (g *Generator) whileStmt(s *syntax.WhileStmt) {
	condBlock := g.newBlock()
	body := g.newBlock()
	merge := g.newBlock()

	g.br(condBlock)

	g.b = condBlock
	g.condBr(g.expr(s.Cond), body, merge)

	g.b = body
	g.stmt(s.Body)
	g.brIfOpen(condBlock)

	g.b = merge
}

// forStmt lowers the initializer in place, then a while loop with an
// increment block between the body and the back edge. A missing condition
// branches straight into the body.
func (g *Generator) forStmt(s *syntax.ForStmt) {
	g.stmt(s.Init)

	condBlock := g.newBlock()
	body := g.newBlock()
	incr := g.newBlock()
	merge := g.newBlock()

	g.br(condBlock)

	g.b = condBlock
	if s.Cond != nil {
		g.condBr(g.expr(s.Cond), body, merge)
	} else {
		g.br(body)
	}

	g.b = body
	g.stmt(s.Body)
	g.brIfOpen(incr)

	g.b = incr
	if s.Incr != nil {
		g.expr(s.Incr)
	}
	g.br(condBlock)

	g.b = merge
}
