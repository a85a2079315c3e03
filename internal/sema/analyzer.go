package sema

import (
	"github.com/golang/glog"

	"github.com/you-not-fish/nexus/internal/diag"
	"github.com/you-not-fish/nexus/internal/syntax"
)

// Analyzer checks a parsed program for naming and typing errors.
// It never stops at the first error: every violation is reported to the
// sink and analysis continues to the end of the program. The AST is not
// modified.
type Analyzer struct {
	sink   diag.Sink
	scopes *Scopes

	diags  []diag.Diagnostic
	errors int

	// Every fn lowers to a module-level function, so names must be unique
	// across the whole program, not only among visible scopes.
	funcs map[string]bool

	// WarnConstAssign reports assignments to constants as warnings.
	// Warnings never count as errors.
	WarnConstAssign bool
}

// entryFunc names the function that holds the top-level statements.
const entryFunc = "main"

// NewAnalyzer returns an analyzer whose outermost scope holds the
// predeclared names. Diagnostics are issued to sink; a nil sink only
// records them.
func NewAnalyzer(sink diag.Sink) *Analyzer {
	if sink == nil {
		sink = diag.NewSink(diag.FormatOptions{}, nil)
	}
	s := NewScopes()
	defPredeclared(s)
	return &Analyzer{sink: sink, scopes: s, funcs: make(map[string]bool)}
}

// Analyze checks stmts. Scopes persist across calls, so a program may be
// analyzed in several pieces.
func (a *Analyzer) Analyze(stmts []syntax.Stmt) {
	glog.V(3).Infof("sema: analyzing %d top-level statements", len(stmts))
	for _, s := range stmts {
		a.stmt(s)
	}
	glog.V(3).Infof("sema: done, %d error(s)", a.errors)
}

// HadError reports whether any semantic error was reported.
func (a *Analyzer) HadError() bool {
	return a.errors > 0
}

// Diagnostics returns the diagnostics issued by this analyzer, in order.
func (a *Analyzer) Diagnostics() []diag.Diagnostic {
	return a.diags
}

func (a *Analyzer) report(d diag.Diagnostic) {
	if d.Category.IsError() {
		a.errors++
	}
	a.diags = append(a.diags, d)
	a.sink.Add(d)
}

func (a *Analyzer) errorf(d *diag.Diag, args ...interface{}) {
	a.report(diag.New(diag.Semantic, d, args...))
}

// undefinedf reports an undefined name, suggesting the closest candidate.
func (a *Analyzer) undefinedf(d *diag.Diag, name string, candidates []string) {
	e := diag.New(diag.Semantic, d, name)
	if s := suggest(name, candidates); s != "" {
		e = e.WithNote("did you mean '%s'?", s)
	}
	a.report(e)
}

// ----------------------------------------------------------------------------
// Statements

func (a *Analyzer) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case nil:
	case *syntax.BlockStmt:
		a.block(s)
	case *syntax.VarStmt:
		a.decl(s.Name, s.Type, s.Init, false)
	case *syntax.ConstStmt:
		a.decl(s.Name, s.Type, s.Init, true)
	case *syntax.FuncStmt:
		a.funcStmt(s)
	case *syntax.ClassStmt:
		a.classStmt(s)
	case *syntax.StructStmt:
		a.structStmt(s)
	case *syntax.IfStmt:
		a.cond("If", s.Cond)
		a.stmt(s.Then)
		if s.Else != nil {
			a.stmt(s.Else)
		}
	case *syntax.WhileStmt:
		a.cond("While", s.Cond)
		a.stmt(s.Body)
	case *syntax.ForStmt:
		if s.Init != nil {
			a.stmt(s.Init)
		}
		if s.Cond != nil {
			a.cond("For", s.Cond)
		}
		if s.Incr != nil {
			a.expr(s.Incr)
		}
		a.stmt(s.Body)
	case *syntax.ReturnStmt:
		if s.Value != nil {
			a.expr(s.Value)
		}
	case *syntax.ExprStmt:
		a.expr(s.X)
	case *syntax.PrintStmt:
		a.expr(s.X)
	case *syntax.TryStmt:
		if s.Body != nil {
			a.block(s.Body)
		}
		for _, c := range s.Catches {
			a.catchStmt(c)
		}
		if s.Finally != nil {
			a.block(s.Finally)
		}
	case *syntax.CatchStmt:
		a.catchStmt(s)
	case *syntax.ThrowStmt:
		a.expr(s.X)
	case *syntax.ProcessStmt:
		a.expr(s.Body)
	}
}

func (a *Analyzer) block(b *syntax.BlockStmt) {
	a.scopes.Push()
	for _, s := range b.Stmts {
		a.stmt(s)
	}
	a.scopes.Pop()
}

// decl checks a let or const declaration. The name must not be visible
// in any enclosing scope.
func (a *Analyzer) decl(name, annot string, init syntax.Expr, isConst bool) {
	if a.scopes.LookupVar(name) != nil {
		if isConst {
			a.errorf(ErrorConstantRedefined, name)
		} else {
			a.errorf(ErrorVariableRedefined, name)
		}
	}

	var typ Type
	switch {
	case annot != "":
		typ = Parse(annot)
		if typ.Kind == Struct {
			if _, ok := a.scopes.LookupStruct(typ.Name); !ok {
				a.errorf(ErrorUnknownType, annot)
			}
		}
		a.scopes.DefineVar(&Var{Name: name, Type: typ, Const: isConst})
		if init != nil {
			if got := a.expr(init); !Compatible(typ, got) {
				a.errorf(ErrorTypeMismatch, typ, got)
			}
		}
	case init != nil:
		typ = a.expr(init)
		a.scopes.DefineVar(&Var{Name: name, Type: typ, Const: isConst})
	default:
		a.scopes.DefineVar(&Var{Name: name, Type: TypAny, Const: isConst})
	}

	if isConst && init == nil {
		a.errorf(ErrorConstantUninitialized, name)
	}
}

// funcStmt binds the function before walking its body, so it may call
// itself. Parameters live in their own scope around the body block.
func (a *Analyzer) funcStmt(f *syntax.FuncStmt) {
	if f.Name == entryFunc {
		a.errorf(ErrorFunctionReserved, f.Name)
	} else if _, ok := a.scopes.LookupFunc(f.Name); ok || a.funcs[f.Name] {
		a.errorf(ErrorFunctionRedefined, f.Name)
	}
	a.funcs[f.Name] = true
	a.scopes.DefineFunc(f.Name, Parse(f.ReturnType))

	a.scopes.Push()
	a.params(f.Params)
	if f.Body != nil {
		a.block(f.Body)
	}
	a.scopes.Pop()
}

func (a *Analyzer) params(params []syntax.Param) {
	for _, p := range params {
		a.scopes.DefineVar(&Var{Name: p.Name, Type: Parse(p.Type)})
	}
}

// classStmt checks a class. Classes share the struct namespace.
func (a *Analyzer) classStmt(c *syntax.ClassStmt) {
	if _, ok := a.scopes.LookupStruct(c.Name); ok {
		a.errorf(ErrorClassRedefined, c.Name)
	}
	if c.Superclass != "" {
		if _, ok := a.scopes.LookupStruct(c.Superclass); !ok {
			a.errorf(ErrorSuperclassUndefined, c.Superclass)
		}
	}
	a.scopes.DefineStruct(c.Name, nil)

	a.scopes.Push()
	for _, m := range c.Methods {
		a.funcStmt(m)
	}
	a.scopes.Pop()
}

// structStmt records the struct's fields as written; field types are
// not checked.
func (a *Analyzer) structStmt(s *syntax.StructStmt) {
	if _, ok := a.scopes.LookupStruct(s.Name); ok {
		a.errorf(ErrorStructRedefined, s.Name)
	}
	a.scopes.DefineStruct(s.Name, s.Fields)
}

func (a *Analyzer) catchStmt(c *syntax.CatchStmt) {
	a.scopes.Push()
	typ := TypError
	if c.Type != "" {
		typ = Parse(c.Type)
	}
	a.scopes.DefineVar(&Var{Name: c.Name, Type: typ})
	if c.Body != nil {
		a.block(c.Body)
	}
	a.scopes.Pop()
}

// cond checks that a loop or branch condition is boolean. kind names the
// statement in the message.
func (a *Analyzer) cond(kind string, x syntax.Expr) {
	if t := a.expr(x); t.Kind != Bool && !t.IsAny() {
		a.errorf(ErrorConditionNotBool, kind, t)
	}
}
