package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the S-expression form of each statement to w, one per line.
func Fprint(w io.Writer, stmts []Stmt) error {
	for _, s := range stmts {
		if _, err := fmt.Fprintln(w, String(s)); err != nil {
			return err
		}
	}
	return nil
}

// String returns the S-expression form of n, e.g. "(var x: int = 10)".
func String(n Node) string {
	var sb strings.Builder
	p := &printer{sb: &sb}
	p.print(n)
	return sb.String()
}

type printer struct {
	sb *strings.Builder
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.sb, format, args...)
}

// printOpt prints n, or "nil" if n is absent.
func (p *printer) printOpt(n Node) {
	if isNil(n) {
		p.printf("nil")
		return
	}
	p.print(n)
}

func (p *printer) params(params []Param) {
	p.printf("(")
	for i, param := range params {
		if i > 0 {
			p.printf(" ")
		}
		p.printf("%s", param.Name)
		if param.Type != "" {
			p.printf(": %s", param.Type)
		}
	}
	p.printf(")")
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}

	switch n := node.(type) {
	// Expressions
	case *Binary:
		p.printf("(%s ", n.Op)
		p.print(n.Left)
		p.printf(" ")
		p.print(n.Right)
		p.printf(")")

	case *Unary:
		p.printf("(%s ", n.Op)
		p.print(n.Right)
		p.printf(")")

	case *Literal:
		p.printf("%s", n.Value)

	case *Identifier:
		p.printf("%s", n.Name)

	case *Assign:
		p.printf("(= %s ", n.Name)
		p.print(n.Value)
		p.printf(")")

	case *Call:
		p.printf("(call ")
		p.print(n.Callee)
		for _, arg := range n.Args {
			p.printf(" ")
			p.print(arg)
		}
		p.printf(")")

	case *Member:
		p.printf("(. ")
		p.print(n.Object)
		p.printf(" %s)", n.Name)

	case *This:
		p.printf("this")

	case *Super:
		p.printf("(super %s)", n.Method)

	case *Grouping:
		p.printf("(group ")
		p.print(n.Inner)
		p.printf(")")

	case *Array:
		p.printf("(array")
		for _, e := range n.Elements {
			p.printf(" ")
			p.print(e)
		}
		p.printf(")")

	case *Object:
		p.printf("(object")
		for _, prop := range n.Properties {
			p.printf(" (%s ", prop.Key)
			p.print(prop.Value)
			p.printf(")")
		}
		p.printf(")")

	case *Index:
		p.printf("(index ")
		p.print(n.Object)
		p.printf(" ")
		p.print(n.Index)
		p.printf(")")

	case *Lambda:
		p.printf("(lambda ")
		p.params(n.Params)
		p.printf(" ")
		p.print(n.Body)
		p.printf(")")

	case *Await:
		p.printf("(await ")
		p.print(n.Inner)
		p.printf(")")

	case *Yield:
		p.printf("(yield")
		if n.Inner != nil {
			p.printf(" ")
			p.print(n.Inner)
		}
		p.printf(")")

	// Statements
	case *ExprStmt:
		p.print(n.X)
		p.printf(";")

	case *PrintStmt:
		p.printf("(print ")
		p.print(n.X)
		p.printf(")")

	case *VarStmt:
		p.decl("var", n.Name, n.Type, n.Init)

	case *ConstStmt:
		p.decl("const", n.Name, n.Type, n.Init)

	case *BlockStmt:
		p.printf("(block")
		for _, s := range n.Stmts {
			p.printf(" ")
			p.print(s)
		}
		p.printf(")")

	case *IfStmt:
		p.printf("(if ")
		p.print(n.Cond)
		p.printf(" ")
		p.print(n.Then)
		if n.Else != nil {
			p.printf(" ")
			p.print(n.Else)
		}
		p.printf(")")

	case *WhileStmt:
		p.printf("(while ")
		p.print(n.Cond)
		p.printf(" ")
		p.print(n.Body)
		p.printf(")")

	case *ForStmt:
		p.printf("(for ")
		p.printOpt(n.Init)
		p.printf(" ")
		p.printOpt(n.Cond)
		p.printf(" ")
		p.printOpt(n.Incr)
		p.printf(" ")
		p.print(n.Body)
		p.printf(")")

	case *ReturnStmt:
		p.printf("(return")
		if n.Value != nil {
			p.printf(" ")
			p.print(n.Value)
		}
		p.printf(")")

	case *FuncStmt:
		p.printf("(fn %s ", n.Name)
		p.params(n.Params)
		if n.ReturnType != "" {
			p.printf(": %s", n.ReturnType)
		}
		p.printf(" ")
		p.print(n.Body)
		p.printf(")")

	case *ClassStmt:
		p.printf("(class %s", n.Name)
		if n.Superclass != "" {
			p.printf(" < %s", n.Superclass)
		}
		p.printf(" ")
		for _, m := range n.Methods {
			p.print(m)
			p.printf(" ")
		}
		p.printf(")")

	case *StructStmt:
		p.printf("(struct %s (", n.Name)
		for i, f := range n.Fields {
			if i > 0 {
				p.printf(" ")
			}
			p.printf("%s: %s", f.Name, f.Type)
		}
		p.printf("))")

	case *TryStmt:
		p.printf("(try ")
		p.print(n.Body)
		for _, c := range n.Catches {
			p.printf(" ")
			p.print(c)
		}
		if n.Finally != nil {
			p.printf(" ")
			p.print(n.Finally)
		}
		p.printf(")")

	case *CatchStmt:
		p.printf("(catch (%s", n.Name)
		if n.Type != "" {
			p.printf(": %s", n.Type)
		}
		p.printf(") ")
		p.print(n.Body)
		p.printf(")")

	case *ThrowStmt:
		p.printf("(throw ")
		p.print(n.X)
		p.printf(")")

	case *ProcessStmt:
		p.printf("(process %s ", n.ID)
		p.print(n.Body)
		p.printf(")")

	default:
		p.printf("<unknown node %T>", n)
	}
}

// isNil reports whether n is nil, including typed nil pointers stored in
// the interface (e.g. a nil *BlockStmt).
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *BlockStmt:
		return n == nil
	case *FuncStmt:
		return n == nil
	case *CatchStmt:
		return n == nil
	}
	return false
}

func (p *printer) decl(kw, name, typ string, init Expr) {
	p.printf("(%s %s", kw, name)
	if typ != "" {
		p.printf(": %s", typ)
	}
	if init != nil {
		p.printf(" = ")
		p.print(init)
	}
	p.printf(")")
}
