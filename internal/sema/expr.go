package sema

import (
	"github.com/you-not-fish/nexus/internal/diag"
	"github.com/you-not-fish/nexus/internal/syntax"
)

// expr checks x and returns its type. Errors yield Any so that checking
// can continue.
func (a *Analyzer) expr(x syntax.Expr) Type {
	switch x := x.(type) {
	case nil:
		return TypAny
	case *syntax.Binary:
		return a.binary(x)
	case *syntax.Unary:
		return a.unary(x)
	case *syntax.Literal:
		return literalType(x.Type)
	case *syntax.Identifier:
		return a.ident(x)
	case *syntax.Assign:
		return a.assign(x)
	case *syntax.Call:
		return a.call(x)
	case *syntax.Member:
		a.expr(x.Object)
		return TypAny
	case *syntax.This, *syntax.Super:
		return TypAny
	case *syntax.Grouping:
		return a.expr(x.Inner)
	case *syntax.Array:
		for _, e := range x.Elements {
			a.expr(e)
		}
		return TypObject
	case *syntax.Object:
		for _, p := range x.Properties {
			a.expr(p.Value)
		}
		return TypObject
	case *syntax.Index:
		a.expr(x.Object)
		a.expr(x.Index)
		return TypAny
	case *syntax.Lambda:
		a.scopes.Push()
		a.params(x.Params)
		a.expr(x.Body)
		a.scopes.Pop()
		return TypFunction
	case *syntax.Await:
		a.expr(x.Inner)
		return TypAny
	case *syntax.Yield:
		a.expr(x.Inner)
		return TypAny
	}
	return TypAny
}

// binary checks l op r. Operands must be compatible; on mismatch the
// result is computed from the left operand's type.
func (a *Analyzer) binary(x *syntax.Binary) Type {
	l := a.expr(x.Left)
	r := a.expr(x.Right)
	if !Compatible(l, r) {
		a.errorf(ErrorBinaryMismatch, l, r)
	}

	switch x.Op {
	case "+":
		if l.Kind == String || r.Kind == String {
			return TypString
		}
		if l.Kind == Number || r.Kind == Number {
			return TypNumber
		}
	case "-", "*", "/", "%":
		if l.Kind == Number || r.Kind == Number {
			return TypNumber
		}
	case "==", "!=", "<", "<=", ">", ">=":
		return TypBool
	case "&&", "||":
		for _, t := range []Type{l, r} {
			if t.Kind != Bool && !t.IsAny() {
				a.errorf(ErrorLogicalOperands, x.Op, t)
			}
		}
		return TypBool
	}
	return l
}

func (a *Analyzer) unary(x *syntax.Unary) Type {
	t := a.expr(x.Right)
	switch x.Op {
	case "!":
		if t.Kind != Bool && !t.IsAny() {
			a.errorf(ErrorLogicalOperand, x.Op, t)
		}
		return TypBool
	case "-":
		if !t.isNumeric() {
			a.errorf(ErrorNegateOperand, t)
		}
		return TypNumber
	}
	return t
}

// ident resolves a name. Variables take priority over functions; a
// function name evaluates to its return type.
func (a *Analyzer) ident(x *syntax.Identifier) Type {
	if v := a.scopes.LookupVar(x.Name); v != nil {
		return v.Type
	}
	if t, ok := a.scopes.LookupFunc(x.Name); ok {
		return t
	}
	a.undefinedf(ErrorUndefinedIdentifier, x.Name,
		append(a.scopes.visibleVars(), a.scopes.visibleFuncs()...))
	return TypAny
}

func (a *Analyzer) assign(x *syntax.Assign) Type {
	t := a.expr(x.Value)
	v := a.scopes.LookupVar(x.Name)
	if v == nil {
		a.undefinedf(ErrorUndefinedVariable, x.Name, a.scopes.visibleVars())
		return TypAny
	}
	if v.Const && a.WarnConstAssign {
		a.report(diag.New(diag.Warning, WarningConstAssign, x.Name))
	}
	if !Compatible(v.Type, t) {
		a.errorf(ErrorAssignMismatch, v.Type, t)
	}
	return t
}

// call checks a call. A named callee must be a declared function or one
// of the builtin calls; arguments are checked only for their own errors.
// Calls always yield Any.
func (a *Analyzer) call(x *syntax.Call) Type {
	a.expr(x.Callee)
	if id, ok := x.Callee.(*syntax.Identifier); ok {
		if _, defined := a.scopes.LookupFunc(id.Name); !defined && !builtinCalls[id.Name] {
			candidates := a.scopes.visibleFuncs()
			for name := range builtinCalls {
				candidates = append(candidates, name)
			}
			a.undefinedf(ErrorUndefinedFunction, id.Name, candidates)
		}
	}
	for _, arg := range x.Args {
		a.expr(arg)
	}
	return TypAny
}
