package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the statements to w.
func FprintJSON(w io.Writer, stmts []Stmt) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mapSlice(stmts, func(s Stmt) interface{} { return toJSON(s) }))
}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	m := map[string]interface{}{"pos": node.Pos().String()}
	switch n := node.(type) {
	case *Binary:
		m["type"] = "Binary"
		m["op"] = n.Op
		m["left"] = toJSON(n.Left)
		m["right"] = toJSON(n.Right)

	case *Unary:
		m["type"] = "Unary"
		m["op"] = n.Op
		m["right"] = toJSON(n.Right)

	case *Literal:
		m["type"] = "Literal"
		m["value"] = n.Value
		m["kind"] = n.Type

	case *Identifier:
		m["type"] = "Identifier"
		m["name"] = n.Name

	case *Assign:
		m["type"] = "Assign"
		m["name"] = n.Name
		m["value"] = toJSON(n.Value)

	case *Call:
		m["type"] = "Call"
		m["callee"] = toJSON(n.Callee)
		m["args"] = mapSlice(n.Args, exprJSON)

	case *Member:
		m["type"] = "Member"
		m["object"] = toJSON(n.Object)
		m["name"] = n.Name

	case *This:
		m["type"] = "This"

	case *Super:
		m["type"] = "Super"
		m["method"] = n.Method

	case *Grouping:
		m["type"] = "Grouping"
		m["inner"] = toJSON(n.Inner)

	case *Array:
		m["type"] = "Array"
		m["elements"] = mapSlice(n.Elements, exprJSON)

	case *Object:
		m["type"] = "Object"
		m["properties"] = mapSlice(n.Properties, func(p Property) interface{} {
			return map[string]interface{}{"key": p.Key, "value": toJSON(p.Value)}
		})

	case *Index:
		m["type"] = "Index"
		m["object"] = toJSON(n.Object)
		m["index"] = toJSON(n.Index)

	case *Lambda:
		m["type"] = "Lambda"
		m["params"] = mapSlice(n.Params, paramJSON)
		m["body"] = toJSON(n.Body)

	case *Await:
		m["type"] = "Await"
		m["inner"] = toJSON(n.Inner)

	case *Yield:
		m["type"] = "Yield"
		if n.Inner != nil {
			m["inner"] = toJSON(n.Inner)
		}

	case *ExprStmt:
		m["type"] = "ExprStmt"
		m["expr"] = toJSON(n.X)

	case *PrintStmt:
		m["type"] = "PrintStmt"
		m["expr"] = toJSON(n.X)

	case *VarStmt:
		m["type"] = "VarStmt"
		declJSON(m, n.Name, n.Type, n.Init)

	case *ConstStmt:
		m["type"] = "ConstStmt"
		declJSON(m, n.Name, n.Type, n.Init)

	case *BlockStmt:
		m["type"] = "BlockStmt"
		m["stmts"] = mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) })

	case *IfStmt:
		m["type"] = "IfStmt"
		m["cond"] = toJSON(n.Cond)
		m["then"] = toJSON(n.Then)
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}

	case *WhileStmt:
		m["type"] = "WhileStmt"
		m["cond"] = toJSON(n.Cond)
		m["body"] = toJSON(n.Body)

	case *ForStmt:
		m["type"] = "ForStmt"
		m["init"] = toJSON(n.Init)
		m["cond"] = toJSON(n.Cond)
		m["incr"] = toJSON(n.Incr)
		m["body"] = toJSON(n.Body)

	case *ReturnStmt:
		m["type"] = "ReturnStmt"
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}

	case *FuncStmt:
		m["type"] = "FuncStmt"
		m["name"] = n.Name
		m["params"] = mapSlice(n.Params, paramJSON)
		if n.ReturnType != "" {
			m["result"] = n.ReturnType
		}
		if n.IsAsync {
			m["async"] = true
		}
		if n.IsCoroutine {
			m["coroutine"] = true
		}
		m["body"] = toJSON(n.Body)

	case *ClassStmt:
		m["type"] = "ClassStmt"
		m["name"] = n.Name
		if n.Superclass != "" {
			m["super"] = n.Superclass
		}
		m["methods"] = mapSlice(n.Methods, func(f *FuncStmt) interface{} { return toJSON(f) })

	case *StructStmt:
		m["type"] = "StructStmt"
		m["name"] = n.Name
		m["fields"] = mapSlice(n.Fields, paramJSON)

	case *TryStmt:
		m["type"] = "TryStmt"
		m["body"] = toJSON(n.Body)
		m["catches"] = mapSlice(n.Catches, func(c *CatchStmt) interface{} { return toJSON(c) })
		if n.Finally != nil {
			m["finally"] = toJSON(n.Finally)
		}

	case *CatchStmt:
		m["type"] = "CatchStmt"
		m["name"] = n.Name
		if n.Type != "" {
			m["vartype"] = n.Type
		}
		m["body"] = toJSON(n.Body)

	case *ThrowStmt:
		m["type"] = "ThrowStmt"
		m["expr"] = toJSON(n.X)

	case *ProcessStmt:
		m["type"] = "ProcessStmt"
		m["id"] = n.ID
		m["body"] = toJSON(n.Body)

	default:
		m["type"] = "Unknown"
	}
	return m
}

func declJSON(m map[string]interface{}, name, typ string, init Expr) {
	m["name"] = name
	if typ != "" {
		m["vartype"] = typ
	}
	if init != nil {
		m["value"] = toJSON(init)
	}
}

func exprJSON(x Expr) interface{} { return toJSON(x) }

func paramJSON(p Param) interface{} {
	m := map[string]interface{}{"name": p.Name}
	if p.Type != "" {
		m["vartype"] = p.Type
	}
	return m
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
