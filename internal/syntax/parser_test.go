package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// Test helpers

type parseError struct {
	pos Pos
	msg string
}

func parse(t *testing.T, src string) []Stmt {
	t.Helper()
	stmts, errs := parseWithErrors(t, src)
	require.Empty(t, errs, "unexpected syntax errors")
	return stmts
}

func parseWithErrors(t *testing.T, src string) ([]Stmt, []parseError) {
	t.Helper()
	var errs []parseError
	p := NewParser(src, func(pos Pos, msg string) {
		errs = append(errs, parseError{pos: pos, msg: msg})
	})
	stmts := p.Parse()
	assert.Equal(t, len(errs), p.Errors())
	assert.Equal(t, len(errs) > 0, p.HadError())
	return stmts, errs
}

func render(stmts []Stmt) []string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = String(s)
	}
	return out
}

// ----------------------------------------------------------------------------
// Well-formed programs

func TestParseVarDecl(t *testing.T) {
	stmts := parse(t, "let x: int = 10;")
	require.Len(t, stmts, 1)

	v, ok := stmts[0].(*VarStmt)
	require.True(t, ok, "got %T, want *VarStmt", stmts[0])
	assert.Equal(t, "x", v.Name)
	assert.Equal(t, "int", v.Type)
	assert.Equal(t, NewPos(1, 1), v.Pos())

	lit, ok := v.Init.(*Literal)
	require.True(t, ok, "got %T, want *Literal", v.Init)
	assert.Equal(t, "10", lit.Value)
	assert.Equal(t, NumberLit, lit.Type)
}

func TestParseMemberCall(t *testing.T) {
	stmts := parse(t, "a.b(c);")
	require.Len(t, stmts, 1)

	es := stmts[0].(*ExprStmt)
	call, ok := es.X.(*Call)
	require.True(t, ok, "got %T, want *Call", es.X)
	require.Len(t, call.Args, 1)
	assert.Equal(t, "c", call.Args[0].(*Identifier).Name)

	m, ok := call.Callee.(*Member)
	require.True(t, ok, "got %T, want *Member", call.Callee)
	assert.Equal(t, "b", m.Name)
	assert.Equal(t, "a", m.Object.(*Identifier).Name)
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"const", "const k = 1;", "(const k = 1)"},
		{"let_no_init", "let s: string;", "(var s: string)"},
		{"precedence", "1 + 2 * 3;", "(+ 1 (* 2 3));"},
		{"left_assoc", "a - b - c;", "(- (- a b) c);"},
		{"grouping", "(1 + 2) * 3;", "(* (group (+ 1 2)) 3);"},
		{"assign_right_assoc", "a = b = 1;", "(= a (= b 1));"},
		{"unary", "!-x;", "(! (- x));"},
		{"logical", "x == 1 || y < 2 && z;", "(|| (== x 1) (&& (< y 2) z));"},
		{"comparison", "a >= b;", "(>= a b);"},
		{"string", `"hi";`, "hi;"},
		{"character", "'c';", "c;"},
		{"bools", "true != false;", "(!= true false);"},
		{"call_chain", "f(1)(2);", "(call (call f 1) 2);"},
		{"call_then_member", "a.b(c).d;", "(. (call (. a b) c) d);"},
		{"index", "[1, 2][0];", "(index (array 1 2) 0);"},
		{"object", `x = {a: 1, b: "s"};`, "(= x (object (a 1) (b s)));"},
		{"this", "this.x;", "(. this x);"},
		{"super", "super.m();", "(call (super m));"},
		{"super_as_name", "super;", "super;"},
		{"await", "await f();", "(await (call f));"},
		{"yield", "yield;", "(yield);"},
		{"yield_value", "yield x + 1;", "(+ (yield x) 1);"},
		{
			"function",
			"fn add(a: int, b: int): int { return a + b; }",
			"(fn add (a: int b: int): int (block (return (+ a b))))",
		},
		{"function_untyped", "fn f(a) {}", "(fn f (a) (block))"},
		{"bare_return", "fn f() { return; }", "(fn f () (block (return)))"},
		{
			"if_else",
			"if (x > 1) { print(x); } else y;",
			"(if (> x 1) (block (call print x);) y;)",
		},
		{"while", "while (i < 10) { i = i + 1; }", "(while (< i 10) (block (= i (+ i 1));))"},
		{
			"for",
			"for (let i = 0; i < 3; i = i + 1) {}",
			"(for (var i = 0) (< i 3) (= i (+ i 1)) (block))",
		},
		{"for_empty", "for (;;) x;", "(for nil nil nil x;)"},
		{"for_expr_init", "for (i = 0; ; ) {}", "(for (= i 0); nil nil (block))"},
		{
			"class",
			"class A < B { m() { return this; } n(x) {} }",
			"(class A < B (fn m () (block (return this))) (fn n (x) (block)) )",
		},
		{"class_empty", "class A {}", "(class A )"},
		{"struct", "struct P { x: int, y: int }", "(struct P (x: int y: int))"},
		{
			"try",
			"try { a; } catch (e: Error) { b; } finally { c; }",
			"(try (block a;) (catch (e: Error) (block b;)) (block c;))",
		},
		{"try_untyped_catch", "try {} catch (e) {}", "(try (block) (catch (e) (block)))"},
		{"throw", "throw err;", "(throw err)"},
		{"throw_call", "throw make(1);", "(throw (call make 1))"},
		{"throw_as_name", "throw;", "throw;"},
		{"process_block", "process.spawn(() -> { a; });", "(process spawn block)"},
		{"process_expr", "process.spawn(() -> work());", "(process spawn (call work))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := parse(t, tt.src)
			require.Len(t, stmts, 1)
			assert.Equal(t, tt.want, String(stmts[0]))
		})
	}
}

func TestParseFunctionModifiers(t *testing.T) {
	stmts := parse(t, "fn async coroutine gen() {}")
	require.Len(t, stmts, 1)
	f := stmts[0].(*FuncStmt)
	assert.Equal(t, "gen", f.Name)
	assert.True(t, f.IsAsync)
	assert.True(t, f.IsCoroutine)
}

func TestParseProgram(t *testing.T) {
	src := `
let x = 1;
fn main() {
	println("hi");
}
`
	stmts := parse(t, src)
	assert.Equal(t, []string{
		"(var x = 1)",
		"(fn main () (block (call println hi);))",
	}, render(stmts))
	assert.Equal(t, NewPos(3, 1), stmts[1].Pos())
}

// ----------------------------------------------------------------------------
// Errors and recovery

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		errs  []string
		stmts []string
	}{
		{
			"invalid_assignment_target",
			"5 = 3; let y = 1;",
			[]string{"1:6: Invalid assignment target."},
			[]string{"5;", "(var y = 1)"},
		},
		{
			"missing_semicolon",
			"let x = 1 let y = 2;",
			[]string{"1:11: Expect ';' after variable declaration."},
			[]string{"(var x = 1)", "(var y = 2)"},
		},
		{
			"missing_expression",
			"let x = ; let y = 2;",
			[]string{"1:9: Expect expression."},
			[]string{"(var x = null)", "(var y = 2)"},
		},
		{
			"synchronize",
			"x + ) foo; let y = 1;",
			[]string{"1:5: Expect expression.", "1:5: Expect ';' after expression."},
			[]string{"(+ x null);", "(var y = 1)"},
		},
		{
			"lexical_error",
			"let x = @;",
			[]string{"1:10: Unexpected character", "1:10: Expect expression."},
			[]string{"(var x = null)"},
		},
		{
			"struct_field",
			"struct P { x int }",
			[]string{"1:14: Expect ':' after field name."},
			[]string{"(struct P (x: int))"},
		},
		{
			"throw_semicolon",
			"throw e",
			[]string{"1:8: Expect ';' after throw expression."},
			[]string{"(throw e)"},
		},
		{
			"process_spawn",
			"process.run(() -> x);",
			[]string{"1:12: Expect 'spawn' after 'process.'."},
			[]string{"(process spawn x)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, errs := parseWithErrors(t, tt.src)
			var got []string
			for _, e := range errs {
				got = append(got, e.pos.String()+": "+e.msg)
			}
			assert.Equal(t, tt.errs, got)
			assert.Equal(t, tt.stmts, render(stmts))
		})
	}
}

func TestParseNoRecover(t *testing.T) {
	src := "x + ) foo; let y = 1;"

	p := NewParser(src, nil)
	p.Recover = false
	stmts := p.Parse()
	assert.Equal(t, []string{"(+ x null);", "null;", "foo;", "(var y = 1)"}, render(stmts))
	assert.Equal(t, 4, p.Errors())
}

func TestParseTerminates(t *testing.T) {
	srcs := []string{
		"}",
		")))",
		"class A { 1 }",
		"fn (",
		"if (",
		"for (let",
		"struct { , }",
		"try catch finally",
		"process.spawn(",
		"{ { {",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			p := NewParser(src, nil)
			p.Parse()
			assert.True(t, p.HadError())
		})
	}
}

func TestFirstError(t *testing.T) {
	p := NewParser("let = 1;", nil)
	p.Parse()
	require.Error(t, p.FirstError())
	assert.Equal(t, "Error at line 1, column 5: Expect variable name.", p.FirstError().Error())

	p = NewParser("let x = 1;", nil)
	p.Parse()
	assert.NoError(t, p.FirstError())
}
