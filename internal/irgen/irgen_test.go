package irgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/nexus/internal/ir"
	"github.com/you-not-fish/nexus/internal/syntax"
)

func generate(t *testing.T, src string) *ir.Module {
	t.Helper()
	p := syntax.NewParser(src, func(pos syntax.Pos, msg string) {
		t.Fatalf("syntax error at %s: %s", pos, msg)
	})
	m := NewGenerator().Generate(p.Parse())
	require.NoError(t, ir.Verify(m), m.String())
	return m
}

// opcodes returns the opcodes of b's instructions.
func opcodes(b *ir.Block) []ir.Opcode {
	ops := make([]ir.Opcode, len(b.Instrs))
	for i, instr := range b.Instrs {
		ops[i] = instr.Opcode()
	}
	return ops
}

func TestEmptyProgram(t *testing.T) {
	m := generate(t, "")
	want := "module @main\n" +
		"\n" +
		"define i32 @main() {\n" +
		"block0:\n" +
		"  %instr0 = const i32 0\n" +
		"  ret i32 %instr0\n" +
		"\n" +
		"}\n" +
		"\n"
	assert.Equal(t, want, m.String())
}

func TestVarDecl(t *testing.T) {
	m := generate(t, "let x: int = 10; let y; const z = x;")
	entry := m.Function("main").Entry()
	want := "block0:\n" +
		"  %instr0 = const i32 10\n" +
		"  %instr1 = alloca i32\n" +
		"  store i32 %instr0, ptr %instr1\n" +
		"  %instr2 = const i32 0\n" +
		"  %instr3 = alloca i32\n" +
		"  store i32 %instr2, ptr %instr3\n" +
		"  %instr4 = load i32, ptr %instr1\n" +
		"  %instr5 = alloca i32\n" +
		"  store i32 %instr4, ptr %instr5\n" +
		"  %instr6 = const i32 0\n" +
		"  ret i32 %instr6\n"
	assert.Equal(t, want, entry.String())
}

func TestFunction(t *testing.T) {
	m := generate(t, "fn add(a: int, b: int): int { return a + b; }")
	require.Len(t, m.Functions, 2)
	assert.Equal(t, "add", m.Functions[0].Name)
	assert.Equal(t, "main", m.Functions[1].Name)

	add := m.Function("add")
	require.Len(t, add.Blocks, 1)
	assert.Equal(t, []ir.Param{{Name: "%arg.a", Type: ir.Int32}, {Name: "%arg.b", Type: ir.Int32}}, add.Params)

	entry := add.Entry()
	assert.Equal(t, []ir.Opcode{
		ir.OpAlloca, ir.OpStore,
		ir.OpAlloca, ir.OpStore,
		ir.OpLoad, ir.OpLoad,
		ir.OpAdd,
		ir.OpRet,
	}, opcodes(entry))

	sum := entry.Instrs[6].(*ir.Binary)
	ret := entry.Instrs[7].(*ir.Ret)
	assert.Equal(t, sum.Name(), ret.Value)
	assert.Equal(t, "store i32 %a, ptr %instr0", entry.Instrs[1].String())
}

func TestFunctionImplicitReturn(t *testing.T) {
	m := generate(t, "fn f() { let x = 1; }")
	entry := m.Function("f").Entry()
	ops := opcodes(entry)
	assert.Equal(t, []ir.Opcode{ir.OpConst, ir.OpAlloca, ir.OpStore, ir.OpConst, ir.OpRet}, ops)
}

func TestFunctionScope(t *testing.T) {
	// Outer variables are not visible inside fn bodies and the outer map
	// is restored afterwards.
	m := generate(t, "let x = 1; fn f() { return x; } let y = x;")

	fEntry := m.Function("f").Entry()
	assert.Equal(t, []ir.Opcode{ir.OpConst, ir.OpRet}, opcodes(fEntry))

	mainEntry := m.Function("main").Entry()
	assert.Contains(t, opcodes(mainEntry), ir.OpLoad)
}

func TestNamesAreModuleWide(t *testing.T) {
	m := generate(t, "let a = 1; fn f() { return 2; } let b = 3;")
	seen := map[string]bool{}
	blocks := map[string]bool{}
	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			assert.False(t, blocks[b.Name], "duplicate block %s", b.Name)
			blocks[b.Name] = true
			for _, instr := range b.Instrs {
				if n := instr.Name(); n != "" {
					assert.False(t, seen[n], "duplicate name %s", n)
					seen[n] = true
				}
			}
		}
	}
	assert.Equal(t, "block1", m.Function("f").Entry().Name)
}

func TestIfElse(t *testing.T) {
	m := generate(t, "if (x > 0) { println(1); } else { println(2); }")
	main := m.Function("main")
	require.Len(t, main.Blocks, 4)

	entry, then, els, merge := main.Blocks[0], main.Blocks[1], main.Blocks[2], main.Blocks[3]

	condBr, ok := entry.Terminator().(*ir.CondBr)
	require.True(t, ok, "entry must end in cond_br")
	assert.Equal(t, then.Name, condBr.True)
	assert.Equal(t, els.Name, condBr.False)

	for _, b := range []*ir.Block{then, els} {
		br, ok := b.Terminator().(*ir.Br)
		require.True(t, ok, "%s must end in br", b.Name)
		assert.Equal(t, merge.Name, br.Target)
	}
	assert.Equal(t, ir.OpRet, merge.Terminator().Opcode())
}

func TestIfWithoutElse(t *testing.T) {
	m := generate(t, "if (true) { println(1); }")
	main := m.Function("main")
	require.Len(t, main.Blocks, 4)
	els := main.Blocks[2]
	require.Len(t, els.Instrs, 1)
	assert.Equal(t, "br label %"+main.Blocks[3].Name, els.Instrs[0].String())
}

func TestIfReturnBranches(t *testing.T) {
	m := generate(t, "fn f(a) { if (a) { return 1; } else { return 2; } }")
	f := m.Function("f")
	require.Len(t, f.Blocks, 4)
	for _, b := range f.Blocks[1:3] {
		assert.Equal(t, ir.OpRet, b.Terminator().Opcode(), b.Name)
		assert.Equal(t, 1, countTerminators(b), b.Name)
	}
}

func TestWhile(t *testing.T) {
	m := generate(t, "let x: int = 1; while (x < 3) { println(x); x = x + 1; }")
	main := m.Function("main")
	require.Len(t, main.Blocks, 4)

	entry, cond, body, merge := main.Blocks[0], main.Blocks[1], main.Blocks[2], main.Blocks[3]
	assert.Equal(t, "br label %"+cond.Name, entry.Terminator().String())

	condBr, ok := cond.Terminator().(*ir.CondBr)
	require.True(t, ok)
	assert.Equal(t, body.Name, condBr.True)
	assert.Equal(t, merge.Name, condBr.False)

	n := len(body.Instrs)
	require.GreaterOrEqual(t, n, 2)
	store, ok := body.Instrs[n-2].(*ir.Store)
	require.True(t, ok, "body must store x before the back edge")
	assert.Equal(t, entry.Instrs[1].Name(), store.Pointer)
	br, ok := body.Instrs[n-1].(*ir.Br)
	require.True(t, ok)
	assert.Equal(t, cond.Name, br.Target)
}

func TestFor(t *testing.T) {
	m := generate(t, "for (let i = 0; i < 3; i = i + 1) { println(i); }")
	main := m.Function("main")
	require.Len(t, main.Blocks, 5)

	cond, body, incr, merge := main.Blocks[1], main.Blocks[2], main.Blocks[3], main.Blocks[4]
	assert.Equal(t, []ir.Opcode{ir.OpConst, ir.OpAlloca, ir.OpStore, ir.OpBr}, opcodes(main.Blocks[0]))
	assert.Equal(t, "br label %"+incr.Name, body.Terminator().String())
	assert.Equal(t, "br label %"+cond.Name, incr.Terminator().String())
	assert.Contains(t, opcodes(incr), ir.OpStore)
	assert.Equal(t, ir.OpRet, merge.Terminator().Opcode())
}

func TestForWithoutClauses(t *testing.T) {
	m := generate(t, "for (;;) { println(1); }")
	main := m.Function("main")
	require.Len(t, main.Blocks, 5)
	cond, body, incr := main.Blocks[1], main.Blocks[2], main.Blocks[3]
	assert.Equal(t, "br label %"+body.Name, cond.Terminator().String())
	require.Len(t, incr.Instrs, 1)
	assert.Equal(t, "br label %"+cond.Name, incr.Instrs[0].String())
}

func TestCalls(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			"println_number",
			"println(42);",
			[]string{`const ptr %d\n`, "const i32 42", "call i32 @printf(%instr0, %instr1)"},
		},
		{
			"println_string",
			`println("hi");`,
			[]string{`const ptr %s\n`, "const ptr hi", "call i32 @printf(%instr0, %instr1)"},
		},
		{
			"println_empty",
			"println();",
			[]string{`const ptr \n`, "call i32 @printf(%instr0)"},
		},
		{
			"user_call",
			"foo(1, true);",
			[]string{"const i32 1", "const i1 true", "call i32 @foo(%instr0, %instr1)"},
		},
		{
			"member_callee",
			"a.b(1);",
			[]string{"call i32 @printf()"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := generate(t, tt.src).Function("main").Entry()
			got := make([]string, 0, len(tt.want))
			for _, instr := range entry.Instrs[:len(tt.want)] {
				got = append(got, instr.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string // last value-producing instruction before the implicit return
	}{
		{"1 - 2;", "sub i32 %instr0, %instr1"},
		{"1 * 2;", "mul i32 %instr0, %instr1"},
		{"1 / 2;", "div i32 %instr0, %instr1"},
		{"1 % 2;", "mod i32 %instr0, %instr1"},
		{"1 == 2;", "eq i32 %instr0, %instr1"},
		{"1 != 2;", "ne i32 %instr0, %instr1"},
		{"1 <= 2;", "le i32 %instr0, %instr1"},
		{"1 >= 2;", "ge i32 %instr0, %instr1"},
		{"true && false;", "and i32 %instr0, %instr1"},
		{"true || false;", "or i32 %instr0, %instr1"},
		{"!true;", "not i32 %instr0"},
		{"-1;", "sub i32 %instr0"},
		{"(1 + 2);", "add i32 %instr0, %instr1"},
		{"null;", "const i32 null"},
		{"undefinedName;", "const i32 0"},
		{"[1, 2];", "const i32 0"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			entry := generate(t, tt.src).Function("main").Entry()
			n := len(entry.Instrs)
			require.GreaterOrEqual(t, n, 3)
			assert.Equal(t, tt.want, entry.Instrs[n-3].String())
		})
	}
}

func TestAssignUnknownAllocates(t *testing.T) {
	entry := generate(t, "y = 5; y;").Function("main").Entry()
	assert.Equal(t, []ir.Opcode{
		ir.OpConst, ir.OpAlloca, ir.OpStore,
		ir.OpLoad,
		ir.OpConst, ir.OpRet,
	}, opcodes(entry))
}

func TestPrintStmt(t *testing.T) {
	stmts := []syntax.Stmt{&syntax.PrintStmt{X: &syntax.Literal{Value: "7", Type: syntax.NumberLit}}}
	entry := NewGenerator().Generate(stmts).Function("main").Entry()
	assert.Equal(t, `const ptr %d\n`, entry.Instrs[0].String())
	assert.Equal(t, "call i32 @printf(%instr0, %instr1)", entry.Instrs[2].String())
}

func TestParamNamedLikeValue(t *testing.T) {
	// The alloca for the parameter's slot is %instr0 as well.
	m := generate(t, "fn f(instr0) { return instr0; }")
	f := m.Function("f")
	require.Len(t, f.Params, 1)
	assert.Equal(t, "%arg.instr0", f.Params[0].Name)

	entry := f.Entry()
	require.GreaterOrEqual(t, len(entry.Instrs), 2)
	assert.Equal(t, "%instr0", entry.Instrs[0].Name())
	store, ok := entry.Instrs[1].(*ir.Store)
	require.True(t, ok)
	assert.Equal(t, "%arg.instr0", store.Value)
	assert.Equal(t, "%instr0", store.Pointer)
}

func TestDeclarationsLowerToNothing(t *testing.T) {
	entry := generate(t, "struct P { x: int } class A { m() {} }").Function("main").Entry()
	assert.Equal(t, []ir.Opcode{ir.OpConst, ir.OpRet}, opcodes(entry))
}

func TestCodeAfterReturn(t *testing.T) {
	m := generate(t, "fn f() { return 1; let x = 2; }")
	f := m.Function("f")
	require.Len(t, f.Blocks, 2)
	assert.Equal(t, ir.OpRet, f.Blocks[0].Terminator().Opcode())
	assert.Equal(t, 1, countTerminators(f.Blocks[0]))
	assert.True(t, f.Blocks[1].IsTerminated())
}

func TestGenerateIsRepeatable(t *testing.T) {
	p := syntax.NewParser("let x = 1; if (x) { x = 2; }", nil)
	stmts := p.Parse()
	g := NewGenerator()
	assert.Equal(t, g.Generate(stmts).String(), g.Generate(stmts).String())
}

func countTerminators(b *ir.Block) int {
	n := 0
	for _, instr := range b.Instrs {
		if instr.Opcode().IsTerminator() {
			n++
		}
	}
	return n
}
