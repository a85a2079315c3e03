// Package codegen emits x86-64 assembly text (NASM syntax) for an IR
// module.
//
// The output is a readable, mechanical translation: every IR value lives
// in its own 8-byte stack slot addressed from rbp, and every instruction
// is expanded through a fixed register template preceded by a comment
// echoing the IR instruction.
package codegen

import (
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/you-not-fish/nexus/internal/ir"
	"github.com/you-not-fish/nexus/internal/rtabi"
)

// generator holds the state for emitting one module.
type generator struct {
	e *emitter

	strings   []string       // string constants in first-use order
	stringMap map[string]int // string constant -> index in strings

	frame *frame // current function's stack layout
}

// Generate writes the assembly for m to w.
func Generate(w io.Writer, m *ir.Module) error {
	g := &generator{
		e:         &emitter{w: w},
		stringMap: make(map[string]int),
	}
	for _, f := range m.Functions {
		g.collectStrings(f)
	}

	g.e.emitComment("Nexus Backend Code Generator")
	g.e.emitComment("Generated x86_64 Assembly Code (module %s)", m.Name)
	g.e.emitLine()
	g.e.emitComment("External functions")
	g.e.emit("extern %s", rtabi.FnPrintf)
	g.e.emit("global %s", rtabi.EntrySymbol)
	g.e.emitLine()

	if len(g.strings) > 0 {
		g.e.emit("section .rodata")
		for i, s := range g.strings {
			g.e.emit("%s: db `%s`, 0", stringLabel(i), nasmEscape(s))
		}
		g.e.emitLine()
	}

	g.e.emit("section .text")
	g.e.emitLine()
	for _, f := range m.Functions {
		g.lowerFunc(f)
	}

	if g.e.err != nil {
		return errors.Wrap(g.e.err, "emit assembly")
	}
	glog.V(3).Infof("codegen: %d functions, %d string constants", len(m.Functions), len(g.strings))
	return nil
}

// collectStrings registers the pointer constants of f in the string table.
func (g *generator) collectStrings(f *ir.Function) {
	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			if c, ok := instr.(*ir.Const); ok && c.Type == ir.Pointer {
				g.stringIndex(c.Value)
			}
		}
	}
}

// stringIndex returns the index of a string in the string table,
// adding it if not present.
func (g *generator) stringIndex(s string) int {
	if idx, ok := g.stringMap[s]; ok {
		return idx
	}
	idx := len(g.strings)
	g.strings = append(g.strings, s)
	g.stringMap[s] = idx
	return idx
}
