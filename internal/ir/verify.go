package ir

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Verify checks that function names in m are unique and the structural
// integrity of every function:
//
//   - every value-producing instruction is named, and names are unique
//     within the function
//   - every block ends in exactly one terminator
//   - branch targets name blocks of the same function
//   - operands name an instruction or parameter of the same function
//   - in reachable blocks, every use is dominated by its definition
//
// It returns all violations found, or nil if m is well formed.
func Verify(m *Module) error {
	var result *multierror.Error
	seen := make(map[string]bool, len(m.Functions))
	for _, f := range m.Functions {
		if seen[f.Name] {
			result = multierror.Append(result, fmt.Errorf("duplicate function %s", f.Name))
		}
		seen[f.Name] = true
		if err := VerifyFunction(f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// VerifyFunction checks a single function. See Verify.
func VerifyFunction(f *Function) error {
	var result *multierror.Error
	add := func(format string, args ...interface{}) {
		result = multierror.Append(result, fmt.Errorf("func %s: "+format, append([]interface{}{f.Name}, args...)...))
	}

	if len(f.Blocks) == 0 {
		add("no blocks")
		return result.ErrorOrNil()
	}

	blocks := make(map[string]bool, len(f.Blocks))
	for _, b := range f.Blocks {
		if blocks[b.Name] {
			add("duplicate block %s", b.Name)
		}
		blocks[b.Name] = true
	}

	values := make(map[string]bool)
	for _, p := range f.Params {
		values[p.Name] = true
	}
	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			name := instr.Name()
			if name == "" {
				if producesValue(instr) {
					add("%s: unnamed %s instruction", b.Name, instr.Opcode())
				}
				continue
			}
			if values[name] {
				add("%s: %s defined more than once", b.Name, name)
			}
			values[name] = true
		}
	}

	for _, b := range f.Blocks {
		for i, instr := range b.Instrs {
			last := i == len(b.Instrs)-1
			if instr.Opcode().IsTerminator() && !last {
				add("%s: terminator %s is not the last instruction", b.Name, instr.Opcode())
			}
			for _, op := range instr.Operands() {
				if !values[op] {
					add("%s: %s uses undefined value %q", b.Name, instr.Opcode(), op)
				}
			}
			if phi, ok := instr.(*Phi); ok {
				for _, in := range phi.Incoming {
					if !blocks[in.Block] {
						add("%s: phi references unknown block %s", b.Name, in.Block)
					}
				}
			}
		}
		if !b.IsTerminated() {
			add("%s: block is not terminated", b.Name)
		}
		for _, succ := range b.Succs() {
			if !blocks[succ] {
				add("%s: branch to unknown block %s", b.Name, succ)
			}
		}
	}

	if result == nil {
		verifyDominance(f, add)
	}
	return result.ErrorOrNil()
}

// verifyDominance checks that every operand used in a reachable block is
// defined before the use on every path from the entry. A phi operand must
// be available at the end of its incoming block. f must be otherwise well
// formed.
func verifyDominance(f *Function, add func(format string, args ...interface{})) {
	type def struct {
		block string
		index int
	}
	defs := make(map[string]def)
	for _, b := range f.Blocks {
		for i, instr := range b.Instrs {
			if name := instr.Name(); name != "" {
				defs[name] = def{b.Name, i}
			}
		}
	}

	dom := ComputeDom(f)
	available := func(op, block string, index int) bool {
		d, ok := defs[op]
		if !ok {
			return true // parameter
		}
		if d.block == block {
			return d.index < index
		}
		return dom.Dominates(d.block, block)
	}

	for _, b := range f.Blocks {
		if !dom.Reachable(b.Name) {
			continue
		}
		for i, instr := range b.Instrs {
			if phi, ok := instr.(*Phi); ok {
				for _, in := range phi.Incoming {
					if dom.Reachable(in.Block) && !available(in.Value, in.Block, len(f.Block(in.Block).Instrs)) {
						add("%s: phi operand %s does not dominate the end of %s", b.Name, in.Value, in.Block)
					}
				}
				continue
			}
			for _, op := range instr.Operands() {
				if !available(op, b.Name, i) {
					add("%s: use of %s is not dominated by its definition", b.Name, op)
				}
			}
		}
	}
}

func producesValue(instr Instruction) bool {
	switch instr.(type) {
	case *Store, *Br, *CondBr, *Ret:
		return false
	}
	return true
}
