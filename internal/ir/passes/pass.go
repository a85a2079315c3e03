// Package passes implements the IR optimization pipeline: a pass runner
// with optional dumping and verification, and the fold, simplify and dce
// passes driven to a fixed point by the Optimizer.
package passes

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/you-not-fish/nexus/internal/ir"
)

// Pass describes a single function-level optimization pass.
// Fn reports whether it changed f.
type Pass struct {
	Name string
	Fn   func(f *ir.Function) bool
}

// Config controls pass execution behavior.
type Config struct {
	DumpBefore string    // dump IR before this pass ("*" for all)
	DumpAfter  string    // dump IR after this pass ("*" for all)
	Verify     bool      // verify IR before/after each pass
	DumpFunc   string    // restrict dumps to this function name
	Dump       io.Writer // dump destination; os.Stderr if nil
}

// Run executes the given passes on f in order and reports whether any of
// them changed f.
func Run(f *ir.Function, passes []Pass, cfg Config) (bool, error) {
	changed := false
	for _, p := range passes {
		if shouldDump(cfg.DumpBefore, p.Name) && matchFunc(cfg.DumpFunc, f.Name) {
			dump(cfg, "before", p.Name, f)
		}

		if cfg.Verify {
			if err := ir.VerifyFunction(f); err != nil {
				return changed, errors.Wrapf(err, "verify before %s", p.Name)
			}
		}

		if p.Fn(f) {
			changed = true
		}

		if cfg.Verify {
			if err := ir.VerifyFunction(f); err != nil {
				return changed, errors.Wrapf(err, "verify after %s", p.Name)
			}
		}

		if shouldDump(cfg.DumpAfter, p.Name) && matchFunc(cfg.DumpFunc, f.Name) {
			dump(cfg, "after", p.Name, f)
		}
	}
	return changed, nil
}

func dump(cfg Config, when, pass string, f *ir.Function) {
	w := cfg.Dump
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "--- %s %s (%s) ---\n", when, pass, f.Name)
	fmt.Fprintln(w, f.String())
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}

func matchFunc(filter, name string) bool {
	return filter == "" || filter == name
}
