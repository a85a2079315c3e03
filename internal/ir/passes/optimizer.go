package passes

import (
	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/you-not-fish/nexus/internal/ir"
)

// maxRounds bounds the fixed-point iteration per function.
const maxRounds = 64

// Options selects the optimization stages.
type Options struct {
	Fold     bool
	Simplify bool
	DCE      bool

	Config Config
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{Fold: true, Simplify: true, DCE: true}
}

// Optimizer runs a pass pipeline over every function of a module.
type Optimizer struct {
	Config Config
	Passes []Pass
}

// NewOptimizer builds the pipeline fold, simplify, dce from the enabled
// stages. With every stage disabled the optimizer leaves modules
// unchanged.
func NewOptimizer(opts Options) *Optimizer {
	o := &Optimizer{Config: opts.Config}
	if opts.Fold {
		o.Passes = append(o.Passes, Pass{Name: "fold", Fn: fold})
	}
	if opts.Simplify {
		o.Passes = append(o.Passes, Pass{Name: "simplify", Fn: simplify})
	}
	if opts.DCE {
		o.Passes = append(o.Passes, Pass{Name: "dce", Fn: dce})
	}
	return o
}

// Optimize runs the pipeline over each function until it stops changing,
// so a second Optimize of the result is a no-op. The module is modified in
// place and returned. Errors from all functions are collected.
func (o *Optimizer) Optimize(m *ir.Module) (*ir.Module, error) {
	var result *multierror.Error
	for _, f := range m.Functions {
		if err := o.optimizeFunc(f); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "optimize %s", f.Name))
		}
	}
	return m, result.ErrorOrNil()
}

func (o *Optimizer) optimizeFunc(f *ir.Function) error {
	before := f.NumInstrs()
	for round := 1; round <= maxRounds; round++ {
		changed, err := Run(f, o.Passes, o.Config)
		if err != nil {
			return err
		}
		if !changed {
			glog.V(3).Infof("optimize %s: %d -> %d instructions in %d rounds",
				f.Name, before, f.NumInstrs(), round)
			return nil
		}
	}
	return errors.Errorf("no fixed point after %d rounds", maxRounds)
}
