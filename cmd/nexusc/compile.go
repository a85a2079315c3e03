package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/nexus/internal/codegen"
	"github.com/you-not-fish/nexus/internal/config"
	"github.com/you-not-fish/nexus/internal/diag"
	"github.com/you-not-fish/nexus/internal/ir"
	"github.com/you-not-fish/nexus/internal/ir/passes"
	"github.com/you-not-fish/nexus/internal/irgen"
	"github.com/you-not-fish/nexus/internal/sema"
	"github.com/you-not-fish/nexus/internal/syntax"
)

// options holds the command line settings of a single compilation.
type options struct {
	input  string
	output string

	emitTokens bool
	emitAST    bool
	astFormat  string
	emitIR     bool
	emitOptIR  bool

	configFile      string
	noRecover       bool
	noOpt           bool
	verifyIR        bool
	dumpBefore      string
	dumpAfter       string
	dumpFunc        string
	color           bool
	warnConstAssign bool
}

// settings merges the configuration file with the flags that were given
// explicitly on the command line.
func settings(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("no-recover") {
		cfg.Parser.Recover = !opts.noRecover
	}
	if changed("warn-const-assign") {
		cfg.Sema.WarnConstAssign = opts.warnConstAssign
	}
	if changed("no-opt") && opts.noOpt {
		cfg.Optimize.Fold = false
		cfg.Optimize.Simplify = false
		cfg.Optimize.DCE = false
	}
	if changed("verify-ir") {
		cfg.Optimize.Verify = opts.verifyIR
	}
	if changed("dump-before") {
		cfg.Optimize.DumpBefore = opts.dumpBefore
	}
	if changed("dump-after") {
		cfg.Optimize.DumpAfter = opts.dumpAfter
	}
	if changed("dump-func") {
		cfg.Optimize.DumpFunc = opts.dumpFunc
	}
	if changed("color") {
		cfg.Diagnostics.Color = opts.color
	}
	return cfg, cfg.Validate()
}

// compile runs the pipeline over opts.input. Stage output goes to the
// command's stdout, diagnostics and IR dumps to its stderr.
func compile(cmd *cobra.Command, opts *options) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	switch opts.astFormat {
	case "text", "json":
	default:
		return errors.Errorf("unknown AST format %q (want text or json)", opts.astFormat)
	}

	cfg, err := settings(cmd, opts)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		return errors.Wrapf(err, "reading %s", opts.input)
	}
	src := string(data)
	glog.V(1).Infof("nexusc: compiling %s (%d bytes)", opts.input, len(data))

	if opts.emitTokens {
		return emitTokens(stdout, src)
	}

	sink := diag.NewSink(diag.FormatOptions{Colors: cfg.Diagnostics.Color}, stderr)

	// Parse.
	p := syntax.NewParser(src, func(pos syntax.Pos, msg string) {
		sink.Add(diag.Diagnostic{Category: diag.Syntax, Line: pos.Line(), Col: pos.Col(), Message: msg})
	})
	p.Recover = cfg.Parser.Recover
	stmts := p.Parse()
	glog.V(1).Infof("nexusc: parsed %d top-level statements, %d error(s)", len(stmts), p.Errors())

	if opts.emitAST {
		if opts.astFormat == "json" {
			err = syntax.FprintJSON(stdout, stmts)
		} else {
			err = syntax.Fprint(stdout, stmts)
		}
		if err != nil {
			return errors.Wrap(err, "writing AST")
		}
		return failed(sink)
	}
	if err := failed(sink); err != nil {
		return err
	}

	// Analyze.
	a := sema.NewAnalyzer(sink)
	a.WarnConstAssign = cfg.Sema.WarnConstAssign
	a.Analyze(stmts)
	if err := failed(sink); err != nil {
		return err
	}

	// Lower.
	m := irgen.NewGenerator().Generate(stmts)
	if opts.emitIR {
		return errors.Wrap(ir.Fprint(stdout, m), "writing IR")
	}

	// Optimize.
	o := cfg.Optimize
	optimizer := passes.NewOptimizer(passes.Options{
		Fold:     o.Fold,
		Simplify: o.Simplify,
		DCE:      o.DCE,
		Config: passes.Config{
			DumpBefore: o.DumpBefore,
			DumpAfter:  o.DumpAfter,
			DumpFunc:   o.DumpFunc,
			Verify:     o.Verify,
			Dump:       stderr,
		},
	})
	if m, err = optimizer.Optimize(m); err != nil {
		return err
	}
	// The backend assumes well-formed IR, so the final module is always
	// checked; Verify only adds the per-pass checks.
	if err := ir.Verify(m); err != nil {
		return errors.Wrap(err, "verifying optimized IR")
	}
	if opts.emitOptIR {
		return errors.Wrap(ir.Fprint(stdout, m), "writing IR")
	}

	// Emit.
	out := opts.output
	if out == "" {
		out = outputPath(opts.input)
	}
	if err := writeAssembly(out, m); err != nil {
		return err
	}
	glog.V(1).Infof("nexusc: wrote %s", out)
	return nil
}

// failed returns an error summarizing the error diagnostics issued so far.
// The diagnostics themselves have already been written by the sink.
func failed(sink diag.Sink) error {
	if n := sink.Errors(); n > 0 {
		return errors.Errorf("compilation failed with %d error(s)", n)
	}
	return nil
}

// outputPath replaces the extension of input with .asm.
func outputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".asm"
}

func writeAssembly(path string, m *ir.Module) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := codegen.Generate(w, m); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(w.Flush(), "writing %s", path)
}

// emitTokens prints every token with its position, followed by any
// lexical errors.
func emitTokens(w io.Writer, src string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-12s %-16s %s\n", "POSITION", "TOKEN", "LEXEME")
	fmt.Fprintf(bw, "%-12s %-16s %s\n", strings.Repeat("-", 12), strings.Repeat("-", 16), strings.Repeat("-", 20))

	var lexErrs []string
	for _, tok := range syntax.Tokenize(src) {
		fmt.Fprintf(bw, "%-12s %-16s %s\n", tok.Pos(), tok.Kind, formatLexeme(tok.Lexeme))
		if tok.Kind.IsError() {
			lexErrs = append(lexErrs, syntax.FormatError(tok.Pos(), tok.Lexeme))
		}
	}

	if len(lexErrs) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "Errors:")
		for _, e := range lexErrs {
			fmt.Fprintf(bw, "  %s\n", e)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "writing tokens")
	}
	if len(lexErrs) > 0 {
		return errors.Errorf("%d lexical error(s)", len(lexErrs))
	}
	return nil
}

// formatLexeme quotes a lexeme for display with control characters escaped.
func formatLexeme(lex string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range lex {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
