// Package main implements the Nexus compiler entry point.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Version of the compiler.
const Version = "0.1.0-dev"

func main() {
	if err := newNexuscCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newNexuscCmd creates the root command. The command compiles a single
// source file; the --emit-* flags stop the pipeline early and print the
// requested intermediate form to stdout.
func newNexuscCmd() *cobra.Command {
	var opts options
	var logToStderr bool
	var verbose int
	cmd := &cobra.Command{
		Use:           "nexusc [flags] <file.nx> [output]",
		Short:         "Nexus compiler",
		Long:          "nexusc compiles a Nexus source file to x86-64 assembly (NASM syntax).",
		Version:       Version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(logToStderr, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			if len(args) > 1 {
				if opts.output != "" {
					return errors.New("output given both as argument and with -o")
				}
				opts.output = args[1]
			}
			return compile(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.emitTokens, "emit-tokens", false, "Print the token stream and stop")
	f.BoolVar(&opts.emitAST, "emit-ast", false, "Print the AST and stop")
	f.StringVar(&opts.astFormat, "ast-format", "text", "AST output format (text or json)")
	f.BoolVar(&opts.emitIR, "emit-ir", false, "Print the IR before optimization and stop")
	f.BoolVar(&opts.emitOptIR, "emit-opt-ir", false, "Print the optimized IR and stop")
	f.StringVarP(&opts.output, "output", "o", "", "Output file (default <input>.asm)")
	f.StringVar(&opts.configFile, "config", "", "Configuration file (default nexus.yaml if present)")
	f.BoolVar(&opts.noRecover, "no-recover", false, "Disable parser error recovery")
	f.BoolVar(&opts.noOpt, "no-opt", false, "Disable the optimizer")
	f.BoolVar(&opts.verifyIR, "verify-ir", false, "Verify the IR before and after each pass")
	f.StringVar(&opts.dumpBefore, "dump-before", "", "Dump IR before pass (name or \"*\")")
	f.StringVar(&opts.dumpAfter, "dump-after", "", "Dump IR after pass (name or \"*\")")
	f.StringVar(&opts.dumpFunc, "dump-func", "", "Only dump a specific function")
	f.BoolVar(&opts.color, "color", false, "Colorize diagnostics")
	f.BoolVar(&opts.warnConstAssign, "warn-const-assign", false, "Report assignments to constants as warnings")

	cmd.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false, "Log to stderr instead of to files")
	cmd.PersistentFlags().IntVarP(
		&verbose, "verbose", "v", 0, "Enable verbose logging (e.g., v=3); anything >3 is very verbose")

	return cmd
}

// initLogging configures glog through its registered flags.
func initLogging(logToStderr bool, verbose int) {
	if logToStderr {
		flag.Lookup("logtostderr").Value.Set("true")
	}
	if verbose > 0 {
		flag.Lookup("v").Value.Set(strconv.Itoa(verbose))
	}
}
