// Package cmd implements the weak CLI's Cobra command tree. Grounded on
// cmd/dwscript/cmd/root.go's structure, scaled to this language's three
// modes (§6): run, repl, test.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "weak",
	Short: "weak language interpreter",
	Long: `weak is a tree-walking interpreter for a small C-like scripting
language: a lexer, recursive-descent parser, semantic analyzer, AST
optimizer, and evaluator over a flat depth-tagged symbol table.

With no subcommand, weak starts an interactive REPL.`,
	Version: Version,
	// A bare `weak` invocation with no subcommand falls through to the
	// REPL, per §6's "zero arguments -> interactive REPL."
	RunE: func(c *cobra.Command, args []string) error {
		return runRepl(c, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("weak version %s (%s)\n", Version, GitCommit))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
