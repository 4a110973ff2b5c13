// Command weak is the CLI entry point: run/repl/test over the weak
// language interpreter (internal/lexer, internal/parser,
// internal/semantic, internal/optimizer, internal/evaluator).
package main

import (
	"os"

	"github.com/weak-lang/weak/cmd/weak/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
