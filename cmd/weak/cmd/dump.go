package cmd

import (
	"fmt"
	"strings"

	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/lexer"
	"github.com/weak-lang/weak/internal/parser"
)

// dumpProgram lexes and parses source (without semantic checking or
// optimization) and prints a debug tree to stdout, for --dump-ast.
func dumpProgram(source, file string) error {
	tokens, err := lexer.New(source, lexer.WithFile(file)).Tokenize()
	if err != nil {
		printDiagnostic(err)
		return fmt.Errorf("lexing failed")
	}
	program, err := parser.New(tokens, source, file).Parse()
	if err != nil {
		printDiagnostic(err)
		return fmt.Errorf("parsing failed")
	}
	dumpNode(program, 0)
	return nil
}

func dumpNode(n *ast.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case ast.Integer:
		fmt.Printf("%sInteger(%d)\n", indent, n.IntValue)
	case ast.Float:
		fmt.Printf("%sFloat(%g)\n", indent, n.FloatValue)
	case ast.String:
		fmt.Printf("%sString(%q)\n", indent, n.Text)
	case ast.Symbol:
		fmt.Printf("%sSymbol(%s)\n", indent, n.Text)
	default:
		fmt.Printf("%s%s\n", indent, n.Kind)
	}

	for _, child := range []*ast.Node{n.A, n.B, n.C, n.D} {
		dumpNode(child, depth+1)
	}
	for _, child := range n.Children {
		dumpNode(child, depth+1)
	}
}
