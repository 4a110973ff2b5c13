package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weak-lang/weak/internal/loader"
	"github.com/weak-lang/weak/internal/sink"
	"github.com/weak-lang/weak/pkg/weak"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a weak program from a file or inline expression",
	Long: `Execute a weak program (§6: "one argument that is a path").

Examples:
  weak run script.weak
  weak run -e 'fun main(){ println("hi"); }'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before evaluating")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace top-level evaluation to stderr")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, file, dir string

	switch {
	case evalExpr != "":
		source, file, dir = evalExpr, "<eval>", "."
	case len(args) == 1:
		file = args[0]
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", file, err)
		}
		source, dir = string(content), filepath.Dir(file)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] evaluating %s\n", file)
	}

	engine := weak.New(weak.WithOutput(sink.NewWriter(os.Stdout)), weak.WithResolver(loader.New(dir)))

	if dumpAST {
		if err := dumpProgram(source, file); err != nil {
			return err
		}
	}

	if _, err := engine.Eval(source, file); err != nil {
		printDiagnostic(err)
		return fmt.Errorf("execution failed")
	}
	return nil
}

func printDiagnostic(err error) {
	if f, ok := err.(interface{ Format() string }); ok {
		fmt.Fprintln(os.Stderr, f.Format())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
