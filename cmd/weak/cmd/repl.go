package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/weak-lang/weak/internal/sink"
	"github.com/weak-lang/weak/pkg/weak"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive weak session",
	Long: `Read lines from stdin, evaluating each as a complete program and
echoing its accumulated sink output (§6: "zero arguments -> interactive
REPL"). Top-level lambda and type bindings persist across lines; the
sink is cleared between them so each line's echo reflects only its own
output.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	out := &sink.Buffer{}
	engine := weak.New(weak.WithOutput(out))

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		out.Clear()

		if _, err := engine.Eval(line, "<repl>"); err != nil {
			printDiagnostic(err)
			out.Clear()
			continue
		}

		fmt.Println(out.String())
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}
