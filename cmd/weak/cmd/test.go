package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weak-lang/weak/internal/errx"
	"github.com/weak-lang/weak/internal/sink"
	"github.com/weak-lang/weak/pkg/weak"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the built-in scenario and error-taxonomy suite",
	Long: `Evaluates the fixed set of scenarios and error cases this language's
specification enumerates, and exits 0 only if every one matches (§6:
"one argument equal to test").`,
	RunE: runBuiltinTests,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

// scenario is a source -> expected-sink-output check.
type scenario struct {
	source   string
	expected string
}

var scenarios = []scenario{
	{`fun main(){ print(1+1); }`, "2"},
	{`fun main(){ print(1+1.5); }`, "2.5"},
	{`fun main(){ for(i=0;i<3;++i){ print(i); } }`, "012"},
	{`fun main(){ var=0; if(var==0){print("E");}else{print("D");} }`, "E"},
	{`fun main(){ a=[1,2,3]; array-set(a,0,9); print(array-get(a,0)); }`, "9"},
	{`fun main(){ print(123%7); }`, "4"},
	{`fun f(x){ x; } fun main(){ print(f(7)); }`, "7"},
}

// errorScenario is a source -> expected failing pipeline stage check.
type errorScenario struct {
	source string
	kind   errx.Kind
}

var errorScenarios = []errorScenario{
	{`fun main(){ 1 = 2; }`, errx.Semantic},
	{`fun main(){ a=[1,2,3]; array-get(a, 99); }`, errx.Runtime},
	{`fun main(){ x; }`, errx.Runtime},
	{`while (if(1){}else{}) {}`, errx.Semantic},
}

func runBuiltinTests(_ *cobra.Command, _ []string) error {
	failures := 0

	for i, sc := range scenarios {
		out := &sink.Buffer{}
		engine := weak.New(weak.WithOutput(out))
		if _, err := engine.Eval(sc.source, "<test>"); err != nil {
			fmt.Printf("FAIL scenario %d: unexpected error: %v\n", i+1, err)
			failures++
			continue
		}
		if out.String() != sc.expected {
			fmt.Printf("FAIL scenario %d: got %q, want %q\n", i+1, out.String(), sc.expected)
			failures++
			continue
		}
		fmt.Printf("ok   scenario %d\n", i+1)
	}

	for i, sc := range errorScenarios {
		engine := weak.New()
		_, err := engine.Eval(sc.source, "<test>")
		if err == nil {
			fmt.Printf("FAIL error scenario %d: expected %s error, got none\n", i+1, sc.kind)
			failures++
			continue
		}
		if kindOf(err) != sc.kind {
			fmt.Printf("FAIL error scenario %d: expected %s error, got %v\n", i+1, sc.kind, err)
			failures++
			continue
		}
		fmt.Printf("ok   error scenario %d\n", i+1)
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	return nil
}

func kindOf(err error) errx.Kind {
	switch err.(type) {
	case *errx.LexicalError:
		return errx.Lexical
	case *errx.ParseError:
		return errx.Parse
	case *errx.SemanticError:
		return errx.Semantic
	case *errx.RuntimeError:
		return errx.Runtime
	default:
		return ""
	}
}
