package lexer

import (
	"testing"

	"github.com/weak-lang/weak/internal/token"
)

// TestRoundTrip exercises §8 property 1: literal/symbol tokens carry the
// exact substring that produced them.
func TestRoundTrip(t *testing.T) {
	tokens, err := New(`answer 42 3.5 "hi"`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []struct {
		kind   token.Kind
		lexeme string
	}{
		{token.IDENT, "answer"},
		{token.INT, "42"},
		{token.FLOAT, "3.5"},
		{token.STRING, "hi"},
		{token.EOF, ""},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d (%v)", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Lexeme != w.lexeme {
			t.Errorf("token %d = (%s, %q), want (%s, %q)", i, tokens[i].Kind, tokens[i].Lexeme, w.kind, w.lexeme)
		}
	}
}

// TestLongestMatch exercises §8 property 2.
func TestLongestMatch(t *testing.T) {
	cases := []struct {
		input string
		want  []token.Kind
	}{
		{"+++", []token.Kind{token.INC, token.PLUS}},
		{"++++", []token.Kind{token.INC, token.INC}},
	}

	for _, c := range cases {
		tokens, err := New(c.input).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", c.input, err)
		}
		if len(tokens) != len(c.want)+1 {
			t.Fatalf("Tokenize(%q) = %v, want %v plus EOF", c.input, tokens, c.want)
		}
		for i, k := range c.want {
			if tokens[i].Kind != k {
				t.Errorf("Tokenize(%q)[%d] = %s, want %s", c.input, i, tokens[i].Kind, k)
			}
		}
	}
}

func TestUnknownByte(t *testing.T) {
	if _, err := New("@").Tokenize(); err == nil {
		t.Error("expected an error for an unrecognized byte")
	}
}

func TestUnterminatedString(t *testing.T) {
	if _, err := New(`"abc`).Tokenize(); err == nil {
		t.Error("expected an error for an unterminated string")
	}
}

// fakeResolver resolves `load` directives from an in-memory map, for
// tests that don't want to touch the filesystem.
type fakeResolver map[string]string

func (f fakeResolver) ResolveLoad(path string) (string, string, error) {
	src, ok := f[path]
	if !ok {
		return "", "", errNotFound(path)
	}
	return src, path, nil
}

type errNotFound string

func (e errNotFound) Error() string { return "not found: " + string(e) }

func TestLoadSplicesTokensInPlace(t *testing.T) {
	resolver := fakeResolver{"lib.weak": `println("lib");`}
	tokens, err := New(`print(1); load "lib.weak"; print(2);`, WithResolver(resolver)).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	// print(1); <spliced: println("lib");> print(2); EOF
	want := []token.Kind{
		token.IDENT, token.LPAREN, token.INT, token.RPAREN, token.SEMICOLON,
		token.IDENT, token.LPAREN, token.STRING, token.RPAREN, token.SEMICOLON,
		token.IDENT, token.LPAREN, token.INT, token.RPAREN, token.SEMICOLON,
		token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(kinds), kinds, len(want), want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestLoadCycleDetected(t *testing.T) {
	resolver := fakeResolver{"a.weak": `load "b.weak";`, "b.weak": `load "a.weak";`}
	_, err := New(`load "a.weak";`, WithResolver(resolver)).Tokenize()
	if err == nil {
		t.Fatal("expected a cyclic load error")
	}
}
