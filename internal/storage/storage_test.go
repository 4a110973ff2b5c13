package storage

import (
	"testing"

	"github.com/weak-lang/weak/internal/ast"
	"github.com/weak-lang/weak/internal/token"
)

// TestScopeHiding exercises §8 property 3: push at depth 0, shadow at
// depth 1, verify the shadow is visible, then verify end-scope restores
// the original.
func TestScopeHiding(t *testing.T) {
	s := New()
	s.Push("x", ast.NewInteger(token.Position{}, 1))

	s.BeginScope()
	s.Push("x", ast.NewInteger(token.Position{}, 2))

	v, err := s.Lookup("x")
	if err != nil {
		t.Fatalf("lookup after shadow: %v", err)
	}
	if v.IntValue != 2 {
		t.Errorf("shadowed value = %d, want 2", v.IntValue)
	}

	s.EndScope()

	v, err = s.Lookup("x")
	if err != nil {
		t.Fatalf("lookup after end-scope: %v", err)
	}
	if v.IntValue != 1 {
		t.Errorf("restored value = %d, want 1", v.IntValue)
	}
}

func TestLookupUnbound(t *testing.T) {
	s := New()
	if _, err := s.Lookup("missing"); err == nil {
		t.Error("expected an error looking up an unbound name")
	}
}

func TestOverwriteFallsBackToPush(t *testing.T) {
	s := New()
	s.Overwrite("x", ast.NewInteger(token.Position{}, 5))
	v, err := s.Lookup("x")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if v.IntValue != 5 {
		t.Errorf("value = %d, want 5", v.IntValue)
	}
}

func TestOverwritePreservesDepth(t *testing.T) {
	s := New()
	s.Push("x", ast.NewInteger(token.Position{}, 1))
	s.BeginScope()
	s.Overwrite("x", ast.NewInteger(token.Position{}, 9))
	s.EndScope()

	v, err := s.Lookup("x")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if v.IntValue != 9 {
		t.Errorf("value = %d, want 9 (overwrite should not have rebound at the deeper depth)", v.IntValue)
	}
}
