// Package storage implements the interpreter's scoped symbol table: a
// single flat hash table keyed by CRC-32 of the binding name, with each
// entry tagged by the scope depth it was bound at (§4.5). Each key holds
// its newest binding, linked to the shallower bindings of the same name
// that it shadows.
//
// This is deliberately not a chain of nested maps (a "scope stack"): a
// lookup that finds an entry recorded at a depth deeper than the current
// one treats it as invisible, which is what gives block scoping its
// hide-on-exit behavior without ever walking a parent-scope chain.
// Grounded one-for-one on the original interpreter's
// include/storage/storage.hpp (push/overwrite/lookup/scope_begin/scope_end
// over a CRC-32-keyed unordered_map).
package storage

import (
	"fmt"
	"hash/crc32"

	"github.com/weak-lang/weak/internal/ast"
)

// record is one binding: the depth it was pushed at, its name (kept for
// diagnostics, since the table itself is keyed by hash), and its value.
type record struct {
	depth uint32
	name  string
	value *ast.Node
	// prev is the shallower binding of the same name this record shadows.
	prev *record
}

// Storage is a depth-tagged flat symbol table. The zero value is not
// usable; construct with New.
type Storage struct {
	depth   uint32
	entries map[uint32]*record
}

// New returns an empty Storage at scope depth 0.
func New() *Storage {
	return &Storage{entries: make(map[uint32]*record, 50)}
}

func key(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}

// Push binds name to value at the current scope depth, shadowing (not
// mutating) any existing binding for the same name at a shallower depth;
// that binding becomes visible again once this scope ends. A binding at
// the same or a deeper depth is replaced.
func (s *Storage) Push(name string, value *ast.Node) {
	h := key(name)
	prev := s.entries[h]
	for prev != nil && prev.depth >= s.depth {
		prev = prev.prev
	}
	s.entries[h] = &record{depth: s.depth, name: name, value: value, prev: prev}
}

// Overwrite assigns value to the nearest visible binding of name without
// changing the depth it was originally bound at. If no visible binding
// exists, it behaves like Push.
func (s *Storage) Overwrite(name string, value *ast.Node) {
	if r := s.find(name); r != nil {
		r.value = value
		return
	}
	s.Push(name, value)
}

// Lookup returns the value bound to name in the nearest enclosing visible
// scope. It returns an error if name is unbound or bound only at a depth
// deeper than the current scope (i.e. it fell out of scope).
func (s *Storage) Lookup(name string) (*ast.Node, error) {
	r := s.find(name)
	if r == nil {
		return nil, fmt.Errorf("variable not found: %s", name)
	}
	return r.value, nil
}

func (s *Storage) find(name string) *record {
	r := s.entries[key(name)]
	for r != nil && r.depth > s.depth {
		r = r.prev
	}
	return r
}

// BeginScope enters a new nested scope.
func (s *Storage) BeginScope() { s.depth++ }

// EndScope leaves the current scope, making any bindings pushed within it
// invisible to subsequent lookups (though their entries remain in the
// table until overwritten by a binding of the same name).
func (s *Storage) EndScope() { s.depth-- }

// Depth returns the current scope depth, mostly useful for tests.
func (s *Storage) Depth() uint32 { return s.depth }
