package sink

import (
	"bytes"
	"testing"
)

func TestBufferWriteStringAndClear(t *testing.T) {
	var b Buffer
	b.WriteString("a")
	b.WriteString("b")
	if b.String() != "ab" {
		t.Errorf("String() = %q, want %q", b.String(), "ab")
	}
	b.Clear()
	if b.String() != "" {
		t.Errorf("after Clear, String() = %q, want empty", b.String())
	}
}

func TestWriterWritesThrough(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteString("hello")
	if buf.String() != "hello" {
		t.Errorf("underlying buffer = %q, want %q", buf.String(), "hello")
	}
	// Clear and String are defined as no-ops for a Writer sink.
	w.Clear()
	if w.String() != "" {
		t.Errorf("String() = %q, want empty", w.String())
	}
	if buf.String() != "hello" {
		t.Errorf("Clear should not touch the underlying writer; got %q", buf.String())
	}
}

func TestSinkInterfaceSatisfiedByBoth(t *testing.T) {
	var _ Sink = &Buffer{}
	var _ Sink = NewWriter(&bytes.Buffer{})
}
