package iowriter

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestWriteStringBuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	if err := w.WriteString("hello"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("buffer has %d bytes before Flush, want 0 (should be buffered)", buf.Len())
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := buf.String(); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestWriteStringMultipleWritesAccumulate(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.WriteString("a")
	w.WriteString("b")
	w.WriteString("c")
	w.Flush()
	if got := buf.String(); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestWriteStringConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.WriteString("xy")
		}()
	}
	wg.Wait()
	w.Flush()
	if got := buf.String(); got != strings.Repeat("xy", 50) {
		t.Errorf("buffer = %q, want 50 whole, uninterleaved writes of \"xy\"", got)
	}
}

func TestNewStdoutReturnsUsableWriter(t *testing.T) {
	w := NewStdout()
	if w == nil {
		t.Fatal("NewStdout() = nil")
	}
}
