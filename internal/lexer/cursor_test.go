package lexer

import (
	"testing"

	"pdfsyntax/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pdf", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Errorf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Errorf("Bump = %q, want %q", got, want)
		}
	}

	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Expected zero bytes at EOF")
	}
}

// TestPeekAt проверяет просмотр вперёд без сдвига курсора
func TestPeekAt(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	cursor.Bump()

	if b, ok := cursor.PeekAt(1); !ok || b != 'c' {
		t.Errorf("PeekAt(1) = %q, %v", b, ok)
	}
	if _, ok := cursor.PeekAt(2); ok {
		t.Error("Expected PeekAt past the end to fail")
	}
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Errorf("Peek2 = (%q, %q, %v)", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Error("Expected Peek2 to fail on the last byte")
	}
}

// TestMarkResetAndSpan проверяет метки, откат и SpanFrom
func TestMarkResetAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("<<abc>>"))
	cursor.Bump()
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()

	sp := cursor.SpanFrom(m)
	if sp.Start != 1 || sp.End != 3 {
		t.Errorf("SpanFrom = %v", sp)
	}
	if got := string(cursor.TextFrom(m)); got != "<a" {
		t.Errorf("TextFrom = %q", got)
	}
	if got := string(cursor.Rest()); got != "bc>>" {
		t.Errorf("Rest = %q", got)
	}

	cursor.Reset(m)
	if cursor.Off != 1 {
		t.Errorf("Reset: Off = %d", cursor.Off)
	}
}

// TestEat проверяет поведение Eat
func TestEat(t *testing.T) {
	cursor := NewCursor(createFile("a\n"))
	if cursor.Eat('x') {
		t.Error("Eat must not consume a different byte")
	}
	if !cursor.Eat('a') || !cursor.Eat('\n') {
		t.Error("Expected Eat to consume matching bytes")
	}
	if cursor.Eat('\n') {
		t.Error("Expected Eat at EOF to fail")
	}
}
