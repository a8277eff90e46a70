package parser_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"pdfsyntax/internal/green"
	"pdfsyntax/internal/parser"
	"pdfsyntax/internal/source"
)

func benchParse(b *testing.B, program []byte, shared bool) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.pdf", program)
	file := fs.Get(fileID)
	var f *green.Factory
	if shared {
		f = green.NewFactory(green.NewCache(green.DefaultCacheBits))
	}

	b.SetBytes(int64(len(program)))
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		parser.ParseFile(context.Background(), file, parser.Options{Factory: f})
	}
}

func largeDocument(objects int) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	for i := 1; i <= objects; i++ {
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Annot /Rect [0 0 %d 20] /P 2 0 R /T (note %d) >>\nendobj\n", i, i%600, i)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n0\n%%%%EOF\n", objects+1)
	return buf.Bytes()
}

func BenchmarkParseShort(b *testing.B) {
	benchParse(b, []byte("1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj"), false)
}

func BenchmarkParseLarge(b *testing.B) {
	benchParse(b, largeDocument(2000), false)
}

func BenchmarkParseLargeSharedCache(b *testing.B) {
	benchParse(b, largeDocument(2000), true)
}

func TestParseAllocs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("alloc.pdf", []byte("1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj"))
	file := fs.Get(fileID)

	allocs := testing.AllocsPerRun(100, func() {
		parser.ParseFile(context.Background(), file, parser.Options{})
	})

	t.Logf("allocs/op: %.1f", allocs)
}
