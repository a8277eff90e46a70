package fuzztests

import (
	"context"
	"testing"
	"time"

	"pdfsyntax/internal/green"
	"pdfsyntax/internal/parser"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.pdf", input))

		factory := green.NewFactory(green.NewCache(10))
		res := parser.ParseFile(context.Background(), file, parser.Options{Factory: factory, MaxErrors: 128})
		if err := testkit.CheckTree(res.Tree, input); err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckCacheIdentity(factory.Cache(), res.Tree.Green()); err != nil {
			t.Fatal(err)
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("1 0 obj [[[[[[[[[[ endobj"))           // unclosed arrays
	f.Add([]byte("<< << << /A"))                         // unclosed dictionaries
	f.Add([]byte("xref xref xref trailer trailer"))      // repeated sections
	f.Add([]byte("1 0 obj stream\nendobj"))              // stream without endstream
	f.Add([]byte("{ { } } } ] >> ) >"))                  // stray closers
	f.Add([]byte("1 0 obj << /L 1 0 R 2 0 R >> endobj")) // reference as key

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.pdf", input))
			_ = parser.ParseFile(ctx, file, parser.Options{MaxErrors: 128})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
