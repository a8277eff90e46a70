package fuzztests

import (
	"testing"

	"pdfsyntax/internal/green"
	"pdfsyntax/internal/lexer"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/testkit"
	"pdfsyntax/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.pdf", input))

		lx := lexer.New(file, lexer.Options{})
		var toks []*green.Token
		for {
			tok := lx.Next()
			toks = append(toks, tok)
			if tok.Kind() == token.EndOfFileToken {
				break
			}
		}
		if err := testkit.CheckTokens(toks, input); err != nil {
			t.Fatal(err)
		}
	})
}
