package testkit_test

import (
	"context"
	"testing"

	"pdfsyntax/internal/green"
	"pdfsyntax/internal/lexer"
	"pdfsyntax/internal/parser"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/testkit"
	"pdfsyntax/internal/token"
)

const sample = "%PDF-1.4\n1 0 obj << /A [1 2 0 R (x)] /B <41> >> endobj\ntrailer << /Root 1 0 R >>\n"

func TestCheckTreeAcceptsParsedFile(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.pdf", []byte(sample)))
	f := green.NewFactory(green.NewCache(8))
	res := parser.ParseFile(context.Background(), file, parser.Options{Factory: f})
	if err := testkit.CheckTree(res.Tree, file.Content); err != nil {
		t.Fatalf("CheckTree: %v", err)
	}
	if err := testkit.CheckCacheIdentity(f.Cache(), res.Tree.Green()); err != nil {
		t.Fatalf("CheckCacheIdentity: %v", err)
	}
}

func TestCheckTreeRejectsOtherContent(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.pdf", []byte(sample)))
	res := parser.ParseFile(context.Background(), file, parser.Options{})
	if err := testkit.CheckTree(res.Tree, []byte(sample+" ")); err == nil {
		t.Fatal("expected a round-trip error")
	}
}

func TestCheckTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.pdf", []byte(sample)))
	lx := lexer.New(file, lexer.Options{})
	var toks []*green.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind() == token.EndOfFileToken {
			break
		}
	}
	if err := testkit.CheckTokens(toks, file.Content); err != nil {
		t.Fatalf("CheckTokens: %v", err)
	}
	if err := testkit.CheckTokens(toks[1:], file.Content); err == nil {
		t.Fatal("expected a mismatch without the first token")
	}
}
