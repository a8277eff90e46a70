package syntax_test

import (
	"fmt"
	"strings"
	"testing"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/lexer"
	"pdfsyntax/internal/msgs"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/syntax"
	"pdfsyntax/internal/token"
)

// lexInput возвращает файл и все токены, включая EOF
func lexInput(input string) (*source.File, []*green.Token) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pdf", []byte(input))
	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{})
	var toks []*green.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind() == token.EndOfFileToken {
			return file, toks
		}
	}
}

func lit(t *green.Token) green.Node {
	return green.NewNode(token.LiteralExpression, t)
}

// arrayTree строит Document(Array) из "[a b c ...]"
func arrayTree(t *testing.T, input string) *syntax.Tree {
	t.Helper()
	file, toks := lexInput(input)
	if toks[0].Kind() != token.OpenBracketToken {
		t.Fatalf("input %q must start with '['", input)
	}
	n := len(toks)
	elems := make([]green.Node, 0, n-3)
	for _, tk := range toks[1 : n-2] {
		elems = append(elems, lit(tk))
	}
	arr := green.NewNode(token.ArrayExpression, toks[0], green.List(elems...), toks[n-2])
	doc := green.NewNode(token.Document, arr, toks[n-1])
	return syntax.NewTree(doc, file)
}

func TestTreeRoundTrip(t *testing.T) {
	input := "  [1 /A]\n% tail\n"
	tree := arrayTree(t, input)
	if tree.Text() != input {
		t.Fatalf("Text() = %q, want %q", tree.Text(), input)
	}
	if tree.FilePath() != "test.pdf" {
		t.Fatalf("FilePath() = %q", tree.FilePath())
	}
}

func TestNodeSpans(t *testing.T) {
	tree := arrayTree(t, "  [1 /A]\n")
	root := tree.Root()
	arr, ok := root.Slot(0).(*syntax.Node)
	if !ok {
		t.Fatalf("slot 0 is %T, want *syntax.Node", root.Slot(0))
	}
	if arr.Kind() != token.ArrayExpression {
		t.Fatalf("kind %v", arr.Kind())
	}
	if fs := arr.FullSpan(); fs.Start != 0 || fs.End != 9 {
		t.Fatalf("FullSpan = %v, want 0..9", fs)
	}
	if sp := arr.Span(); sp.Start != 2 || sp.End != 8 {
		t.Fatalf("Span = %v, want 2..8", sp)
	}
	open := arr.Slot(0).(*syntax.Token)
	if sp := open.Span(); sp.Start != 2 || sp.End != 3 {
		t.Fatalf("'[' span = %v", sp)
	}
	if open.Parent() != arr {
		t.Fatalf("token parent is not the array node")
	}
}

func TestChildrenFlattenLists(t *testing.T) {
	tree := arrayTree(t, "[1 2.5 /N (s) <41>]")
	arr := tree.Root().Slot(0).(*syntax.Node)
	var kinds []token.Kind
	for c := range arr.Children() {
		kinds = append(kinds, c.Kind())
	}
	want := []token.Kind{
		token.OpenBracketToken,
		token.LiteralExpression, token.LiteralExpression, token.LiteralExpression,
		token.LiteralExpression, token.LiteralExpression,
		token.CloseBracketToken,
	}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("children = %v, want %v", kinds, want)
	}

	count := 0
	for range arr.Elements(1) {
		count++
	}
	if count != 5 {
		t.Fatalf("Elements(1) yielded %d, want 5", count)
	}

	// ранний выход из итератора
	n := 0
	for range arr.Children() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("break did not stop iteration")
	}
}

func TestTokensInOrder(t *testing.T) {
	input := "[1 /A (x)]"
	tree := arrayTree(t, input)
	var texts []string
	for tok := range tree.Root().Tokens() {
		texts = append(texts, tok.Text())
	}
	got := strings.Join(texts, "|")
	if got != "[|1|/A|(x)|]|" {
		t.Fatalf("tokens = %q", got)
	}
}

func TestFindToken(t *testing.T) {
	input := "[0 1 2 3 4 5 6 7 8 9 10 11 12 13 14]"
	tree := arrayTree(t, input)
	root := tree.Root()
	for tok := range root.Tokens() {
		if tok.Kind() == token.EndOfFileToken {
			continue
		}
		sp := tok.Span()
		for off := sp.Start; off < sp.End; off++ {
			got := root.FindToken(off)
			if got == nil || !got.Equal(tok) {
				t.Fatalf("FindToken(%d) = %v, want %q", off, got, tok.Text())
			}
		}
	}
	if root.FindToken(uint32(len(input))+5) != nil {
		t.Fatalf("FindToken past the end must be nil")
	}
	// пробел принадлежит хвостовой тривии предыдущего токена
	if got := root.FindToken(2); got == nil || got.Text() != "0" {
		t.Fatalf("FindToken on trivia = %v", got)
	}
}

func TestNodeEqual(t *testing.T) {
	tree := arrayTree(t, "[1 2]")
	root := tree.Root()
	a := root.Slot(0).(*syntax.Node)
	b := root.Slot(0).(*syntax.Node)
	if a == b {
		t.Fatalf("red nodes should be created on demand")
	}
	if !a.Equal(b) {
		t.Fatalf("same position must be Equal")
	}
	e1 := a.Slot(1).(*syntax.Node).Slot(0).(*syntax.Node)
	e2 := a.Slot(1).(*syntax.Node).Slot(1).(*syntax.Node)
	if e1.Equal(e2) {
		t.Fatalf("different elements must not be Equal")
	}
	other := arrayTree(t, "[1 2]").Root()
	if root.Equal(other) {
		t.Fatalf("nodes of different trees must not be Equal")
	}
}

func TestTrivia(t *testing.T) {
	tree := arrayTree(t, "[1 % c\n /A]")
	arr := tree.Root().Slot(0).(*syntax.Node)
	var one *syntax.Token
	for tok := range arr.Tokens() {
		if tok.Text() == "1" {
			one = tok
		}
	}
	if one == nil {
		t.Fatal("token 1 not found")
	}
	trail := one.TrailingTrivia()
	var kinds []token.Kind
	for tr := range trail.All() {
		kinds = append(kinds, tr.Kind())
	}
	want := []token.Kind{token.WhitespaceTrivia, token.CommentTrivia, token.EndOfLineTrivia}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("trailing trivia = %v, want %v", kinds, want)
	}
	if trail.At(1).Text() != "% c" {
		t.Fatalf("comment text %q", trail.At(1).Text())
	}
	if sp := trail.At(1).Span(); sp.Start != 3 || sp.End != 6 {
		t.Fatalf("comment span %v", sp)
	}
	if one.LeadingTrivia().Count() != 0 {
		t.Fatalf("token 1 has no leading trivia")
	}
}

func TestTreeDiagnostics(t *testing.T) {
	file, toks := lexInput("[1\nfoo]")
	bad := toks[2]
	if bad.Kind() != token.BadToken {
		t.Fatalf("expected BadToken, got %v", bad.Kind())
	}
	inner := green.List(lit(toks[1]), green.NewNode(token.UnexpectedExpression, bad))
	info := diag.NewInfo(msgs.Default(), diag.SynExpectedValue)
	arr := green.NewNodeWithDiagnostics(token.ArrayExpression, []diag.Info{info}, toks[0], inner, toks[3])
	tree := syntax.NewTree(green.NewNode(token.Document, arr, toks[4]), file)

	ds := tree.Diagnostics()
	if len(ds) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(ds), ds)
	}
	if ds[0].Code() != diag.SynExpectedValue {
		t.Fatalf("first diagnostic %v", ds[0].Code())
	}
	if ds[1].Code() != diag.LexInvalidKeyword {
		t.Fatalf("second diagnostic %v", ds[1].Code())
	}
	pos, ok := ds[1].Position()
	if !ok {
		t.Fatal("diagnostic must resolve")
	}
	if pos.Path != "test.pdf" || pos.Lines.Start.Line != 2 || pos.Lines.Start.Col != 1 {
		t.Fatalf("position = %v", pos)
	}
	if !tree.HasErrors() {
		t.Fatal("HasErrors() = false")
	}
}

func TestEmptyTree(t *testing.T) {
	tree := syntax.NewTree(nil, nil)
	if tree.Root() != nil {
		t.Fatal("empty tree has no root")
	}
	if len(tree.Diagnostics()) != 0 {
		t.Fatal("empty tree has no diagnostics")
	}
	if tree.Text() != "" {
		t.Fatal("empty tree text")
	}
}
