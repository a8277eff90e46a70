package lexer_test

import (
	"math"
	"strings"
	"testing"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/lexer"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) *lexer.Lexer {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pdf", []byte(input))
	return lexer.New(fs.Get(fileID), lexer.Options{})
}

// collectAllTokens собирает все токены до EOF включительно
func collectAllTokens(lx *lexer.Lexer) []*green.Token {
	tokens := make([]*green.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind() == token.EndOfFileToken {
			return tokens
		}
	}
}

func lexAll(input string) []*green.Token {
	return collectAllTokens(makeTestLexer(input))
}

// expectTokens проверяет последовательность видов токенов (без EOF)
func expectTokens(t *testing.T, input string, want ...token.Kind) []*green.Token {
	t.Helper()
	toks := lexAll(input)
	got := make([]token.Kind, 0, len(toks))
	for _, tk := range toks[:len(toks)-1] {
		got = append(got, tk.Kind())
	}
	if len(got) != len(want) {
		t.Fatalf("%q: got kinds %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	return toks
}

func codes(tk *green.Token) []diag.Code {
	out := make([]diag.Code, 0, len(tk.Diagnostics()))
	for _, d := range tk.Diagnostics() {
		out = append(out, d.Code())
	}
	return out
}

func expectCodes(t *testing.T, tk *green.Token, want ...diag.Code) {
	t.Helper()
	got := codes(tk)
	if len(got) != len(want) {
		t.Fatalf("token %v %q: diagnostics %v, want %v", tk.Kind(), tk.Text(), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %v %q: diagnostics %v, want %v", tk.Kind(), tk.Text(), got, want)
		}
	}
}

func triviaTexts(n green.Node) []string {
	out := []string{}
	for _, c := range green.ListOf(n) {
		out = append(out, c.(*green.Trivia).Text())
	}
	return out
}

func single(t *testing.T, input string) *green.Token {
	t.Helper()
	toks := lexAll(input)
	if len(toks) != 2 {
		t.Fatalf("%q: expected one token plus EOF, got %d tokens", input, len(toks))
	}
	return toks[0]
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"%PDF-1.7\n%\xe2\xe3\xcf\xd3\r\n",
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"[1 2.5 -3 +.5 (a\\)b) <41 42> /N#20x true false null]",
		"{ 1 2 add } % comment\r\n\r\n  \t\f\x00 trailer",
		"(unterminated",
		"<41 zz",
		") > ? \x80 .",
		"4 0 obj\n<< /Length 5 >>\nstream\r\nab\x00cd\nendstream\nendobj",
		"stream\nno end here",
		"xref\n0 2\n0000000000 65535 f \n0000000017 00000 n \ntrailer\n<< >>\nstartxref\n116\n%%EOF\n",
	}
	for _, in := range inputs {
		var sb strings.Builder
		var sum uint32
		for _, tk := range lexAll(in) {
			sb.WriteString(green.Text(tk))
			sum += tk.FullWidth()
			if err := green.CheckWidth(tk); err != nil {
				t.Fatalf("%q: %v", in, err)
			}
		}
		if sb.String() != in {
			t.Errorf("round trip mismatch:\n in: %q\nout: %q", in, sb.String())
		}
		if int(sum) != len(in) {
			t.Errorf("%q: widths sum to %d, want %d", in, sum, len(in))
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
		real float64
	}{
		{"0", token.IntegerLiteralToken, 0},
		{"123", token.IntegerLiteralToken, 123},
		{"2147483647", token.IntegerLiteralToken, math.MaxInt32},
		{"2147483648", token.RealLiteralToken, 2147483648},
		{"123456789012345678901234567890", token.RealLiteralToken, 123456789012345678901234567890},
		{"1.", token.RealLiteralToken, 1},
		{".5", token.RealLiteralToken, 0.5},
		{"34.25", token.RealLiteralToken, 34.25},
	}
	for _, tt := range tests {
		tk := single(t, tt.in)
		if tk.Kind() != tt.kind {
			t.Errorf("%q: kind %v, want %v", tt.in, tk.Kind(), tt.kind)
			continue
		}
		if got := tk.Value().Real(); got != tt.real {
			t.Errorf("%q: value %v, want %v", tt.in, got, tt.real)
		}
		expectCodes(t, tk)
	}
}

func TestRealOverflow(t *testing.T) {
	tk := single(t, strings.Repeat("9", 400)+".0")
	if tk.Kind() != token.RealLiteralToken || !math.IsInf(tk.Value().Real(), 1) {
		t.Fatalf("got %v %v", tk.Kind(), tk.Value())
	}
	expectCodes(t, tk, diag.LexRealOverflow)
}

func TestLoneDotIsBadNumber(t *testing.T) {
	tk := single(t, ".")
	if tk.Kind() != token.BadToken {
		t.Fatalf("kind = %v", tk.Kind())
	}
	expectCodes(t, tk, diag.LexInvalidNumber)
}

func TestSignsArePunctuation(t *testing.T) {
	expectTokens(t, "-3 +.5", token.MinusToken, token.IntegerLiteralToken, token.PlusToken, token.RealLiteralToken)
}

func TestKeywords(t *testing.T) {
	toks := expectTokens(t, "true false null obj endobj R",
		token.TrueKeyword, token.FalseKeyword, token.NullKeyword, token.ObjKeyword,
		token.EndObjKeyword, token.RKeyword)
	if !toks[0].Value().Bool() || toks[1].Value().Bool() {
		t.Fatalf("boolean values are wrong")
	}
	expectTokens(t, "xref trailer startxref endstream",
		token.XRefKeyword, token.TrailerKeyword, token.StartXRefKeyword, token.EndStreamKeyword)
}

func TestInvalidKeywords(t *testing.T) {
	for _, in := range []string{"foo", "abcdefghijk", "True"} {
		tk := single(t, in)
		if tk.Kind() != token.BadToken {
			t.Errorf("%q: kind %v", in, tk.Kind())
		}
		expectCodes(t, tk, diag.LexInvalidKeyword)
		if got := tk.Diagnostics()[0].Args()[0]; got != in {
			t.Errorf("%q: argument %v", in, got)
		}
	}
}

func TestKeywordMemoIsStable(t *testing.T) {
	toks := expectTokens(t, "obj foo obj foo", token.ObjKeyword, token.BadToken, token.ObjKeyword, token.BadToken)
	expectCodes(t, toks[3], diag.LexInvalidKeyword)
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		in    string
		value string
	}{
		{`(abc\n)`, "abc\n"},
		{`()`, ""},
		{`(a(b)c)`, "a(b)c"},
		{`(\(\)\\)`, `()\`},
		{`(\t\b\f\r)`, "\t\b\f\r"},
		{`(\101\102)`, "AB"},
		{`(\0053)`, "\x053"},
		{`(\400)`, " 0"},
		{`(\7)`, "\x07"},
		{`(\q)`, "q"},
		{"(a\\\nb)", "ab"},
		{"(a\\\r\nb)", "ab"},
		{"(a\r\nb\rc\nd)", "a\nb\nc\nd"},
	}
	for _, tt := range tests {
		tk := single(t, tt.in)
		if tk.Kind() != token.StringLiteralToken {
			t.Errorf("%q: kind %v", tt.in, tk.Kind())
			continue
		}
		if got := tk.Value().Str(); got != tt.value {
			t.Errorf("%q: value %q, want %q", tt.in, got, tt.value)
		}
		if tk.Text() != tt.in {
			t.Errorf("%q: text %q must stay raw", tt.in, tk.Text())
		}
		expectCodes(t, tk)
	}
}

func TestUnbalancedString(t *testing.T) {
	tk := single(t, "(abc")
	if tk.Kind() != token.StringLiteralToken || tk.Value().Str() != "abc" {
		t.Fatalf("got %v %q", tk.Kind(), tk.Value().Str())
	}
	expectCodes(t, tk, diag.LexUnbalancedStringLiteral)

	tk = single(t, "(abc\\")
	expectCodes(t, tk, diag.LexInvalidStringLiteral, diag.LexUnbalancedStringLiteral)
}

func TestHexStrings(t *testing.T) {
	tests := []struct {
		in    string
		value []byte
	}{
		{"<901FA>", []byte{0x90, 0x1F, 0xA0}},
		{"<>", []byte{}},
		{"<4 1\n4 2>", []byte("AB")},
		{"<4>", []byte{0x40}},
		{"<abcdef>", []byte{0xAB, 0xCD, 0xEF}},
	}
	for _, tt := range tests {
		tk := single(t, tt.in)
		if tk.Kind() != token.HexStringLiteralToken {
			t.Errorf("%q: kind %v", tt.in, tk.Kind())
			continue
		}
		if got := tk.Value().Str(); got != string(tt.value) {
			t.Errorf("%q: value %x, want %x", tt.in, got, tt.value)
		}
		expectCodes(t, tk)
	}
}

func TestHexStringErrors(t *testing.T) {
	tk := single(t, "<4z1y>")
	if tk.Value().Str() != "A" {
		t.Fatalf("value %q", tk.Value().Str())
	}
	expectCodes(t, tk, diag.LexInvalidHexStringLiteral)

	tk = single(t, "<41")
	expectCodes(t, tk, diag.LexUnterminatedHexStringLiteral)
}

func TestNames(t *testing.T) {
	tests := []struct {
		in    string
		value string
		codes []diag.Code
	}{
		{"/Type", "Type", nil},
		{"/Lime#20Green", "Lime Green", nil},
		{"/", "", nil},
		{"/A;B", "A;B", nil},
		{"/A#2", "A#2", []diag.Code{diag.LexInvalidNameEscape}},
		{"/A#zz", "A#zz", []diag.Code{diag.LexInvalidNameEscape}},
	}
	for _, tt := range tests {
		tk := single(t, tt.in)
		if tk.Kind() != token.NameLiteralToken {
			t.Errorf("%q: kind %v", tt.in, tk.Kind())
			continue
		}
		if got := tk.Value().Str(); got != tt.value {
			t.Errorf("%q: value %q, want %q", tt.in, got, tt.value)
		}
		expectCodes(t, tk, tt.codes...)
	}
	expectTokens(t, "/A/B[/C]", token.NameLiteralToken, token.NameLiteralToken,
		token.OpenBracketToken, token.NameLiteralToken, token.CloseBracketToken)
}

func TestNameTooLong(t *testing.T) {
	long := strings.Repeat("x", lexer.MaxNameLength+1)
	tk := single(t, "/"+long)
	if tk.Value().Str() != long {
		t.Fatalf("name must not be truncated")
	}
	expectCodes(t, tk, diag.WarnNameTooLong)
	if tk.Diagnostics()[0].Severity() != diag.SevWarning {
		t.Fatalf("WRN_NameTooLong must be a warning")
	}
	expectCodes(t, single(t, "/"+long[1:]))
}

func TestPunctuation(t *testing.T) {
	expectTokens(t, "<<>>[]{}+-",
		token.LessThanLessThanToken, token.GreaterThanGreaterThanToken,
		token.OpenBracketToken, token.CloseBracketToken,
		token.OpenBraceToken, token.CloseBraceToken,
		token.PlusToken, token.MinusToken)
}

func TestUnexpectedCharacters(t *testing.T) {
	for _, in := range []string{")", ">", "?", "\x80"} {
		tk := single(t, in)
		if tk.Kind() != token.BadToken || tk.Width() != 1 {
			t.Errorf("%q: got %v width %d", in, tk.Kind(), tk.Width())
		}
		expectCodes(t, tk, diag.LexUnexpectedCharacter)
	}
}

func TestTriviaSplit(t *testing.T) {
	toks := expectTokens(t, "1 % c\n\n  2\r\n", token.IntegerLiteralToken, token.IntegerLiteralToken)
	first, second, eof := toks[0], toks[1], toks[2]

	if got := triviaTexts(first.Trailing()); strings.Join(got, "|") != " |% c|\n" {
		t.Errorf("first trailing = %q", got)
	}
	if got := triviaTexts(second.Leading()); strings.Join(got, "|") != "\n|  " {
		t.Errorf("second leading = %q", got)
	}
	if got := triviaTexts(second.Trailing()); strings.Join(got, "|") != "\r\n" {
		t.Errorf("second trailing = %q", got)
	}
	if eof.Leading() != nil || eof.FullWidth() != 0 {
		t.Errorf("EOF must be empty here, got width %d", eof.FullWidth())
	}
}

func TestEndOfLinesAreSeparateTrivia(t *testing.T) {
	toks := lexAll("\r\n\r\n\n%x")
	eof := toks[0]
	if eof.Kind() != token.EndOfFileToken {
		t.Fatalf("expected only EOF, got %v", eof.Kind())
	}
	if got := triviaTexts(eof.Leading()); strings.Join(got, "|") != "\r\n|\r\n|\n|%x" {
		t.Errorf("EOF leading = %q", got)
	}
}

func TestSharedTrivia(t *testing.T) {
	toks := lexAll("1 2 ")
	a, ok1 := toks[0].Trailing().(*green.Trivia)
	b, ok2 := toks[1].Trailing().(*green.Trivia)
	if !ok1 || !ok2 || a != b || !green.IsShared(a) {
		t.Fatalf("single spaces must use the shared trivia instance")
	}
}

func TestEOFRepeats(t *testing.T) {
	lx := makeTestLexer("1")
	lx.Next()
	a := lx.Next()
	b := lx.Next()
	if a.Kind() != token.EndOfFileToken || a != b {
		t.Fatalf("EOF must be returned repeatedly")
	}
	if lx.Count() != 2 {
		t.Fatalf("Count = %d", lx.Count())
	}
}

func TestPeek(t *testing.T) {
	lx := makeTestLexer("1 2")
	p := lx.Peek()
	if p != lx.Peek() {
		t.Fatalf("repeated Peek must return the same token")
	}
	if n := lx.Next(); n != p {
		t.Fatalf("Next must return the peeked token")
	}
	if lx.Next().Value().Int() != 2 {
		t.Fatalf("second token is wrong")
	}
}

func TestStreamData(t *testing.T) {
	in := "<< /Length 6 >>\nstream\r\n(x\x00)/y\nendstream\nendobj"
	toks := expectTokens(t, in,
		token.LessThanLessThanToken, token.NameLiteralToken, token.IntegerLiteralToken,
		token.GreaterThanGreaterThanToken, token.StreamKeyword, token.StreamDataToken,
		token.EndStreamKeyword, token.EndObjKeyword)
	data := toks[5]
	if data.Text() != "(x\x00)/y\n" || data.Value().Str() != data.Text() {
		t.Fatalf("stream data = %q", data.Text())
	}
	if got := triviaTexts(toks[4].Trailing()); strings.Join(got, "|") != "\r\n" {
		t.Fatalf("stream keyword trailing = %q", got)
	}
	expectCodes(t, data)
}

func TestMissingEndStream(t *testing.T) {
	toks := expectTokens(t, "stream\nabc", token.StreamKeyword, token.StreamDataToken)
	expectCodes(t, toks[1], diag.LexMissingEndStream)
	if toks[1].Text() != "abc" {
		t.Fatalf("data = %q", toks[1].Text())
	}
}

func TestNextStreamDataAfterPeek(t *testing.T) {
	lx := makeTestLexer("abc def endstream")
	lx.Peek()
	data := lx.NextStreamData()
	if data.Text() != "abc def " {
		t.Fatalf("data = %q", data.Text())
	}
	if k := lx.Next().Kind(); k != token.EndStreamKeyword {
		t.Fatalf("next = %v", k)
	}
}

func TestFactoryInterning(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("r.pdf", []byte("0 0 R 0 0 R"))
	f := green.NewFactory(green.NewCache(8))
	toks := collectAllTokens(lexer.New(fs.Get(id), lexer.Options{Factory: f}))
	if toks[0] != toks[1] {
		t.Fatalf("identical tokens with shared trivia must be interned")
	}
	if toks[0] != toks[3] {
		t.Fatalf("tokens must be shared across references")
	}
}
