package diag

import (
	"testing"

	"golang.org/x/text/language"

	"pdfsyntax/internal/source"
)

type testProvider struct {
	texts map[Code]string
}

func (testProvider) CodePrefix() string { return "PDF" }

func (p testProvider) Severity(code Code) Severity {
	if code.IsWarning() {
		return SevWarning
	}
	return SevError
}

func (p testProvider) Message(code Code, tag language.Tag) (string, bool) {
	if tag == language.French {
		return "", false
	}
	s, ok := p.texts[code]
	return s, ok
}

var prov = testProvider{texts: map[Code]string{
	LexInvalidKeyword:    "Invalid keyword '%s'",
	WarnNameTooLong:      "Name is %d bytes long",
	WarnNestedDiagnostic: "Nested: %s",
	SynExpectedToken:     "Expected '%s'",
}}

type fakeTree struct {
	path  string
	lines []uint32
}

func (t fakeTree) FilePath() string { return t.path }
func (t fakeTree) LineCol(off uint32) source.LineCol {
	return source.ToLineCol(t.lines, off)
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnexpectedCharacter, "PDF0001"},
		{LexInvalidKeyword, "PDF0004"},
		{SynExpectedToken, "PDF0100"},
		{WarnNameTooLong, "PDF1000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%v.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestParseCode(t *testing.T) {
	for _, in := range []string{"PDF0004", "ERR_InvalidKeyword"} {
		c, err := ParseCode(in)
		if err != nil || c != LexInvalidKeyword {
			t.Errorf("ParseCode(%q) = %v, %v", in, c, err)
		}
	}
	if _, err := ParseCode("PDF9999"); err == nil {
		t.Errorf("expected error for unknown code")
	}
	if _, err := ParseCode("bogus"); err == nil {
		t.Errorf("expected error for garbage")
	}
}

func TestCodesHaveNames(t *testing.T) {
	for _, c := range Codes() {
		if c.Name() == "" {
			t.Errorf("code %d has no symbolic name", c)
		}
	}
}

func TestInfoSeverityFromProvider(t *testing.T) {
	e := NewInfo(prov, LexInvalidKeyword, "foo")
	if e.Severity() != SevError || !e.IsError() {
		t.Fatalf("want error severity, got %v", e.Severity())
	}
	w := NewInfo(prov, WarnNameTooLong, 200)
	if w.Severity() != SevWarning || !w.IsWarning() {
		t.Fatalf("want warning severity, got %v", w.Severity())
	}
	esc := w.Escalate()
	if esc.Severity() != SevError || esc.DefaultSeverity() != SevWarning {
		t.Fatalf("escalate: got %v (default %v)", esc.Severity(), esc.DefaultSeverity())
	}
	if w.Severity() != SevWarning {
		t.Fatalf("escalate must not mutate the receiver")
	}
}

func TestInfoEqualityIsStructural(t *testing.T) {
	a := NewInfo(prov, LexInvalidKeyword, "foo")
	b := NewInfo(prov, LexInvalidKeyword, "foo")
	c := NewInfo(prov, LexInvalidKeyword, "bar")
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Fatalf("identical infos must be equal with equal hashes")
	}
	if a.Equal(c) {
		t.Fatalf("different args must not be equal")
	}
	if !a.Equal(a.Escalate()) {
		t.Fatalf("severity is not part of identity")
	}

	na := Nested(prov, a)
	nb := Nested(prov, b)
	nc := Nested(prov, c)
	if !na.Equal(nb) || na.Hash() != nb.Hash() {
		t.Fatalf("nested infos must compare recursively")
	}
	if na.Equal(nc) {
		t.Fatalf("nested infos with different inner args must differ")
	}

	bytesA := NewInfo(prov, LexInvalidKeyword, []byte("x"))
	bytesB := NewInfo(prov, LexInvalidKeyword, []byte("x"))
	if !bytesA.Equal(bytesB) || bytesA.Hash() != bytesB.Hash() {
		t.Fatalf("byte slice args must compare by content")
	}
}

func TestInfoFormat(t *testing.T) {
	i := NewInfo(prov, LexInvalidKeyword, "foo")
	if got := i.Format(language.English); got != "Invalid keyword 'foo'" {
		t.Fatalf("Format = %q", got)
	}
	n := Nested(prov, i)
	if got := n.Format(language.English); got != "Nested: Invalid keyword 'foo'" {
		t.Fatalf("nested Format = %q", got)
	}
	if got := i.Format(language.French); got != "" {
		t.Fatalf("missing translation must render empty, got %q", got)
	}
	if got := NewInfo(prov, LexMissingEndStream).Message(); got != "" {
		t.Fatalf("missing text must render empty, got %q", got)
	}
	if got := NewInfo(nil, WarnEmptyFile); got.Severity() != SevWarning || got.Message() != "" {
		t.Fatalf("fallback provider: %v %q", got.Severity(), got.Message())
	}
}

func TestDiagnosticString(t *testing.T) {
	tree := fakeTree{path: "a.pdf", lines: []uint32{3}}
	d := New(NewInfo(prov, LexInvalidKeyword, "foo"), SourceLocation{Tree: tree, Span: source.Span{Start: 5, End: 8}})
	if got := d.String(); got != "error PDF0004: Invalid keyword 'foo'" {
		t.Fatalf("String = %q", got)
	}
	pos, ok := d.Position()
	if !ok || pos.Path != "a.pdf" || pos.Lines.Start != (source.LineCol{Line: 2, Col: 2}) {
		t.Fatalf("Position = %+v, %v", pos, ok)
	}
	if _, ok := New(d.Info, nil).Position(); ok {
		t.Fatalf("NoLocation must not resolve")
	}
}

func TestBagDedupAndSort(t *testing.T) {
	tree := fakeTree{path: "a.pdf"}
	at := func(start uint32) Location {
		return SourceLocation{Tree: tree, Span: source.Span{Start: start, End: start + 1}}
	}
	b := NewBag(0)
	b.Add(New(NewInfo(prov, WarnNameTooLong, 130), at(10)))
	b.Add(New(NewInfo(prov, LexInvalidKeyword, "foo"), at(2)))
	b.Add(New(NewInfo(prov, LexInvalidKeyword, "foo"), at(2)))
	b.Add(New(NewInfo(prov, LexInvalidKeyword, "bar"), at(2)))
	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup kept %d, want 3", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Code() != LexInvalidKeyword || items[2].Code() != WarnNameTooLong {
		t.Fatalf("unexpected order: %v", items)
	}
	if !b.HasErrors() || !b.HasWarnings() || b.Count(SevWarning) != 1 {
		t.Fatalf("severity counters are wrong")
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(New(NewInfo(prov, LexInvalidNumber), nil)) {
		t.Fatalf("first add must succeed")
	}
	if b.Add(New(NewInfo(prov, LexInvalidNumber), nil)) {
		t.Fatalf("second add must hit the limit")
	}
}

func TestPolicy(t *testing.T) {
	p, err := NewPolicy([]string{"WRN_NameTooLong"}, []string{"PDF1001"})
	if err != nil {
		t.Fatal(err)
	}
	d, keep := p.Apply(New(NewInfo(prov, WarnNameTooLong, 200), nil))
	if !keep || d.Severity() != SevError {
		t.Fatalf("warning must be escalated, got %v keep=%v", d.Severity(), keep)
	}
	if _, keep := p.Apply(New(NewInfo(prov, WarnEmptyFile), nil)); keep {
		t.Fatalf("suppressed code must be dropped")
	}

	all, err := NewPolicy([]string{"all"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := all.ApplyAll([]Diagnostic{New(NewInfo(prov, WarnEmptyFile), nil)})
	if len(got) != 1 || got[0].Severity() != SevError {
		t.Fatalf("all warnings must be escalated")
	}

	if _, err := NewPolicy([]string{"nope"}, nil); err == nil {
		t.Fatalf("unknown code must be rejected")
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	tree := fakeTree{path: "/workspace/testdata/sample.pdf", lines: []uint32{1}}
	diags := []Diagnostic{
		New(NewInfo(prov, WarnNameTooLong, 128), SourceLocation{Tree: tree, Span: source.Span{Start: 2, End: 3}}),
		New(NewInfo(prov, SynExpectedToken, "]"), SourceLocation{Tree: tree, Span: source.Span{Start: 0, End: 1}}),
	}
	expected := "error PDF0100 testdata/sample.pdf:1:1 Expected ']'\n" +
		"warning PDF1000 testdata/sample.pdf:2:1 Name is 128 bytes long"
	if got := FormatGoldenDiagnostics(diags, "/workspace", language.English); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
