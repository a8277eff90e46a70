package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pdfsyntax/internal/green"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/token"
)

// maxTokenText ограничивает текст токена в выводе; stream data бывает мегабайтами.
const maxTokenText = 48

type TokenOutput struct {
	Kind      string      `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Value     string      `json:"value,omitempty"`
	Span      source.Span `json:"span"`
	Missing   bool        `json:"missing,omitempty"`
	Leading   []string    `json:"leading,omitempty"`
	Trailing  []string    `json:"trailing,omitempty"`
	Diagnoses []string    `json:"diagnostics,omitempty"`
}

func triviaKinds(n green.Node) []string {
	var out []string
	for _, t := range green.ListOf(n) {
		out = append(out, t.Kind().String())
	}
	return out
}

func clipText(s string) string {
	if len(s) > maxTokenText {
		return s[:maxTokenText] + "..."
	}
	return s
}

// tokenSpan returns the trimmed span of tokens[i] given where its full text starts.
func tokenSpan(tok *green.Token, off uint32, file *source.File) source.Span {
	start := off + tok.LeadingWidth()
	sp := source.Span{Start: start, End: start + tok.Width()}
	if file != nil {
		sp.File = file.ID
	}
	return sp
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// offsets[i] - начало полного текста tokens[i] (с leading trivia).
func FormatTokensPretty(w io.Writer, tokens []*green.Token, offsets []uint32, file *source.File) error {
	for i, tok := range tokens {
		sp := tokenSpan(tok, offsets[i], file)

		fmt.Fprintf(w, "%3d: %-24s", i+1, tok.Kind().String())
		if tok.Width() > 0 {
			fmt.Fprintf(w, " %q", clipText(tok.Text()))
		}
		if v := tok.Value(); !v.IsNone() && tok.Kind() != token.StreamDataToken {
			fmt.Fprintf(w, " = %s", v.String())
		}
		if file != nil {
			start, end := file.LineCol(sp.Start), file.LineCol(sp.End)
			fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		} else {
			fmt.Fprintf(w, " at %s", sp)
		}
		if leading := triviaKinds(tok.Leading()); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		if trailing := triviaKinds(tok.Trailing()); len(trailing) > 0 {
			fmt.Fprintf(w, " (trailing: %s)", strings.Join(trailing, ", "))
		}
		for _, d := range tok.Diagnostics() {
			fmt.Fprintf(w, " [%s]", d.ID())
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []*green.Token, offsets []uint32, file *source.File) error {
	output := make([]TokenOutput, 0, len(tokens))
	for i, tok := range tokens {
		out := TokenOutput{
			Kind:     tok.Kind().String(),
			Text:     clipText(tok.Text()),
			Span:     tokenSpan(tok, offsets[i], file),
			Missing:  tok.IsMissing(),
			Leading:  triviaKinds(tok.Leading()),
			Trailing: triviaKinds(tok.Trailing()),
		}
		if v := tok.Value(); !v.IsNone() && tok.Kind() != token.StreamDataToken {
			out.Value = v.String()
		}
		for _, d := range tok.Diagnostics() {
			out.Diagnoses = append(out.Diagnoses, d.ID())
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
