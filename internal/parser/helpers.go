package parser

import (
	"slices"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/token"
)

const maxDescribed = 32

// report создаёт диагностику; ошибки сверх MaxErrors отбрасываются.
func (p *Parser) report(code diag.Code, args ...any) []diag.Info {
	if p.msgs.Severity(code) >= diag.SevError {
		if p.opts.Enough(p.errors) {
			return nil
		}
		p.errors++
	}
	return []diag.Info{diag.NewInfo(p.msgs, code, args...)}
}

// expect — ожидаем конкретный токен. Если нет — вставляем missing-токен.
func (p *Parser) expect(k token.Kind) *green.Token {
	if p.at(k) {
		return p.advance()
	}
	return p.f.Missing(k, p.report(diag.SynExpectedToken, k.Text())...)
}

func (p *Parser) node(kind token.Kind, ds []diag.Info, slots ...green.Node) green.Node {
	n := p.f.Node(kind, slots...)
	if len(ds) > 0 {
		n = n.SetDiagnostics(ds)
	}
	return n
}

// unexpected оборачивает токен, которому нет места в грамматике.
// Токены с лексическими ошибками повторно не репортятся.
func (p *Parser) unexpected(tok *green.Token, code diag.Code) green.Node {
	var ds []diag.Info
	if len(tok.Diagnostics()) == 0 {
		ds = p.report(code, describe(tok))
	}
	return p.node(token.UnexpectedExpression, ds, tok)
}

func (p *Parser) missingValue() *green.Token {
	return p.f.Missing(token.BadToken, p.report(diag.SynExpectedValue, describe(p.peek()))...)
}

// withDiagnostic returns tok with one more diagnostic.
func withDiagnostic(tok *green.Token, ds []diag.Info) *green.Token {
	if len(ds) == 0 {
		return tok
	}
	all := append(slices.Clip(tok.Diagnostics()), ds...)
	return tok.SetDiagnostics(all).(*green.Token)
}

// onlyInvalidKeyword reports whether tok is a letter run the lexer rejected
// as a keyword and nothing else is wrong with it.
func onlyInvalidKeyword(tok *green.Token) bool {
	if tok.Kind() != token.BadToken {
		return false
	}
	ds := tok.Diagnostics()
	return len(ds) == 1 && ds[0].Code() == diag.LexInvalidKeyword
}

// accept drops the invalid-keyword diagnostic from a token the grammar
// recognises in context.
func accept(tok *green.Token) *green.Token {
	return tok.SetDiagnostics(nil).(*green.Token)
}

func describe(tok *green.Token) string {
	switch {
	case tok.Kind() == token.EndOfFileToken:
		return "end of file"
	case tok.Kind() == token.StreamDataToken:
		return "stream data"
	case tok.Text() == "":
		return tok.Kind().String()
	}
	text := tok.Text()
	if len(text) > maxDescribed {
		text = text[:maxDescribed] + "..."
	}
	return text
}
