package lexer

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/trace"
)

type Options struct {
	// Factory builds the green tokens; nil gives the lexer a private one
	// without a node cache.
	Factory *green.Factory
	// Messages supplies severities for produced diagnostics; nil means msgs.Default().
	Messages diag.MessageProvider
	// Tracer receives one point event per token at trace.LevelDebug.
	Tracer trace.Tracer
}

func (lx *Lexer) info(code diag.Code, args ...any) {
	lx.buf.diags = append(lx.buf.diags, diag.NewInfo(lx.msgs, code, args...))
}
