package lexer

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/msgs"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/token"
	"pdfsyntax/internal/trace"
)

// maxMemoizedKeywords bounds the per-lexer keyword memo.
const maxMemoizedKeywords = 1024

// Lexer turns the bytes of one file into green tokens, one per call.
// A Lexer is not safe for concurrent use.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	factory *green.Factory
	msgs    diag.MessageProvider
	tracer  trace.Tracer

	state    state
	buf      tokenBuffer
	hold     []*green.Trivia // накопленные trivia
	keywords map[string]token.Kind

	look      *green.Token // 1 элементный буфер для токена
	lookStart Mark
	eof       *green.Token

	// afterStream is set once a 'stream' keyword was produced; the next
	// token is the raw stream payload.
	afterStream bool
	traceTokens bool
	count       int
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		opts:     opts,
		factory:  opts.Factory,
		msgs:     opts.Messages,
		tracer:   opts.Tracer,
		keywords: make(map[string]token.Kind, 16),
	}
	if lx.factory == nil {
		lx.factory = green.NewFactory(nil)
	}
	if lx.msgs == nil {
		lx.msgs = msgs.Default()
	}
	if lx.tracer == nil {
		lx.tracer = trace.Nop
	}
	lx.traceTokens = lx.tracer.Enabled() && lx.tracer.Level().ShouldEmit(trace.ScopeToken)
	return lx
}

func (lx *Lexer) File() *source.File { return lx.file }

// Factory is the factory tokens are built with; parsers reading this lexer
// must build their nodes with the same one.
func (lx *Lexer) Factory() *green.Factory { return lx.factory }

func (lx *Lexer) Messages() diag.MessageProvider { return lx.msgs }

// Offset is the number of bytes consumed so far.
func (lx *Lexer) Offset() uint32 { return lx.cursor.Off }

// Count is the number of tokens produced so far, EOF included once.
func (lx *Lexer) Count() int { return lx.count }

// Next возвращает следующий токен с уже собранными leading/trailing trivia.
// После EOF всегда возвращает тот же EOF.
func (lx *Lexer) Next() *green.Token {
	if lx.look != nil {
		tok := lx.look
		lx.look = nil
		return tok
	}
	if lx.eof != nil {
		return lx.eof
	}
	if lx.afterStream {
		return lx.NextStreamData()
	}

	lx.collectTrivia(false)
	leading := lx.factory.TriviaList(lx.hold)

	if lx.cursor.EOF() {
		lx.eof = lx.factory.Token(token.EndOfFileToken, "", token.Value{}, leading, nil, nil)
		lx.emitted(lx.eof)
		return lx.eof
	}

	lx.buf.reset(lx.cursor.Mark())
	lx.state = lx.dispatch(lx.cursor.Peek())
	lx.run()
	text := string(lx.cursor.TextFrom(lx.buf.start))

	lx.collectTrivia(true)
	trailing := lx.factory.TriviaList(lx.hold)

	tok := lx.factory.Token(lx.buf.kind, text, lx.buf.value, leading, trailing, lx.buf.diags)
	if tok.Kind() == token.StreamKeyword {
		lx.afterStream = true
	}
	lx.emitted(tok)
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() *green.Token {
	if lx.look != nil {
		return lx.look
	}
	start := lx.cursor.Mark()
	t := lx.Next()
	lx.look = t
	lx.lookStart = start
	return t
}

func (lx *Lexer) emitted(tok *green.Token) {
	lx.count++
	if !lx.traceTokens {
		return
	}
	trace.Token(lx.tracer, tok.Kind().String(), lx.file.Path, lx.cursor.Off-tok.FullWidth(), tok.FullWidth())
}
