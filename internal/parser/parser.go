package parser

import (
	"context"
	"slices"
	"strconv"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/lexer"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/syntax"
	"pdfsyntax/internal/token"
	"pdfsyntax/internal/trace"
)

// MaxNesting bounds nested arrays, dictionaries and procedures. Deeper
// openers are reported as unexpected tokens.
const MaxNesting = 256

type Options struct {
	// Factory is used when ParseFile creates the lexer; nil means a private one.
	Factory *green.Factory
	// Messages resolves severities; nil means the lexer's provider.
	Messages diag.MessageProvider
	// Tracer gets the parse span and, at debug level, token events.
	// nil means the tracer stored in the context.
	Tracer trace.Tracer
	// MaxErrors caps syntax errors attached by the parser; 0 is unbounded.
	// Missing tokens are still inserted past the cap, just without a diagnostic.
	MaxErrors uint
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough(current uint) bool {
	if o.MaxErrors == 0 {
		return false
	}
	return current >= o.MaxErrors
}

type Result struct {
	Tree   *syntax.Tree
	Tokens int  // tokens pulled from the lexer, EOF included
	Errors uint // syntax errors reported by the parser itself
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx      *lexer.Lexer
	f       *green.Factory
	msgs    diag.MessageProvider
	opts    Options
	look    []*green.Token // буфер lookahead, не более трёх токенов
	closers []token.Kind   // закрывающие токены открытых конструкций
	errors  uint
}

// ParseFile — входная точка для разбора одного файла.
func ParseFile(ctx context.Context, file *source.File, opts Options) Result {
	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	lx := lexer.New(file, lexer.Options{
		Factory:  opts.Factory,
		Messages: opts.Messages,
		Tracer:   opts.Tracer,
	})
	return Parse(lx, opts)
}

// Parse reads lx to the end and builds a Document tree with the lexer's
// factory.
func Parse(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:   lx,
		f:    lx.Factory(),
		msgs: opts.Messages,
		opts: opts,
		look: make([]*green.Token, 0, 3),
	}
	if p.msgs == nil {
		p.msgs = lx.Messages()
	}

	span := trace.Begin(opts.Tracer, trace.ScopePass, "parse", 0)
	root := p.parseDocument()
	span.WithExtra("file", lx.File().Path).
		WithExtra("tokens", strconv.Itoa(lx.Count())).
		End("")

	return Result{
		Tree:   syntax.NewTree(root, lx.File()),
		Tokens: lx.Count(),
		Errors: p.errors,
	}
}

func (p *Parser) peekAt(i int) *green.Token {
	for len(p.look) <= i {
		p.look = append(p.look, p.lx.Next())
	}
	return p.look[i]
}

func (p *Parser) peek() *green.Token { return p.peekAt(0) }

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind() == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind())
}

// advance съедает следующий токен; EOF никогда не съедается.
func (p *Parser) advance() *green.Token {
	tok := p.peek()
	if tok.Kind() == token.EndOfFileToken {
		return tok
	}
	copy(p.look, p.look[1:])
	p.look = p.look[:len(p.look)-1]
	return tok
}

func (p *Parser) enter(closer token.Kind) { p.closers = append(p.closers, closer) }
func (p *Parser) leave()                  { p.closers = p.closers[:len(p.closers)-1] }

func (p *Parser) tooDeep() bool { return len(p.closers) >= MaxNesting }

// terminates reports whether k ends the current value list: a closer of an
// enclosing construct or a structural keyword.
func (p *Parser) terminates(k token.Kind) bool {
	switch k {
	case token.EndOfFileToken,
		token.ObjKeyword, token.EndObjKeyword,
		token.StreamKeyword, token.EndStreamKeyword, token.StreamDataToken,
		token.XRefKeyword, token.TrailerKeyword, token.StartXRefKeyword:
		return true
	}
	return slices.Contains(p.closers, k)
}
