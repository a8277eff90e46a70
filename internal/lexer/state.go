package lexer

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// state is the scanner currently driving the lexer.
type state uint8

const (
	stateDefault state = iota
	stateNumeric
	stateKeyword
	stateStringLiteral
	stateHexStringLiteral
	stateNameLiteral
	stateTrivia
	stateSimpleToken
	stateStreamData
)

func (s state) String() string {
	switch s {
	case stateDefault:
		return "default"
	case stateNumeric:
		return "numeric"
	case stateKeyword:
		return "keyword"
	case stateStringLiteral:
		return "string"
	case stateHexStringLiteral:
		return "hexstring"
	case stateNameLiteral:
		return "name"
	case stateTrivia:
		return "trivia"
	case stateSimpleToken:
		return "simple"
	case stateStreamData:
		return "streamdata"
	}
	return "unknown"
}

// tokenBuffer is the transient record filled by a scanner. It is reset for
// every token and turned into an immutable green token by the factory.
type tokenBuffer struct {
	kind    token.Kind
	start   Mark
	value   token.Value
	diags   []diag.Info
	scratch []byte
}

func (b *tokenBuffer) reset(start Mark) {
	b.kind = token.None
	b.start = start
	b.value = token.Value{}
	b.diags = b.diags[:0]
	b.scratch = b.scratch[:0]
}

// dispatch picks the scanner for the lexeme starting with b.
func (lx *Lexer) dispatch(b byte) state {
	switch {
	case isDigit(b) || b == '.':
		return stateNumeric
	case isLetter(b):
		return stateKeyword
	case b == '(':
		return stateStringLiteral
	case b == '<':
		if b1, ok := lx.cursor.PeekAt(1); ok && b1 == '<' {
			return stateSimpleToken
		}
		return stateHexStringLiteral
	case b == '/':
		return stateNameLiteral
	default:
		return stateSimpleToken
	}
}

// run executes exactly one scanner for the current state.
func (lx *Lexer) run() {
	switch lx.state {
	case stateNumeric:
		lx.scanNumber()
	case stateKeyword:
		lx.scanKeyword()
	case stateStringLiteral:
		lx.scanString()
	case stateHexStringLiteral:
		lx.scanHexString()
	case stateNameLiteral:
		lx.scanName()
	default:
		lx.scanSimpleToken()
	}
	lx.state = stateDefault
}
