package lexer

import (
	"pdfsyntax/internal/token"
)

// collectTrivia собирает подряд идущие trivia в lx.hold.
//   - NUL, TAB, FF и пробел коалесцируются в один WhitespaceTrivia
//   - каждый конец строки ("\r\n", "\r", "\n") — отдельный EndOfLineTrivia
//   - '%' ... до конца строки (не включая) — CommentTrivia
//
// For trailing trivia the loop stops right after the first end-of-line; what
// follows belongs to the next token.
func (lx *Lexer) collectTrivia(trailing bool) {
	lx.hold = lx.hold[:0]
	lx.state = stateTrivia
	defer func() { lx.state = stateDefault }()

	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isWhitespace(b):
			for !lx.cursor.EOF() && isWhitespace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.WhitespaceTrivia, start)

		case b == '\r' || b == '\n':
			lx.cursor.Bump()
			if b == '\r' {
				lx.cursor.Eat('\n')
			}
			lx.pushTrivia(token.EndOfLineTrivia, start)
			if trailing {
				return
			}

		case b == '%':
			for !lx.cursor.EOF() && !isEOL(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.CommentTrivia, start)

		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.Kind, start Mark) {
	text := string(lx.cursor.TextFrom(start))
	lx.hold = append(lx.hold, lx.factory.Trivia(kind, text))
}
