package lexer

import (
	"math"
	"strconv"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// scanNumber: digits, optional '.', digits. Signs are separate tokens.
func (lx *Lexer) scanNumber() {
	digits := 0
	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
		digits++
	}
	dot := lx.cursor.Eat('.')
	if dot {
		for isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
	}
	text := string(lx.cursor.TextFrom(lx.buf.start))

	if digits == 0 {
		lx.buf.kind = token.BadToken
		lx.info(diag.LexInvalidNumber, text)
		return
	}

	if !dot {
		if v, err := strconv.ParseInt(text, 10, 32); err == nil {
			lx.buf.kind = token.IntegerLiteralToken
			lx.buf.value = token.IntValue(int32(v))
			return
		}
		// переполнение int32: число остаётся представимым как real
	}

	// ParseFloat reports ErrRange together with ±Inf on overflow.
	f, _ := strconv.ParseFloat(text, 64)
	lx.buf.kind = token.RealLiteralToken
	lx.buf.value = token.RealValue(f)
	if math.IsInf(f, 0) {
		lx.info(diag.LexRealOverflow, text)
	}
}
