package lexer

import (
	"bytes"

	"fortio.org/safecast"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/token"
)

var endstreamKeyword = []byte("endstream")

// NextStreamData returns the raw bytes from the current position up to, not
// including, the next "endstream". Next calls it automatically after a
// 'stream' keyword. A token obtained through Peek is discarded and its bytes
// are re-read as stream data.
func (lx *Lexer) NextStreamData() *green.Token {
	lx.afterStream = false
	if lx.look != nil {
		lx.cursor.Reset(lx.lookStart)
		if lx.look == lx.eof {
			lx.eof = nil
		}
		lx.look = nil
		lx.count--
	}

	lx.state = stateStreamData
	defer func() { lx.state = stateDefault }()

	lx.buf.reset(lx.cursor.Mark())
	rest := lx.cursor.Rest()
	n := bytes.Index(rest, endstreamKeyword)
	if n < 0 {
		n = len(rest)
		lx.info(diag.LexMissingEndStream)
	}
	adv, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	lx.cursor.Off += adv
	text := string(lx.cursor.TextFrom(lx.buf.start))
	tok := lx.factory.Token(token.StreamDataToken, text, token.StringValue(text), nil, nil, lx.buf.diags)
	lx.emitted(tok)
	return tok
}
