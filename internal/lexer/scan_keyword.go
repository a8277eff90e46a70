package lexer

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

func (lx *Lexer) scanKeyword() {
	for isLetter(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(lx.buf.start)
	kind := lx.lookupKeyword(text)
	lx.buf.kind = kind
	switch kind {
	case token.BadToken:
		lx.info(diag.LexInvalidKeyword, string(text))
	case token.TrueKeyword:
		lx.buf.value = token.BoolValue(true)
	case token.FalseKeyword:
		lx.buf.value = token.BoolValue(false)
	}
}

// lookupKeyword resolves text through the per-lexer memo. Texts longer than
// the longest keyword are never looked up.
func (lx *Lexer) lookupKeyword(text []byte) token.Kind {
	if len(text) > token.MaxKeywordLength {
		return token.BadToken
	}
	if k, ok := lx.keywords[string(text)]; ok {
		return k
	}
	s := string(text)
	k, ok := token.LookupKeyword(s)
	if !ok {
		k = token.BadToken
	}
	if len(lx.keywords) < maxMemoizedKeywords {
		lx.keywords[s] = k
	}
	return k
}
