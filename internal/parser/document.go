package parser

import (
	"math"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/token"
)

// maxGeneration is the largest generation number an object may have.
const maxGeneration = 65535

// parseDocument — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseDocument() green.Node {
	var items []green.Node
	for !p.at(token.EndOfFileToken) {
		items = append(items, p.parseItem())
	}
	eof := p.advance()
	var ds []diag.Info
	if len(items) == 0 {
		ds = p.report(diag.WarnEmptyFile)
	}
	return p.node(token.Document, ds, p.f.List(items...), eof)
}

// parseItem выбирает по первому токену нужный распознаватель.
// Каждый вызов потребляет хотя бы один токен.
func (p *Parser) parseItem() green.Node {
	switch p.peek().Kind() {
	case token.IntegerLiteralToken:
		if p.atObjectHeader() {
			return p.parseIndirectObject()
		}
	case token.XRefKeyword:
		return p.parseXRef()
	case token.TrailerKeyword:
		return p.parseTrailer()
	case token.StartXRefKeyword:
		return p.parseStartXRef()
	}
	return p.unexpected(p.advance(), diag.SynUnexpectedToken)
}

func (p *Parser) atObjectHeader() bool {
	return p.at(token.IntegerLiteralToken) &&
		p.peekAt(1).Kind() == token.IntegerLiteralToken &&
		p.peekAt(2).Kind() == token.ObjKeyword
}

// parseIndirectObject: num gen obj value [stream ... endstream] endobj
func (p *Parser) parseIndirectObject() green.Node {
	num := p.objectNumber(p.advance(), 1, math.MaxInt32)
	gen := p.objectNumber(p.advance(), 0, maxGeneration)
	obj := p.advance()

	var value green.Node
	if p.atAny(token.EndObjKeyword, token.EndOfFileToken) || p.atObjectHeader() {
		value = p.missingValue()
	} else {
		value = p.parseValue()
	}
	if p.at(token.StreamKeyword) {
		value = p.parseStream(value)
	}
	endobj := p.expect(token.EndObjKeyword)
	return p.f.Node(token.IndirectObject, num, gen, obj, value, endobj)
}

// objectNumber проверяет диапазон номера объекта или поколения.
func (p *Parser) objectNumber(tok *green.Token, lo, hi int32) *green.Token {
	v := tok.Value().Int()
	if v >= lo && v <= hi {
		return tok
	}
	return withDiagnostic(tok, p.report(diag.SynInvalidObjectNumber, tok.Text()))
}

// parseStream: dict stream <data> endstream
func (p *Parser) parseStream(dict green.Node) green.Node {
	var ds []diag.Info
	if dict.Kind() != token.DictionaryExpression {
		ds = p.report(diag.SynExpectedToken, token.LessThanLessThanToken.Text())
	}
	kw := p.advance()

	var data *green.Token
	if p.at(token.StreamDataToken) {
		data = p.advance()
	} else {
		data = p.f.Missing(token.StreamDataToken)
	}

	var end *green.Token
	switch {
	case p.at(token.EndStreamKeyword):
		end = p.advance()
	case hasCode(data, diag.LexMissingEndStream):
		// лексер уже сообщил об отсутствии endstream
		end = p.f.Missing(token.EndStreamKeyword)
	default:
		end = p.expect(token.EndStreamKeyword)
	}
	return p.node(token.StreamObject, ds, dict, kw, data, end)
}

// parseXRef: xref, затем заголовки подсекций и записи "offset gen n|f".
func (p *Parser) parseXRef() green.Node {
	kw := p.advance()
	var entries []green.Node
	for {
		tok := p.peek()
		switch {
		case tok.Kind() == token.IntegerLiteralToken && !p.atObjectHeader():
			entries = append(entries, p.advance())
		case isEntryMarker(tok):
			entries = append(entries, accept(p.advance()))
		default:
			return p.f.Node(token.XRefSection, kw, p.f.List(entries...))
		}
	}
}

// isEntryMarker — маркеры записей xref: n (in use) и f (free).
func isEntryMarker(tok *green.Token) bool {
	if !onlyInvalidKeyword(tok) {
		return false
	}
	return tok.Text() == "n" || tok.Text() == "f"
}

func (p *Parser) parseTrailer() green.Node {
	kw := p.advance()
	var dict green.Node
	if p.at(token.LessThanLessThanToken) {
		dict = p.parseDictionary()
	} else {
		dict = p.expect(token.LessThanLessThanToken)
	}
	return p.f.Node(token.TrailerSection, kw, dict)
}

func (p *Parser) parseStartXRef() green.Node {
	kw := p.advance()
	var offset *green.Token
	if p.at(token.IntegerLiteralToken) {
		offset = p.advance()
	} else {
		offset = p.f.Missing(token.IntegerLiteralToken,
			p.report(diag.SynExpectedValue, describe(p.peek()))...)
	}
	return p.f.Node(token.StartXRefSection, kw, offset)
}

func hasCode(tok *green.Token, code diag.Code) bool {
	for _, d := range tok.Diagnostics() {
		if d.Code() == code {
			return true
		}
	}
	return false
}
