package parser

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/token"
)

func startsValue(k token.Kind) bool {
	switch k {
	case token.IntegerLiteralToken, token.RealLiteralToken,
		token.StringLiteralToken, token.HexStringLiteralToken, token.NameLiteralToken,
		token.TrueKeyword, token.FalseKeyword, token.NullKeyword,
		token.PlusToken, token.MinusToken,
		token.OpenBracketToken, token.LessThanLessThanToken, token.OpenBraceToken:
		return true
	}
	return false
}

// parseValue разбирает одно значение. Если значения нет, возвращает
// missing-токен и ничего не потребляет.
func (p *Parser) parseValue() green.Node {
	tok := p.peek()
	switch tok.Kind() {
	case token.IntegerLiteralToken:
		if p.peekAt(1).Kind() == token.IntegerLiteralToken && p.peekAt(2).Kind() == token.RKeyword {
			return p.parseReference()
		}
		return p.literal()
	case token.RealLiteralToken,
		token.StringLiteralToken, token.HexStringLiteralToken, token.NameLiteralToken,
		token.TrueKeyword, token.FalseKeyword, token.NullKeyword:
		return p.literal()
	case token.PlusToken, token.MinusToken:
		return p.parseSigned()
	case token.OpenBracketToken:
		return p.parseArray()
	case token.LessThanLessThanToken:
		return p.parseDictionary()
	case token.OpenBraceToken:
		return p.parseProcedure()
	case token.BadToken:
		return p.unexpected(p.advance(), diag.SynExpectedValue)
	}
	return p.missingValue()
}

func (p *Parser) literal() green.Node {
	return p.f.Node(token.LiteralExpression, p.advance())
}

// parseReference: num gen R
func (p *Parser) parseReference() green.Node {
	num := p.objectNumber(p.advance(), 0, 1<<31-1)
	gen := p.objectNumber(p.advance(), 0, maxGeneration)
	r := p.advance()
	return p.f.Node(token.IndirectReference, num, gen, r)
}

func (p *Parser) parseSigned() green.Node {
	sign := p.advance()
	var number *green.Token
	if p.atAny(token.IntegerLiteralToken, token.RealLiteralToken) {
		number = p.advance()
	} else {
		number = p.f.Missing(token.IntegerLiteralToken,
			p.report(diag.SynExpectedValue, describe(p.peek()))...)
	}
	return p.f.Node(token.SignedNumberExpression, sign, number)
}

func (p *Parser) parseArray() green.Node {
	if p.tooDeep() {
		return p.unexpected(p.advance(), diag.SynUnexpectedToken)
	}
	open := p.advance()
	p.enter(token.CloseBracketToken)
	elems := p.parseElements(token.CloseBracketToken, false)
	p.leave()
	return p.f.Node(token.ArrayExpression, open, p.f.List(elems...), p.expect(token.CloseBracketToken))
}

// parseProcedure: { ... } из функций PostScript calculator; операторы
// (add, dup, ifelse, ...) допустимы как элементы.
func (p *Parser) parseProcedure() green.Node {
	if p.tooDeep() {
		return p.unexpected(p.advance(), diag.SynUnexpectedToken)
	}
	open := p.advance()
	p.enter(token.CloseBraceToken)
	elems := p.parseElements(token.CloseBraceToken, true)
	p.leave()
	return p.f.Node(token.ProcedureExpression, open, p.f.List(elems...), p.expect(token.CloseBraceToken))
}

func (p *Parser) parseElements(closer token.Kind, operators bool) []green.Node {
	var elems []green.Node
	for {
		tok := p.peek()
		k := tok.Kind()
		switch {
		case k == closer || p.terminates(k):
			return elems
		case operators && onlyInvalidKeyword(tok):
			elems = append(elems, p.f.Node(token.LiteralExpression, accept(p.advance())))
		case startsValue(k) || k == token.BadToken:
			elems = append(elems, p.parseValue())
		default:
			elems = append(elems, p.unexpected(p.advance(), diag.SynUnexpectedToken))
		}
	}
}

// parseDictionary: << (/Key value)* >>
func (p *Parser) parseDictionary() green.Node {
	if p.tooDeep() {
		return p.unexpected(p.advance(), diag.SynUnexpectedToken)
	}
	open := p.advance()
	p.enter(token.GreaterThanGreaterThanToken)
	var entries []green.Node
	for {
		k := p.peek().Kind()
		if k == token.GreaterThanGreaterThanToken || p.terminates(k) {
			break
		}
		if k != token.NameLiteralToken {
			entries = append(entries, p.unexpected(p.advance(), diag.SynExpectedName))
			continue
		}
		key := p.advance()
		var value green.Node
		if next := p.peek().Kind(); next == token.GreaterThanGreaterThanToken || p.terminates(next) {
			value = p.missingValue()
		} else {
			value = p.parseValue()
		}
		entries = append(entries, p.f.Node(token.DictionaryEntry, key, value))
	}
	p.leave()
	return p.f.Node(token.DictionaryExpression, open, p.f.List(entries...), p.expect(token.GreaterThanGreaterThanToken))
}
