package token

// Kind identifies tokens, trivia, lists and syntax productions.
type Kind uint16

const (
	// None is the zero kind; no node ever carries it.
	None Kind = iota

	// BadToken marks input no scanner could match.
	BadToken
	// EndOfFileToken terminates every token stream.
	EndOfFileToken

	// IntegerLiteralToken is a number without a '.' that fits into int32.
	IntegerLiteralToken
	// RealLiteralToken is a number with a '.' or an integer too large for int32.
	RealLiteralToken
	// StringLiteralToken is a balanced-parenthesis string, e.g. (abc).
	StringLiteralToken
	// HexStringLiteralToken is a hexadecimal string, e.g. <901FA>.
	HexStringLiteralToken
	// NameLiteralToken is a name, e.g. /Type.
	NameLiteralToken
	// StreamDataToken holds the raw bytes between 'stream' and 'endstream'.
	StreamDataToken

	LessThanLessThanToken       // <<
	GreaterThanGreaterThanToken // >>
	OpenBracketToken            // [
	CloseBracketToken           // ]
	OpenBraceToken              // {
	CloseBraceToken             // }
	PlusToken                   // +
	MinusToken                  // -

	TrueKeyword      // true
	FalseKeyword     // false
	NullKeyword      // null
	ObjKeyword       // obj
	EndObjKeyword    // endobj
	RKeyword         // R
	StreamKeyword    // stream
	EndStreamKeyword // endstream
	XRefKeyword      // xref
	StartXRefKeyword // startxref
	TrailerKeyword   // trailer

	// WhitespaceTrivia is a run of NUL, TAB, FF and SPACE bytes.
	WhitespaceTrivia
	// EndOfLineTrivia is exactly one of "\r\n", "\r" or "\n".
	EndOfLineTrivia
	// CommentTrivia runs from '%' up to, not including, the end-of-line.
	CommentTrivia

	// List is the only variable-arity kind.
	List

	LiteralExpression
	SignedNumberExpression
	ArrayExpression
	DictionaryExpression
	DictionaryEntry
	ProcedureExpression
	IndirectReference
	IndirectObject
	StreamObject
	XRefSection
	TrailerSection
	StartXRefSection
	UnexpectedExpression
	Document

	kindCount
)

var kindNames = [...]string{
	None:                        "None",
	BadToken:                    "BadToken",
	EndOfFileToken:              "EndOfFileToken",
	IntegerLiteralToken:         "IntegerLiteralToken",
	RealLiteralToken:            "RealLiteralToken",
	StringLiteralToken:          "StringLiteralToken",
	HexStringLiteralToken:       "HexStringLiteralToken",
	NameLiteralToken:            "NameLiteralToken",
	StreamDataToken:             "StreamDataToken",
	LessThanLessThanToken:       "LessThanLessThanToken",
	GreaterThanGreaterThanToken: "GreaterThanGreaterThanToken",
	OpenBracketToken:            "OpenBracketToken",
	CloseBracketToken:           "CloseBracketToken",
	OpenBraceToken:              "OpenBraceToken",
	CloseBraceToken:             "CloseBraceToken",
	PlusToken:                   "PlusToken",
	MinusToken:                  "MinusToken",
	TrueKeyword:                 "TrueKeyword",
	FalseKeyword:                "FalseKeyword",
	NullKeyword:                 "NullKeyword",
	ObjKeyword:                  "ObjKeyword",
	EndObjKeyword:               "EndObjKeyword",
	RKeyword:                    "RKeyword",
	StreamKeyword:               "StreamKeyword",
	EndStreamKeyword:            "EndStreamKeyword",
	XRefKeyword:                 "XRefKeyword",
	StartXRefKeyword:            "StartXRefKeyword",
	TrailerKeyword:              "TrailerKeyword",
	WhitespaceTrivia:            "WhitespaceTrivia",
	EndOfLineTrivia:             "EndOfLineTrivia",
	CommentTrivia:               "CommentTrivia",
	List:                        "List",
	LiteralExpression:           "LiteralExpression",
	SignedNumberExpression:      "SignedNumberExpression",
	ArrayExpression:             "ArrayExpression",
	DictionaryExpression:        "DictionaryExpression",
	DictionaryEntry:             "DictionaryEntry",
	ProcedureExpression:         "ProcedureExpression",
	IndirectReference:           "IndirectReference",
	IndirectObject:              "IndirectObject",
	StreamObject:                "StreamObject",
	XRefSection:                 "XRefSection",
	TrailerSection:              "TrailerSection",
	StartXRefSection:            "StartXRefSection",
	UnexpectedExpression:        "UnexpectedExpression",
	Document:                    "Document",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsToken reports whether k is a token kind (including keywords).
func (k Kind) IsToken() bool {
	return k >= BadToken && k <= TrailerKeyword
}

// IsKeyword reports whether k is one of the fixed keywords.
func (k Kind) IsKeyword() bool {
	return k >= TrueKeyword && k <= TrailerKeyword
}

// IsPunctuation reports whether k is a delimiter or sign token.
func (k Kind) IsPunctuation() bool {
	return k >= LessThanLessThanToken && k <= MinusToken
}

// IsLiteral reports whether k carries a decoded Value.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntegerLiteralToken, RealLiteralToken, StringLiteralToken,
		HexStringLiteralToken, NameLiteralToken, StreamDataToken,
		TrueKeyword, FalseKeyword:
		return true
	default:
		return false
	}
}

// IsNumber reports whether k is an integer or real literal.
func (k Kind) IsNumber() bool {
	return k == IntegerLiteralToken || k == RealLiteralToken
}

// IsTrivia reports whether k is a trivia kind.
func (k Kind) IsTrivia() bool {
	return k >= WhitespaceTrivia && k <= CommentTrivia
}

// IsProduction reports whether k is a fixed-arity structural kind.
func (k Kind) IsProduction() bool {
	return k >= LiteralExpression && k < kindCount
}

// Text returns the fixed spelling of punctuation and keyword kinds, or "".
func (k Kind) Text() string {
	switch k {
	case LessThanLessThanToken:
		return "<<"
	case GreaterThanGreaterThanToken:
		return ">>"
	case OpenBracketToken:
		return "["
	case CloseBracketToken:
		return "]"
	case OpenBraceToken:
		return "{"
	case CloseBraceToken:
		return "}"
	case PlusToken:
		return "+"
	case MinusToken:
		return "-"
	case TrueKeyword:
		return "true"
	case FalseKeyword:
		return "false"
	case NullKeyword:
		return "null"
	case ObjKeyword:
		return "obj"
	case EndObjKeyword:
		return "endobj"
	case RKeyword:
		return "R"
	case StreamKeyword:
		return "stream"
	case EndStreamKeyword:
		return "endstream"
	case XRefKeyword:
		return "xref"
	case StartXRefKeyword:
		return "startxref"
	case TrailerKeyword:
		return "trailer"
	}
	return ""
}
