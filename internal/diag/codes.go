package diag

import (
	"fmt"
)

// DefaultCodePrefix is the category prefix external tooling matches against.
const DefaultCodePrefix = "PDF"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические ошибки
	LexUnexpectedCharacter          Code = 1
	LexInvalidNumber                Code = 2
	LexRealOverflow                 Code = 3
	LexInvalidKeyword               Code = 4
	LexUnbalancedStringLiteral      Code = 5
	LexInvalidStringLiteral         Code = 6
	LexInvalidHexStringLiteral      Code = 7
	LexUnterminatedHexStringLiteral Code = 8
	LexInvalidNameEscape            Code = 9
	LexMissingEndStream             Code = 10

	// Синтаксические ошибки
	SynExpectedToken       Code = 100
	SynUnexpectedToken     Code = 101
	SynExpectedName        Code = 102
	SynExpectedValue       Code = 103
	SynInvalidObjectNumber Code = 104

	// Предупреждения
	WarnNameTooLong Code = 1000
	WarnEmptyFile   Code = 1001
	// WarnNestedDiagnostic wraps another Info as its single argument.
	WarnNestedDiagnostic Code = 1002

	// Ошибки ввода-вывода и окружения
	IOLoadFileError Code = 2000
)

var codeNames = map[Code]string{
	UnknownCode:                     "ERR_Unknown",
	LexUnexpectedCharacter:          "ERR_UnexpectedCharacter",
	LexInvalidNumber:                "ERR_InvalidNumber",
	LexRealOverflow:                 "ERR_RealOverflow",
	LexInvalidKeyword:               "ERR_InvalidKeyword",
	LexUnbalancedStringLiteral:      "ERR_UnbalancedStringLiteral",
	LexInvalidStringLiteral:         "ERR_InvalidStringLiteral",
	LexInvalidHexStringLiteral:      "ERR_InvalidHexStringLiteral",
	LexUnterminatedHexStringLiteral: "ERR_UnterminatedHexStringLiteral",
	LexInvalidNameEscape:            "ERR_InvalidNameEscape",
	LexMissingEndStream:             "ERR_MissingEndStream",
	SynExpectedToken:                "ERR_ExpectedToken",
	SynUnexpectedToken:              "ERR_UnexpectedToken",
	SynExpectedName:                 "ERR_ExpectedName",
	SynExpectedValue:                "ERR_ExpectedValue",
	SynInvalidObjectNumber:          "ERR_InvalidObjectNumber",
	WarnNameTooLong:                 "WRN_NameTooLong",
	WarnEmptyFile:                   "WRN_EmptyFile",
	WarnNestedDiagnostic:            "WRN_NestedDiagnostic",
	IOLoadFileError:                 "ERR_LoadFile",
}

// Codes returns every known code in ascending order.
func Codes() []Code {
	return []Code{
		LexUnexpectedCharacter, LexInvalidNumber, LexRealOverflow, LexInvalidKeyword,
		LexUnbalancedStringLiteral, LexInvalidStringLiteral, LexInvalidHexStringLiteral,
		LexUnterminatedHexStringLiteral, LexInvalidNameEscape, LexMissingEndStream,
		SynExpectedToken, SynUnexpectedToken, SynExpectedName, SynExpectedValue,
		SynInvalidObjectNumber,
		WarnNameTooLong, WarnEmptyFile, WarnNestedDiagnostic,
		IOLoadFileError,
	}
}

// ID returns the stable identifier, e.g. PDF0004.
func (c Code) ID() string {
	return c.IDWithPrefix(DefaultCodePrefix)
}

// IDWithPrefix formats the code with a provider-specific 3-letter prefix.
func (c Code) IDWithPrefix(prefix string) string {
	return fmt.Sprintf("%s%04d", prefix, uint16(c))
}

// Name returns the symbolic name (ERR_*/WRN_*), or "" for unknown codes.
func (c Code) Name() string {
	return codeNames[c]
}

// IsWarning reports whether the code lives in the warning range.
func (c Code) IsWarning() bool {
	return c >= 1000 && c < 2000
}

func (c Code) String() string {
	if n := c.Name(); n != "" {
		return fmt.Sprintf("%s(%s)", c.ID(), n)
	}
	return c.ID()
}

// ParseCode accepts either an ID ("PDF0004") or a symbolic name
// ("ERR_InvalidKeyword").
func ParseCode(s string) (Code, error) {
	for c, name := range codeNames {
		if name == s && c != UnknownCode {
			return c, nil
		}
	}
	var n uint16
	if _, err := fmt.Sscanf(s, DefaultCodePrefix+"%04d", &n); err == nil {
		if _, ok := codeNames[Code(n)]; ok {
			return Code(n), nil
		}
	}
	return UnknownCode, fmt.Errorf("unknown diagnostic code %q", s)
}
