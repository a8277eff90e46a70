package msgs

import "pdfsyntax/internal/diag"

type entry struct {
	code diag.Code
	sev  diag.Severity
	text string
}

var english = []entry{
	{diag.LexUnexpectedCharacter, diag.SevError, "Unexpected character '%s'"},
	{diag.LexInvalidNumber, diag.SevError, "Invalid number '%s'"},
	{diag.LexRealOverflow, diag.SevError, "Real number '%s' is out of range"},
	{diag.LexInvalidKeyword, diag.SevError, "Invalid keyword '%s'"},
	{diag.LexUnbalancedStringLiteral, diag.SevError, "Unbalanced string literal: missing ')'"},
	{diag.LexInvalidStringLiteral, diag.SevError, "Invalid string literal: dangling escape at end of input"},
	{diag.LexInvalidHexStringLiteral, diag.SevError, "Invalid character '%s' in hex string"},
	{diag.LexUnterminatedHexStringLiteral, diag.SevError, "Unterminated hex string: missing '>'"},
	{diag.LexInvalidNameEscape, diag.SevError, "Invalid escape sequence in name '%s'"},
	{diag.LexMissingEndStream, diag.SevError, "Stream is missing 'endstream'"},
	{diag.SynExpectedToken, diag.SevError, "Expected '%s'"},
	{diag.SynUnexpectedToken, diag.SevError, "Unexpected '%s'"},
	{diag.SynExpectedName, diag.SevError, "Expected a name, found '%s'"},
	{diag.SynExpectedValue, diag.SevError, "Expected a value, found '%s'"},
	{diag.SynInvalidObjectNumber, diag.SevError, "Invalid object number '%s'"},
	{diag.WarnNameTooLong, diag.SevWarning, "Name is %d bytes long; the limit is 127"},
	{diag.WarnEmptyFile, diag.SevWarning, "File is empty"},
	{diag.WarnNestedDiagnostic, diag.SevWarning, "%s"},
	{diag.IOLoadFileError, diag.SevError, "Cannot read file: %s"},
}
