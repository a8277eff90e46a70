package msgs

import "pdfsyntax/internal/diag"

var russian = map[diag.Code]string{
	diag.LexUnexpectedCharacter:     "Неожиданный символ '%s'",
	diag.LexInvalidNumber:           "Некорректное число '%s'",
	diag.LexInvalidKeyword:          "Неизвестное ключевое слово '%s'",
	diag.LexUnbalancedStringLiteral: "Незакрытая строка: нет ')'",
	diag.LexMissingEndStream:        "Поток без 'endstream'",
	diag.SynExpectedToken:           "Ожидалось '%s'",
	diag.WarnNameTooLong:            "Имя длиной %d байт; предел 127",
	diag.WarnEmptyFile:              "Пустой файл",
}
