package lexer

import "fmt"

// ===== Классификаторы =====

// isWhitespace covers the PDF white-space bytes that are not end-of-line.
func isWhitespace(b byte) bool {
	return b == 0 || b == '\t' || b == '\f' || b == ' '
}

func isEOL(b byte) bool { return b == '\r' || b == '\n' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isOctal(b byte) bool { return b >= '0' && b <= '7' }

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// isDelimiter reports the PDF delimiter bytes.
func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// isRegular is true for bytes that may appear in a name.
func isRegular(b byte) bool {
	return !isWhitespace(b) && !isEOL(b) && !isDelimiter(b)
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// displayByte renders b for a diagnostic argument.
func displayByte(b byte) string {
	if b > 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02X", b)
}
