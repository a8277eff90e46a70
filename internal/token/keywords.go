package token

// MaxKeywordLength bounds the keyword scanner: longer runs of letters can never
// be keywords and are not memoized.
const MaxKeywordLength = 10

// LookupKeyword возвращает тип ключевого слова и true, если text им является.
// Ключевые слова регистрозависимые.
func LookupKeyword(text string) (Kind, bool) {
	switch len(text) {
	case 1:
		if text == "R" {
			return RKeyword, true
		}
	case 3:
		if text == "obj" {
			return ObjKeyword, true
		}
	case 4:
		switch text {
		case "true":
			return TrueKeyword, true
		case "null":
			return NullKeyword, true
		case "xref":
			return XRefKeyword, true
		}
	case 5:
		if text == "false" {
			return FalseKeyword, true
		}
	case 6:
		switch text {
		case "endobj":
			return EndObjKeyword, true
		case "stream":
			return StreamKeyword, true
		}
	case 7:
		if text == "trailer" {
			return TrailerKeyword, true
		}
	case 9:
		switch text {
		case "endstream":
			return EndStreamKeyword, true
		case "startxref":
			return StartXRefKeyword, true
		}
	}
	return None, false
}
