package msgs_test

import (
	"testing"

	"golang.org/x/text/language"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/msgs"
)

func TestEveryCodeHasEnglishText(t *testing.T) {
	p := msgs.Default()
	for _, c := range diag.Codes() {
		if s, ok := p.Message(c, language.English); !ok || s == "" {
			t.Errorf("%s has no English text", c)
		}
	}
}

func TestSeverityTable(t *testing.T) {
	p := msgs.Default()
	if p.Severity(diag.LexInvalidKeyword) != diag.SevError {
		t.Errorf("ERR_InvalidKeyword must be an error")
	}
	if p.Severity(diag.WarnNameTooLong) != diag.SevWarning {
		t.Errorf("WRN_NameTooLong must be a warning")
	}
}

func TestFormatThroughInfo(t *testing.T) {
	p := msgs.Default()
	info := diag.NewInfo(p, diag.LexInvalidKeyword, "foo")
	if got := info.Format(language.English); got != "Invalid keyword 'foo'" {
		t.Fatalf("english = %q", got)
	}
	if got := info.Format(language.Russian); got != "Неизвестное ключевое слово 'foo'" {
		t.Fatalf("russian = %q", got)
	}
	if got := info.Format(language.Und); got != "Invalid keyword 'foo'" {
		t.Fatalf("undetermined language must fall back to English, got %q", got)
	}
}

func TestUntranslatedFallsBackToEnglish(t *testing.T) {
	p := msgs.Default()
	info := diag.NewInfo(p, diag.LexInvalidHexStringLiteral, "z")
	if got := info.Format(language.Russian); got != "Invalid character 'z' in hex string" {
		t.Fatalf("got %q", got)
	}
	if got := info.Format(language.Japanese); got != "Invalid character 'z' in hex string" {
		t.Fatalf("unsupported language: got %q", got)
	}
}

func TestNestedRendering(t *testing.T) {
	p := msgs.Default()
	inner := diag.NewInfo(p, diag.SynExpectedToken, "endobj")
	outer := diag.Nested(p, inner)
	if got := outer.Format(language.English); got != "Expected 'endobj'" {
		t.Fatalf("nested = %q", got)
	}
}

func TestUnknownCodeRendersEmpty(t *testing.T) {
	info := diag.NewInfo(msgs.Default(), diag.Code(777))
	if got := info.Message(); got != "" {
		t.Fatalf("unknown code rendered %q", got)
	}
	if info.Severity() != diag.SevError {
		t.Fatalf("unknown error-range code must default to error")
	}
}

func TestParseLanguage(t *testing.T) {
	tag, err := msgs.ParseLanguage("")
	if err != nil || tag != language.Und {
		t.Fatalf("empty: %v %v", tag, err)
	}
	if _, err := msgs.ParseLanguage("ru-RU"); err != nil {
		t.Fatalf("ru-RU: %v", err)
	}
}
