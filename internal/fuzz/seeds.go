package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// builtinSeeds cover every token class and production at least once.
var builtinSeeds = []string{
	"",
	"%PDF-1.7\n%\xe2\xe3\xcf\xd3\n",
	"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
	"3 0 obj\n<< /Length 11 >>\nstream\r\nBT /F1 12 Tf\nendstream\nendobj\n",
	"[1 -2 +3.5 .5 -.002 (a\\(b\\)c\\101) <48 65 6C6C 6F> /Name#20x true false null]",
	"<< /F { 2 copy add exch pop } /D [0 0 R] >>",
	"xref\n0 2\n0000000000 65535 f \n0000000015 00000 n \ntrailer\n<< /Size 2 >>\nstartxref\n60\n%%EOF\n",
	"(unterminated \\",
	"<4G>",
	"99999999999 1e5 ) > @",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.pdf файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".pdf" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxFuzzInput {
		src = src[:maxFuzzInput]
	}
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
