package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored_KeepsSuffix(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	if got := Colored(); got != Version {
		t.Fatalf("Colored() = %q, want %q without colour", got, Version)
	}
}

func TestColored_UnusualVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Fatalf("Colored() = %q", got)
	}
}

func TestBanner_OptionalFields(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if b := Banner(); strings.Contains(b, "commit:") || strings.Contains(b, "built:") {
		t.Fatalf("empty fields must be omitted:\n%s", b)
	}

	GitCommit, BuildDate = "abc123def456", "2024-01-15T10:30:00Z"
	b := Banner()
	if !strings.Contains(b, "commit: abc123def456") || !strings.Contains(b, "built:  2024-01-15T10:30:00Z") {
		t.Fatalf("banner:\n%s", b)
	}
}
