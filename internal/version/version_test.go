package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestPlainAndLong(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if Version() != Plain() {
		t.Fatalf("without color Version() = %q, Plain() = %q", Version(), Plain())
	}
	GitCommit = "abc123"
	defer func() { GitCommit = "" }()
	if long := Long(); !strings.HasPrefix(long, "zigscope "+Plain()+" (abc123)") {
		t.Fatalf("Long() = %q", long)
	}
}
