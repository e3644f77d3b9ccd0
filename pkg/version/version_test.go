package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit = "1.2.3", "abc123"
	t.Cleanup(func() { Version, Commit = "dev", "unknown" })

	got := String()
	if !strings.HasPrefix(got, "ranobe-bot 1.2.3 (commit: abc123") {
		t.Errorf("String() = %q", got)
	}
}
