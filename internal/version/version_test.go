package version

import (
	"runtime"
	"testing"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "v1.2.3", "abc123", "2024-05-01"

	want := "v1.2.3 (commit: abc123, date: 2024-05-01, " + runtime.Version() + ")"
	if got := String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
