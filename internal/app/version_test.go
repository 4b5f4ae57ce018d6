package app

import (
	"strings"
	"testing"
)

func TestBuildVersion(t *testing.T) {
	got := BuildVersion()

	for _, part := range []string{Version, Commit, BuildTime} {
		if !strings.Contains(got, part) {
			t.Errorf("BuildVersion missing %q: %q", part, got)
		}
	}
}
