package version

import "testing"

func TestVersionString(t *testing.T) {
	v := Version{Major: 2, Minor: 10, Patch: 3}
	if got := v.String(); got != "2.10.3" {
		t.Fatalf("got %q, want %q", got, "2.10.3")
	}
	if AppVersion.String() == "" {
		t.Fatal("empty application version")
	}
}
