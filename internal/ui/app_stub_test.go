//go:build !fyne

package ui

import (
	"strings"
	"testing"
)

func TestRunStub_ReturnsHelpfulError(t *testing.T) {
	err := Run("")
	if err == nil {
		t.Fatal("expected error from Run() in non-fyne build, got nil")
	}
	msg := err.Error()
	for _, want := range []string{"UI not built", "-tags fyne", "slidesmith"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message missing %q: %q", want, msg)
		}
	}
}
