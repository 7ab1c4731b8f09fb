package advisor

import (
	"context"
	"strings"
	"testing"
)

func TestPrompt(t *testing.T) {
	summary := "# Farm Summary on 2025-05-15\n\nTotal Cash: $400.00"

	t.Run("with question", func(t *testing.T) {
		got := Prompt(summary, "  can I afford a second cow?  ")
		if !strings.Contains(got, summary) {
			t.Errorf("Prompt() = %q, want it to carry the summary", got)
		}
		if !strings.HasSuffix(got, "can I afford a second cow?") {
			t.Errorf("Prompt() = %q, want it to end with the trimmed question", got)
		}
	})

	t.Run("default question", func(t *testing.T) {
		got := Prompt(summary, " ")
		if !strings.Contains(got, "what deserves my attention") {
			t.Errorf("Prompt() = %q, want the default review request", got)
		}
	})
}

func TestAdviseRequiresStart(t *testing.T) {
	a := New()
	if _, err := a.Advise(context.Background(), "books", ""); err == nil {
		t.Fatal("Advise() on an unstarted advisor, want error, got nil")
	}
}
