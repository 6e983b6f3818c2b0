package voice

import (
	"strings"
	"testing"
)

func TestCompletionSummary(t *testing.T) {
	if got := CompletionSummary(""); got != "Claude is done" {
		t.Errorf("Empty label: got %q", got)
	}
	if got := CompletionSummary("working"); got != "Claude is done" {
		t.Errorf("Placeholder label: got %q", got)
	}
	if got := CompletionSummary("edit"); got != "Finished Edit" {
		t.Errorf("got %q", got)
	}
}

func TestNotificationSummary(t *testing.T) {
	if got := NotificationSummary(""); got != "Claude needs your attention" {
		t.Errorf("Empty message: got %q", got)
	}
	if got := NotificationSummary("Permission required"); got != "Permission required" {
		t.Errorf("got %q", got)
	}
}

func TestSummariesAreShort(t *testing.T) {
	long := strings.Repeat("word ", 30)
	for _, s := range []string{
		CompletionSummary(long),
		NotificationSummary(long),
	} {
		if n := len(strings.Fields(s)); n > maxSummaryWords {
			t.Errorf("Summary has %d words: %q", n, s)
		}
	}
}
