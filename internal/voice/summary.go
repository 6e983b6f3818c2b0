// Package voice composes and speaks the short summaries used in tts mode.
package voice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxSummaryWords caps how much gets spoken; nobody wants a paragraph
// read out after every turn.
const maxSummaryWords = 8

var titleCaser = cases.Title(language.English)

// CompletionSummary builds the spoken line for a finished turn.
func CompletionSummary(taskLabel string) string {
	if taskLabel == "" || strings.EqualFold(taskLabel, "working") {
		return "Claude is done"
	}
	return clampWords("Finished " + titleCaser.String(taskLabel))
}

// NotificationSummary builds the spoken line for a notification.
func NotificationSummary(message string) string {
	if message == "" {
		return "Claude needs your attention"
	}
	return clampWords(message)
}

func clampWords(s string) string {
	words := strings.Fields(s)
	if len(words) > maxSummaryWords {
		words = words[:maxSummaryWords]
	}
	return strings.Join(words, " ")
}
