package news

import (
	"fmt"
	"strings"
)

// Corpus joins titles and cleaned summaries into the text block handed to
// the summarizer and the prompt.
func Corpus(items []Item) string {
	var parts []string
	for _, item := range items {
		parts = append(parts, item.Title)
		if item.Summary != "" {
			parts = append(parts, item.Summary)
		}
	}
	return strings.Join(parts, "\n")
}

// FormatSources renders up to maxSources entries as a plain-text list with
// title, publication time and link, for console output and the report
// appendix.
func FormatSources(items []Item, maxSources int) string {
	if maxSources > 0 && len(items) > maxSources {
		items = items[:maxSources]
	}
	var lines []string
	for _, item := range items {
		published := ""
		if !item.Published.IsZero() {
			published = item.Published.Format("2006-01-02 15:04:05")
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)\n  %s", item.Title, published, item.Link))
	}
	return strings.Join(lines, "\n")
}

// LinksList renders entries as a numbered "title — link" list for the
// prompt, mirroring the report's source appendix.
func LinksList(items []Item) string {
	var lines []string
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s — %s", i+1, item.Title, item.Link))
	}
	return strings.Join(lines, "\n")
}
