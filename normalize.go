package corpreport

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Leading markdown heading hashes at line starts
	headingHashes = regexp.MustCompile(`(?m)^\s*#{1,6}\s*`)

	// Bold markers, may span line boundaries
	boldMarkers = regexp.MustCompile(`(?s)\*\*(.*?)\*\*`)

	// Single-backtick inline code markers
	inlineCodeMarkers = regexp.MustCompile("`([^`]+)`")

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Normalize strips the markdown decoration the model tends to emit before
// the text is classified into sections. Order matters: line endings first,
// then marker removal, then blank line compression.
//
// Total over arbitrary input; an empty string normalizes to an empty string.
func Normalize(raw string) string {
	text := crlfOrCR.ReplaceAllString(raw, "\n")
	text = headingHashes.ReplaceAllString(text, "")
	text = boldMarkers.ReplaceAllString(text, "$1")
	text = inlineCodeMarkers.ReplaceAllString(text, "$1")
	text = multipleBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
