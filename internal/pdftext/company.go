package pdftext

import (
	"regexp"
	"strings"
)

// Patterns for company names in Russian corporate filings: a legal-form
// marker followed by the name, then an explicit "Полное наименование" field.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:обществ[оа] с ограниченной ответственностью|ооо|публичное акционерное общество|пао|закрытое акционерное общество|зао|акционерное общество|ао)\s+"?([A-Za-zА-Яа-я0-9 ][^\n"]{2,})"?`),
	regexp.MustCompile(`(?i)Полное\s+наименование[^\n]{0,50}[\n:]+\s*"?(.{3,120}?)"?\s*(?:\n|$)`),
}

// DetectCompanyName guesses the company a document describes. Falls back to
// the first five words of the first line; returns "" for empty input.
func DetectCompanyName(text string) string {
	for _, p := range companyPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	firstLine, _, _ := strings.Cut(text, "\n")
	words := strings.Fields(firstLine)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}
