package corpreport

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "cyrillic title lowercased and hyphenated",
			input:    "Финансовые показатели",
			expected: "финансовые-показатели",
		},
		{
			name:     "latin mixed case",
			input:    "Quarterly Report 2024",
			expected: "quarterly-report-2024",
		},
		{
			name:     "numbered section keeps numeral",
			input:    "1.2 Выручка компании",
			expected: "1.2-выручка-компании",
		},
		{
			name:     "punctuation dropped",
			input:    "Риски: что дальше?",
			expected: "риски-что-дальше",
		},
		{
			name:     "accented latin folds to ascii",
			input:    "Résumé",
			expected: "resume",
		},
		{
			name:     "underscores preserved",
			input:    "raw_data dump",
			expected: "raw_data-dump",
		},
		{
			name:     "whitespace runs become single hyphen",
			input:    "a   b\t c",
			expected: "a-b-c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugifyFallback(t *testing.T) {
	// Titles that normalize to nothing get a random short id
	for _, input := range []string{"", "???", "—–—", "!!!"} {
		got := Slugify(input)
		if !strings.HasPrefix(got, "id-") {
			t.Errorf("Slugify(%q) = %q, want id- prefix", input, got)
		}
		if len(got) != len("id-")+8 {
			t.Errorf("Slugify(%q) = %q, want 8 hex chars after prefix", input, got)
		}
	}
}

func TestSlugifyStable(t *testing.T) {
	// Same title always maps to the same anchor
	a := Slugify("Общая информация")
	b := Slugify("Общая информация")
	if a != b {
		t.Errorf("Slugify not deterministic: %q vs %q", a, b)
	}
}
