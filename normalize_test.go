package corpreport

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "CRLF to LF",
			input:    "line1\r\nline2\r\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "bare CR to LF",
			input:    "line1\rline2",
			expected: "line1\nline2",
		},
		{
			name:     "heading hashes stripped",
			input:    "## Раздел 1\nтекст",
			expected: "Раздел 1\nтекст",
		},
		{
			name:     "indented heading hashes stripped",
			input:    "  ### Заголовок",
			expected: "Заголовок",
		},
		{
			name:     "bold markers removed keeping content",
			input:    "это **важный** момент",
			expected: "это важный момент",
		},
		{
			name:     "bold spanning lines",
			input:    "**раз\nдва**",
			expected: "раз\nдва",
		},
		{
			name:     "inline code markers removed",
			input:    "команда `go build` готова",
			expected: "команда go build готова",
		},
		{
			name:     "blank line runs compressed to one blank line",
			input:    "a\n\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "\n\n  текст  \n\n",
			expected: "текст",
		},
		{
			name:     "hash inside a line untouched",
			input:    "цена #1 на рынке",
			expected: "цена #1 на рынке",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize() = %q, want %q", got, tt.expected)
			}
		})
	}
}
