package pdftext

import "testing"

func TestDetectCompanyName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "ooo with quotes",
			input:    `Годовой отчёт ООО "Вектор Плюс" за 2024 год` + "\nпродолжение",
			expected: "Вектор Плюс",
		},
		{
			name:     "full legal form",
			input:    "Общество с ограниченной ответственностью Ромашка Групп\nотчёт",
			expected: "Ромашка Групп",
		},
		{
			name:     "pao marker",
			input:    "ПАО Сбербанк опубликовало отчётность",
			expected: "Сбербанк опубликовало отчётность",
		},
		{
			name:     "explicit full name field",
			input:    "Полное наименование организации:\nРомашка Трейдинг\nИНН 1234567890",
			expected: "Ромашка Трейдинг",
		},
		{
			name:     "fallback to first five words",
			input:    "Квартальный отчёт эмитента ценных бумаг за первый квартал",
			expected: "Квартальный отчёт эмитента ценных бумаг",
		},
		{
			name:     "short first line kept whole",
			input:    "Отчёт компании",
			expected: "Отчёт компании",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCompanyName(tt.input)
			if got != tt.expected {
				t.Errorf("DetectCompanyName() = %q, want %q", got, tt.expected)
			}
		})
	}
}
