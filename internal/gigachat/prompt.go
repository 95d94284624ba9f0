package gigachat

import "strings"

// Prompt section limits keep the request under the model's context budget.
const (
	maxPromptPDFRunes  = 60000
	maxPromptNewsRunes = 20000
)

// BuildAnalysisPrompt assembles the combined corporate-analysis prompt from
// the PDF text, the news digest and the article link list. Sections that are
// empty are still labeled so the model knows the source was consulted.
func BuildAnalysisPrompt(pdfText, newsSummary, newsCorpus, articleLinks string) string {
	var b strings.Builder

	b.WriteString("Ты — эксперт по корпоративной разведке и визуальной аналитике.\n")
	b.WriteString("Тебе переданы два источника данных: (1) текст из корпоративного PDF-документа и (2) новости из поиска.\n")
	b.WriteString("Задачи:\n")
	b.WriteString("1) Подготовь детальный аналитический отчёт на русском, используя только подтверждённые данные из источников.\n")
	b.WriteString("2) Сформируй список предполагаемых бенефициаров (только физические лица) с обоснованием (на какие факты из PDF/новостей опираешься).\n")
	b.WriteString("3) Если встречаются визуальные структуры (цепочки владения, схемы), опиши их и вставь как текстовые блоки/таблицы.\n")
	b.WriteString("4) Структурируй ответ: нумерованные заголовки разделов, списки и таблицы; без домыслов.\n\n")
	b.WriteString("Рекомендуемые разделы: Общая информация; Руководство и участники; Структура собственности; ")
	b.WriteString("Связанные лица; Деятельность и контракты; Финансовые показатели; Судебные сведения; ")
	b.WriteString("Список бенефициаров; Приложение (источники).\n\n")

	b.WriteString("Источник A — PDF (сырой текст):\n")
	b.WriteString(truncateRunes(pdfText, maxPromptPDFRunes))
	b.WriteString("\n\n")

	if newsSummary != "" {
		b.WriteString("Сводка последних новостей:\n")
		b.WriteString(newsSummary)
		b.WriteString("\n\n")
	}

	b.WriteString("Источник B — Новости (выжимка из заголовков/аннотаций):\n")
	b.WriteString(truncateRunes(newsCorpus, maxPromptNewsRunes))
	b.WriteString("\n\n")

	b.WriteString("Ссылки на материалы (B):\n")
	if articleLinks == "" {
		articleLinks = "Источник новостей не дал результатов"
	}
	b.WriteString(articleLinks)
	b.WriteString("\n\nИспользуй информацию из новостей для проверки фактов, поиска новых связей и возможных бенефициаров.\n")

	return b.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
