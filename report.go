package corpreport

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// generatedAtLayout formats the sidebar timestamp as DD.MM.YYYY HH:MM.
const generatedAtLayout = "02.01.2006 15:04"

// documentShell is the fixed page template. Slots, in order: style, page
// title, generation timestamp, navigation markup, section markup, script.
const documentShell = `<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Аналитический отчёт</title>
  <style>
%s  </style>
</head>
<body>

  <div class="topbar">
    <button class="burger" id="openToc" aria-label="Открыть оглавление">☰</button>
    <div style="font-weight:600">%s</div>
  </div>

  <aside id="sidebar">
    <div class="brand">
      <div class="dot"></div>
      <h1>Навигация</h1>
    </div>
    <div class="meta">Сгенерировано: %s</div>
    %s
  </aside>

  <main>
    <div class="container">
      <div class="header">
        <h2 class="title">Аналитический отчёт</h2>
        <div class="subtitle">Автоматический разбор PDF и новостного поиска</div>
      </div>

      %s
    </div>
  </main>

  <button class="to-top" id="toTop" title="Наверх">▲</button>

  <script>
%s  </script>

</body>
</html>
`

// Render converts the model's plain-text reply into a complete, navigable
// HTML document. It is a pure function over the input text: total, free of
// I/O, and safe to call concurrently.
func Render(plainText string) string {
	return RenderAt(plainText, time.Now())
}

// RenderAt is Render with an injectable generation time for the sidebar
// timestamp.
func RenderAt(plainText string, generatedAt time.Time) string {
	sections := BuildSections(Normalize(plainText))
	return assemble(sections, generatedAt)
}

// assemble wraps navigation and section markup in the fixed page shell.
func assemble(sections []Section, generatedAt time.Time) string {
	var content strings.Builder
	for _, sec := range sections {
		fmt.Fprintf(&content, "<section id='%s' class='card level-%d'><h2>%s</h2>%s</section>",
			sec.ID, clampLevel(sec.Level), html.EscapeString(sec.Title), strings.Join(sec.Blocks, ""))
	}

	return fmt.Sprintf(documentShell,
		shellStyle,
		defaultSectionTitle,
		generatedAt.Format(generatedAtLayout),
		BuildNav(sections),
		content.String(),
		shellScript,
	)
}
