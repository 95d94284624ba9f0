package corpreport

import (
	"html"
	"regexp"
	"strings"
)

// Section is a titled, leveled grouping of rendered content blocks,
// analogous to a heading and its following body until the next heading.
type Section struct {
	Title  string   // heading text after marker stripping
	Level  int      // >= 1, from the dotted numeral or markdown heading depth
	ID     string   // anchor id derived from Title
	Blocks []string // rendered markup in source order, opaque once appended
}

// Line classification patterns, checked in priority order.
var (
	numericHeading  = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)[.)]\s+(.*\S)\s*$`)
	markdownHeading = regexp.MustCompile(`^\s*(#{1,6})\s+(.*\S)\s*$`)
	tableRow        = regexp.MustCompile(`^\s*\|(.+)\|\s*$`)
	tableSeparator  = regexp.MustCompile(`^\s*\|?\s*(:?-{3,}:?\s*\|)+\s*(?:[:\-]{3,})?\s*\|?\s*$`)
	unorderedItem   = regexp.MustCompile(`^\s*[-*]\s+(.*\S)\s*$`)
	orderedItem     = regexp.MustCompile(`^\s*\d+\.\s+(.*\S)\s*$`)
	calloutLabel    = regexp.MustCompile(`(?i)^\s*(Внимание|Важно|Примечание)\s*[:\-–]`)
)

// defaultSectionTitle names the implicit section that collects content
// appearing before the first heading line.
const defaultSectionTitle = "Аналитический отчёт"

// openBlock identifies which multi-line block, if any, is currently
// accumulating. At most one block is open at a time.
type openBlock int

const (
	openNone openBlock = iota
	openUnorderedList
	openOrderedList
	openTable
	openCode
)

// sectionBuilder is the single-pass state machine that classifies lines and
// groups them into sections. It never backtracks; a line is consumed by the
// first rule that matches it.
type sectionBuilder struct {
	sections []Section
	current  Section
	open     openBlock
	codeBuf  []string
	tableBuf []string
}

// BuildSections classifies normalized text into an ordered flat sequence of
// sections. Input is processed line by line; every line lands in exactly one
// section. Total over arbitrary text: malformed fragments either render as
// empty or fall through to a paragraph, never to an error.
func BuildSections(text string) []Section {
	b := &sectionBuilder{}
	b.current = newSection(defaultSectionTitle, 1)

	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}

	for _, line := range lines {
		b.processLine(line)
	}

	b.closeOpenBlocks()
	b.sections = append(b.sections, b.current)
	return b.sections
}

func newSection(title string, level int) Section {
	title = strings.TrimSpace(title)
	return Section{Title: title, Level: level, ID: Slugify(title)}
}

// startSection finalizes the current section and opens a new one.
func (b *sectionBuilder) startSection(title string, level int) {
	b.closeOpenBlocks()
	b.sections = append(b.sections, b.current)
	b.current = newSection(title, level)
}

// closeOpenBlocks flushes whatever block is accumulating into the current
// section: code first, then list wrappers, then the table buffer.
func (b *sectionBuilder) closeOpenBlocks() {
	switch b.open {
	case openCode:
		b.current.Blocks = append(b.current.Blocks, renderCode(b.codeBuf))
		b.codeBuf = nil
	case openUnorderedList:
		b.current.Blocks = append(b.current.Blocks, "</ul>")
	case openOrderedList:
		b.current.Blocks = append(b.current.Blocks, "</ol>")
	case openTable:
		if t := renderTable(b.tableBuf); t != "" {
			b.current.Blocks = append(b.current.Blocks, t)
		}
		b.tableBuf = nil
	}
	b.open = openNone
}

// closeList closes an open list wrapper without touching other block types.
func (b *sectionBuilder) closeList() {
	switch b.open {
	case openUnorderedList:
		b.current.Blocks = append(b.current.Blocks, "</ul>")
		b.open = openNone
	case openOrderedList:
		b.current.Blocks = append(b.current.Blocks, "</ol>")
		b.open = openNone
	}
}

// processLine dispatches one line through the classification rules.
func (b *sectionBuilder) processLine(line string) {
	// Rule 1: code fence toggle. While code is open every raw line is
	// buffered verbatim and no other rule fires.
	if strings.HasPrefix(strings.TrimSpace(line), "```") {
		if b.open == openCode {
			b.current.Blocks = append(b.current.Blocks, renderCode(b.codeBuf))
			b.codeBuf = nil
			b.open = openNone
		} else {
			b.closeOpenBlocks()
			b.open = openCode
		}
		return
	}
	if b.open == openCode {
		b.codeBuf = append(b.codeBuf, line)
		return
	}

	// Rules 2-3: headings start a new section. A bare "N. text" line is
	// ambiguous with an ordered list item; while a list is open it continues
	// the list instead of opening a section.
	listOpen := b.open == openUnorderedList || b.open == openOrderedList
	if m := numericHeading.FindStringSubmatch(line); m != nil && !(listOpen && orderedItem.MatchString(line)) {
		numeral, rest := m[1], m[2]
		level := strings.Count(numeral, ".") + 1
		b.startSection(numeral+" "+rest, level)
		return
	}
	if m := markdownHeading.FindStringSubmatch(line); m != nil {
		b.startSection(m[2], len(m[1]))
		return
	}

	// Rule 4: table rows accumulate; the first non-matching line flushes.
	if tableRow.MatchString(line) {
		if b.open != openTable {
			b.closeOpenBlocks()
			b.open = openTable
		}
		b.tableBuf = append(b.tableBuf, line)
		return
	}
	if b.open == openTable {
		if t := renderTable(b.tableBuf); t != "" {
			b.current.Blocks = append(b.current.Blocks, t)
		}
		b.tableBuf = nil
		b.open = openNone
		// A blank terminator is consumed silently; anything else falls
		// through to the remaining rules.
		if strings.TrimSpace(line) == "" {
			return
		}
	}

	// Rule 5: list items. Switching type closes the previous wrapper.
	if m := unorderedItem.FindStringSubmatch(line); m != nil {
		if b.open != openUnorderedList {
			b.closeOpenBlocks()
			b.current.Blocks = append(b.current.Blocks, "<ul>")
			b.open = openUnorderedList
		}
		b.current.Blocks = append(b.current.Blocks, "<li>"+html.EscapeString(m[1])+"</li>")
		return
	}
	if m := orderedItem.FindStringSubmatch(line); m != nil {
		if b.open != openOrderedList {
			b.closeOpenBlocks()
			b.current.Blocks = append(b.current.Blocks, "<ol>")
			b.open = openOrderedList
		}
		b.current.Blocks = append(b.current.Blocks, "<li>"+html.EscapeString(m[1])+"</li>")
		return
	}
	b.closeList()

	// Rule 6: callouts.
	if m := calloutLabel.FindStringSubmatch(line); m != nil {
		b.current.Blocks = append(b.current.Blocks, renderCallout(m[1], line))
		return
	}

	// Rules 7-8: blank lines become spacers, anything else a paragraph.
	if strings.TrimSpace(line) == "" {
		b.current.Blocks = append(b.current.Blocks, "<div class='spacer'></div>")
		return
	}
	b.current.Blocks = append(b.current.Blocks, "<p>"+html.EscapeString(strings.TrimSpace(line))+"</p>")
}

// renderCode emits buffered fence content as an escaped code block.
func renderCode(buf []string) string {
	return "<pre><code>" + html.EscapeString(strings.Join(buf, "\n")) + "</code></pre>"
}

// renderCallout emits a note block for a recognized label line. The body is
// whatever follows the first colon; a dash-separated callout keeps its label
// but has an empty body.
func renderCallout(label, line string) string {
	body := ""
	if _, after, ok := strings.Cut(line, ":"); ok {
		body = strings.TrimSpace(after)
	}
	return "<div class='callout'><strong>" + html.EscapeString(label) + ":</strong> " + html.EscapeString(body) + "</div>"
}

// renderTable converts buffered pipe rows into a table. A separator row in
// second position is dropped; the first remaining row becomes the header.
// A buffer yielding no valid rows renders as empty.
func renderTable(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	if len(rows) >= 2 && tableSeparator.MatchString(rows[1]) {
		rows = append(rows[:1:1], rows[2:]...)
	}

	var trs []string
	for i, raw := range rows {
		m := tableRow.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		var tr strings.Builder
		tr.WriteString("<tr>")
		for _, cell := range strings.Split(m[1], "|") {
			tr.WriteString("<" + tag + ">" + html.EscapeString(strings.TrimSpace(cell)) + "</" + tag + ">")
		}
		tr.WriteString("</tr>")
		trs = append(trs, tr.String())
	}
	if len(trs) == 0 {
		return ""
	}

	return "<div class='table-wrap'><table><thead>" + trs[0] + "</thead><tbody>" +
		strings.Join(trs[1:], "") + "</tbody></table></div>"
}
