package corpreport

import (
	"html"
	"strings"
)

// Heading levels are clamped to this range for navigation and styling.
const (
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

func clampLevel(level int) int {
	if level < minHeadingLevel {
		return minHeadingLevel
	}
	if level > maxHeadingLevel {
		return maxHeadingLevel
	}
	return level
}

// BuildNav derives the sidebar table of contents from the section sequence.
// Nesting depth follows each section's clamped level: wrappers open while the
// level exceeds the current depth and close while it is less, so every
// section gets exactly one link regardless of how the levels jump around.
func BuildNav(sections []Section) string {
	var b strings.Builder
	openLists := 0

	openUL := func() {
		b.WriteString("<ul class='toc'>")
		openLists++
	}
	closeUL := func() {
		if openLists > 0 {
			b.WriteString("</ul>")
			openLists--
		}
	}

	depth := minHeadingLevel
	opened := false
	for _, sec := range sections {
		lvl := clampLevel(sec.Level)
		if !opened {
			openUL()
			opened = true
		}
		for lvl > depth {
			openUL()
			depth++
		}
		for lvl < depth {
			closeUL()
			depth--
		}
		b.WriteString("<li><a href='#" + sec.ID + "' data-target='" + sec.ID + "'>" +
			html.EscapeString(sec.Title) + "</a></li>")
	}

	for openLists > 0 {
		closeUL()
	}
	return b.String()
}
