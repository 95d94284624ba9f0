// Package corpreport builds navigable HTML reports about companies from
// open-source information: text extracted from a corporate PDF, recent news
// from RSS feeds, and an analysis produced by a remote LLM endpoint.
//
// The core of the package is the report renderer, a pure function that turns
// the loosely formatted plain text returned by the model into a complete,
// self-contained HTML document with a sidebar table of contents:
//
//	doc := corpreport.Render(plainText)
//
// The renderer accepts arbitrary text and never fails: markdown-like heading
// markers, numeric outline prefixes, pipe tables, lists, code fences and
// callout lines are recognized per line; anything else degrades to a plain
// paragraph.
//
// The Service type orchestrates the full pipeline (PDF text extraction, news
// retrieval and summarization, the chat request, and rendering) and can
// optionally export the finished report to PDF through headless Chrome.
package corpreport
