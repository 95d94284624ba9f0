// Package pdftext extracts plain text from PDF documents and guesses the
// company name mentioned in corporate filings.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrExtract = errors.New("pdftext: extraction failed")

// Extractor reads page text from PDF files.
type Extractor struct{}

// ExtractText returns the concatenated text of all pages, joined by
// newlines. Pages that fail to decode are skipped; the extraction only
// fails when the file itself cannot be opened.
func (Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrExtract, path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}
