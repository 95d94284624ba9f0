package corpreport

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripCombining decomposes text (NFKD) and removes combining marks, so that
// "é" slugifies to "e" while Cyrillic letters pass through unchanged.
var stripCombining = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Slugify derives a URL-fragment-safe anchor id from a section title.
// Unicode letters, digits and underscores are kept, whitespace becomes a
// hyphen, and the result is lowercased. A title that normalizes to nothing
// falls back to a random short identifier so the anchor is still usable.
//
// Ids are not deduplicated across sections: two sections with the same title
// share an anchor, matching the navigation contract.
func Slugify(title string) string {
	text, _, err := transform.String(stripCombining, title)
	if err != nil {
		text = title
	}

	var b strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '.':
			b.WriteRune(r)
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	slug = strings.Trim(slug, "-_.")
	slug = strings.ToLower(slug)

	if slug == "" {
		return "id-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	return slug
}
