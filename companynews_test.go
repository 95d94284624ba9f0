package corpreport

// Notes:
// - The fetcher's Sources hook points at a local httptest server, so no
//   network access happens.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ananyev/go-corpreport/internal/news"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Лента</title>
<item>
  <title>Компания открыла новый завод в Казани</title>
  <link>https://example.com/a</link>
  <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
  <description>&lt;p&gt;Компания объявила о запуске производства автокомпонентов.&lt;/p&gt;</description>
</item>
<item>
  <title>Совет директоров утвердил дивиденды за прошлый год</title>
  <link>https://example.com/b</link>
  <pubDate>Sun, 01 Jun 2025 09:00:00 GMT</pubDate>
  <description>Выплаты составят десять рублей на акцию по итогам года.</description>
</item>
</channel></rss>`

func testProvider(t *testing.T, feed string) *CompanyNews {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feed))
	}))
	t.Cleanup(srv.Close)

	fetcher := news.NewFetcher()
	fetcher.Client = srv.Client()
	fetcher.Sources = func(string) []string { return []string{srv.URL} }

	return &CompanyNews{fetcher: fetcher}
}

func TestCompanyNewsDigest(t *testing.T) {
	provider := testProvider(t, testFeed)

	digest, err := provider.CompanyNews(context.Background(), "Ромашка", NewsOptions{
		MaxArticles:      10,
		SummarySentences: 3,
	})
	if err != nil {
		t.Fatalf("CompanyNews() error = %v", err)
	}

	if len(digest.Sources) != 2 {
		t.Fatalf("Sources = %d items, want 2", len(digest.Sources))
	}
	// Newest first
	if digest.Sources[0].Link != "https://example.com/a" {
		t.Errorf("first source = %q, want newest", digest.Sources[0].Link)
	}
	if digest.Summary == "" {
		t.Errorf("summary empty")
	}
	if !strings.Contains(digest.Corpus, "Компания открыла новый завод в Казани") {
		t.Errorf("corpus missing title")
	}
	if !strings.Contains(digest.Links, "1. ") || !strings.Contains(digest.Links, "https://example.com/a") {
		t.Errorf("links list malformed: %q", digest.Links)
	}
	// Feed HTML stripped from summaries
	if strings.Contains(digest.Corpus, "<p>") {
		t.Errorf("corpus contains raw markup: %q", digest.Corpus)
	}
}

func TestCompanyNewsTruncatesToMaxArticles(t *testing.T) {
	provider := testProvider(t, testFeed)

	digest, err := provider.CompanyNews(context.Background(), "X", NewsOptions{MaxArticles: 1})
	if err != nil {
		t.Fatalf("CompanyNews() error = %v", err)
	}
	if len(digest.Sources) != 1 {
		t.Errorf("Sources = %d items, want 1", len(digest.Sources))
	}
}

func TestCompanyNewsFallbackSummaryFromTitles(t *testing.T) {
	// Entries too short for sentence extraction fall back to joined titles
	shortFeed := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Лента</title>
<item><title>Краткая новость</title><link>https://example.com/s</link></item>
</channel></rss>`
	provider := testProvider(t, shortFeed)

	digest, err := provider.CompanyNews(context.Background(), "X", NewsOptions{MaxArticles: 5, SummarySentences: 3})
	if err != nil {
		t.Fatalf("CompanyNews() error = %v", err)
	}
	if digest.Summary != "Краткая новость" {
		t.Errorf("Summary = %q, want title fallback", digest.Summary)
	}
}
