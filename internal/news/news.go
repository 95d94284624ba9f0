// Package news retrieves recent company news from public RSS feeds and
// enriches the entries with article body text for summarization.
package news

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Item is a single news entry. Content is filled by Enrich when the article
// body could be fetched; Published is the zero time when the feed carried no
// usable date.
type Item struct {
	Title     string
	Link      string
	Published time.Time
	Summary   string
	Content   string
}

// Defaults for feed and article fetching.
const (
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"

	feedTimeout            = 15 * time.Second
	maxFeedBody            = 8 << 20 // 8MB cap per response
	DefaultMaxPerSource    = 50
	DefaultEnrichWorkers   = 8
	DefaultEnrichTimeout   = 10 * time.Second
	DefaultMaxEnrichedDocs = 20
)

var ErrNoSources = errors.New("no feed sources configured")

// SourceURLs builds the feed URLs queried for a company. Overridable on the
// Fetcher for tests and for alternative feed providers.
func SourceURLs(query string) []string {
	q := url.QueryEscape(query)
	return []string{
		"https://news.google.com/rss/search?q=" + q + "&hl=ru&gl=RU&ceid=RU:ru",
		"https://www.bing.com/news/search?q=" + q + "&format=rss&cc=ru",
	}
}

// Fetcher downloads and parses RSS/Atom feeds.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Sources   func(query string) []string

	parser *gofeed.Parser
}

// NewFetcher returns a Fetcher with the default HTTP client and sources.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: feedTimeout},
		UserAgent: DefaultUserAgent,
		Sources:   SourceURLs,
		parser:    gofeed.NewParser(),
	}
}

// Search fetches every configured source for the query, takes up to
// maxPerSource items from each, deduplicates and sorts newest first.
// A source that fails to fetch or parse contributes nothing; Search only
// fails when no sources are configured.
func (f *Fetcher) Search(ctx context.Context, query string, maxPerSource int) ([]Item, error) {
	if f.Sources == nil {
		return nil, ErrNoSources
	}
	if maxPerSource <= 0 {
		maxPerSource = DefaultMaxPerSource
	}

	var items []Item
	for _, feedURL := range f.Sources(query) {
		fetched, err := f.fetchFeed(ctx, feedURL)
		if err != nil {
			continue
		}
		if len(fetched) > maxPerSource {
			fetched = fetched[:maxPerSource]
		}
		items = append(items, fetched...)
	}

	items = Dedupe(items)
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Published.After(items[b].Published)
	})
	return items, nil
}

// fetchFeed downloads one feed and converts its entries to Items. Entries
// with neither title nor summary are skipped; HTML markup in titles and
// summaries is stripped.
func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) ([]Item, error) {
	body, err := f.get(ctx, feedURL, feedTimeout)
	if err != nil {
		return nil, err
	}

	feed, err := f.parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		title := strings.TrimSpace(CleanHTML(entry.Title))
		summary := strings.TrimSpace(CleanHTML(entry.Description))
		if title == "" && summary == "" {
			continue
		}
		var published time.Time
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}
		items = append(items, Item{
			Title:     title,
			Link:      strings.TrimSpace(entry.Link),
			Published: published,
			Summary:   summary,
		})
	}
	return items, nil
}

// get downloads a URL with the fetcher's User-Agent and a size cap.
func (f *Fetcher) get(ctx context.Context, rawURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Dedupe removes entries sharing the same lowercased link (or title when the
// link is empty), keeping the first occurrence.
func Dedupe(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		key := item.Link
		if key == "" {
			key = item.Title
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// BestText returns the most informative text available for an item:
// fetched content, then the feed summary, then the bare title.
func (i Item) BestText() string {
	if i.Content != "" {
		return i.Content
	}
	if i.Summary != "" {
		return i.Summary
	}
	return i.Title
}
