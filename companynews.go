package corpreport

import (
	"context"
	"strings"

	"github.com/ananyev/go-corpreport/internal/news"
	"github.com/ananyev/go-corpreport/internal/summarize"
)

// CompanyNews is the default NewsProvider: RSS search feeds, optional
// article-body enrichment, and extractive summarization.
type CompanyNews struct {
	fetcher *news.Fetcher
}

// Compile-time interface implementation check.
var _ NewsProvider = (*CompanyNews)(nil)

// NewCompanyNews returns a provider using the default feed sources.
func NewCompanyNews() *CompanyNews {
	return &CompanyNews{fetcher: news.NewFetcher()}
}

// CompanyNews fetches, deduplicates and summarizes recent articles for the
// query. When the articles yield no usable sentences the summary falls back
// to the joined titles.
func (p *CompanyNews) CompanyNews(ctx context.Context, query string, opts NewsOptions) (NewsDigest, error) {
	items, err := p.fetcher.Search(ctx, query, opts.MaxArticles)
	if err != nil {
		return NewsDigest{}, err
	}
	if len(items) > opts.MaxArticles {
		items = items[:opts.MaxArticles]
	}

	if opts.FetchContent {
		p.fetcher.Enrich(ctx, items, news.EnrichOptions{})
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.BestText()
	}
	summary := summarize.Summarize(strings.Join(texts, "\n"), opts.SummarySentences)
	if summary == "" {
		summary = fallbackSummary(items, opts.SummarySentences)
	}

	sources := make([]Source, len(items))
	for i, item := range items {
		sources[i] = Source{Title: item.Title, Link: item.Link, Published: item.Published}
	}

	return NewsDigest{
		Summary: summary,
		Corpus:  news.Corpus(items),
		Links:   news.LinksList(items),
		Sources: sources,
	}, nil
}

// fallbackSummary joins the first few titles when sentence extraction found
// nothing long enough to score.
func fallbackSummary(items []news.Item, max int) string {
	var titles []string
	for _, item := range items {
		titles = append(titles, item.Title)
		if len(titles) >= max {
			break
		}
	}
	return strings.Join(titles, " ")
}
