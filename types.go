package corpreport

import (
	"context"
	"time"
)

// Input defaults applied by Analyze when a field is zero.
const (
	DefaultMaxArticles      = 30
	DefaultSummarySentences = 6

	// Article count bounds matching the news collaborators.
	MinArticles = 5
	MaxArticles = 100
)

// Input contains analysis parameters. At least one of Company or PDFPath
// must be set; when Company is empty it is detected from the PDF text.
type Input struct {
	Company          string // news search query
	PDFPath          string // corporate PDF document (optional)
	MaxArticles      int    // per-source news cap (default 30, clamped to [5,100])
	FetchContent     bool   // fetch full article bodies before summarizing
	SummarySentences int    // extractive summary size (default 6)
}

// Source identifies one news article referenced by the report.
type Source struct {
	Title     string
	Link      string
	Published time.Time // zero when the feed carried no date
}

// Report is the result of a full analysis.
type Report struct {
	Company     string    // resolved company name
	PlainText   string    // raw model reply
	HTML        string    // rendered document
	Sources     []Source  // news articles fed into the prompt
	GeneratedAt time.Time // timestamp shown in the report sidebar
}

// NewsDigest is what a news collaborator hands back for prompting.
type NewsDigest struct {
	Summary string   // extractive summary of the articles
	Corpus  string   // titles and annotations, newline-joined
	Links   string   // numbered title/link list
	Sources []Source // article metadata in ranking order
}

// NewsOptions tunes a news lookup.
type NewsOptions struct {
	MaxArticles      int
	FetchContent     bool
	SummarySentences int
}

// ChatClient produces the analysis text for a prompt.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PDFExtractor returns the concatenated page text of a PDF document.
type PDFExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// NewsProvider retrieves and summarizes recent news for a query.
type NewsProvider interface {
	CompanyNews(ctx context.Context, query string, opts NewsOptions) (NewsDigest, error)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// defaultTimeout bounds one full analysis when the caller's context has no
// deadline of its own.
const defaultTimeout = 5 * time.Minute

// WithTimeout sets the per-analysis timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("corpreport: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithChatClient sets the LLM collaborator. Required for Analyze.
func WithChatClient(c ChatClient) Option {
	return func(s *Service) { s.chat = c }
}

// WithNewsProvider replaces the default RSS-based news collaborator.
func WithNewsProvider(p NewsProvider) Option {
	return func(s *Service) { s.news = p }
}

// WithPDFExtractor replaces the default PDF text extractor.
func WithPDFExtractor(e PDFExtractor) Option {
	return func(s *Service) { s.pdf = e }
}

// WithClock injects a fixed time source for testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}
