package corpreport

import (
	"context"
	"fmt"
	"time"

	"github.com/ananyev/go-corpreport/internal/gigachat"
	"github.com/ananyev/go-corpreport/internal/pdftext"
)

// unknownCompany labels reports when no name could be detected.
const unknownCompany = "Неизвестная компания"

// newsUnavailable replaces the summary when every news source failed.
const newsUnavailable = "Не удалось получить новости."

// Service orchestrates the company-analysis pipeline: PDF text extraction,
// news retrieval and summarization, the chat request, and rendering.
type Service struct {
	cfg  serviceConfig
	chat ChatClient
	news NewsProvider
	pdf  PDFExtractor
	now  func() time.Time

	exporter *pdfExporter
}

// New creates a Service with default collaborators. A chat client must be
// provided via WithChatClient before Analyze is called.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:  serviceConfig{timeout: defaultTimeout},
		news: NewCompanyNews(),
		pdf:  pdftext.Extractor{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the full pipeline and returns the finished report.
// News retrieval fails soft: when every source errors out the prompt simply
// notes that no news was available. PDF extraction and the chat request are
// hard failures.
func (s *Service) Analyze(ctx context.Context, input Input) (*Report, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	input = input.withDefaults()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.timeout)
		defer cancel()
	}

	var pdfText string
	if input.PDFPath != "" {
		text, err := s.pdf.ExtractText(ctx, input.PDFPath)
		if err != nil {
			return nil, fmt.Errorf("extracting PDF text: %w", err)
		}
		pdfText = text
	}

	company := input.Company
	if company == "" {
		company = pdftext.DetectCompanyName(pdfText)
	}
	if company == "" {
		company = unknownCompany
	}

	digest, err := s.news.CompanyNews(ctx, company, NewsOptions{
		MaxArticles:      input.MaxArticles,
		FetchContent:     input.FetchContent,
		SummarySentences: input.SummarySentences,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		digest = NewsDigest{Summary: newsUnavailable}
	}

	prompt := gigachat.BuildAnalysisPrompt(pdfText, digest.Summary, digest.Corpus, digest.Links)
	plainText, err := s.chat.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("requesting analysis: %w", err)
	}

	generatedAt := s.now()
	return &Report{
		Company:     company,
		PlainText:   plainText,
		HTML:        RenderAt(plainText, generatedAt),
		Sources:     digest.Sources,
		GeneratedAt: generatedAt,
	}, nil
}

// ExportPDF renders a finished HTML report to PDF bytes through headless
// Chrome. The browser is launched lazily on first use.
func (s *Service) ExportPDF(ctx context.Context, htmlDoc string) ([]byte, error) {
	if s.exporter == nil {
		s.exporter = newPDFExporter(s.cfg.timeout)
	}
	return s.exporter.Export(ctx, htmlDoc)
}

// Close releases resources (the headless browser, when one was launched).
func (s *Service) Close() error {
	if s.exporter != nil {
		return s.exporter.Close()
	}
	return nil
}

// validateInput checks that required fields are present.
func (s *Service) validateInput(input Input) error {
	if input.Company == "" && input.PDFPath == "" {
		return ErrNoSubject
	}
	if s.chat == nil {
		return ErrNoChatClient
	}
	return nil
}

// withDefaults fills zero fields and clamps the article count.
func (i Input) withDefaults() Input {
	if i.MaxArticles == 0 {
		i.MaxArticles = DefaultMaxArticles
	}
	if i.MaxArticles < MinArticles {
		i.MaxArticles = MinArticles
	}
	if i.MaxArticles > MaxArticles {
		i.MaxArticles = MaxArticles
	}
	if i.SummarySentences <= 0 {
		i.SummarySentences = DefaultSummarySentences
	}
	return i
}
