package corpreport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// Mock implementations for testing.

type mockChat struct {
	called bool
	prompt string
	reply  string
	err    error
}

func (m *mockChat) Complete(ctx context.Context, prompt string) (string, error) {
	m.called = true
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	if m.reply != "" {
		return m.reply, nil
	}
	return "1. Обзор\nАнализ завершён.", nil
}

type mockNews struct {
	called bool
	query  string
	opts   NewsOptions
	digest NewsDigest
	err    error
}

func (m *mockNews) CompanyNews(ctx context.Context, query string, opts NewsOptions) (NewsDigest, error) {
	m.called = true
	m.query = query
	m.opts = opts
	if m.err != nil {
		return NewsDigest{}, m.err
	}
	return m.digest, nil
}

type mockPDF struct {
	called bool
	path   string
	text   string
	err    error
}

func (m *mockPDF) ExtractText(ctx context.Context, path string) (string, error) {
	m.called = true
	m.path = path
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 4, 2, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name    string
		svc     *Service
		input   Input
		wantErr error
	}{
		{
			name:    "no company and no pdf",
			svc:     New(WithChatClient(&mockChat{})),
			input:   Input{},
			wantErr: ErrNoSubject,
		},
		{
			name:    "no chat client",
			svc:     New(),
			input:   Input{Company: "Ромашка"},
			wantErr: ErrNoChatClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Analyze(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	chat := &mockChat{reply: "1. Итоги\nКомпания стабильна."}
	news := &mockNews{digest: NewsDigest{
		Summary: "Выручка растёт.",
		Corpus:  "Выручка растёт. Открыт новый филиал.",
		Links:   "1. Новость — https://example.com/1",
		Sources: []Source{{Title: "Новость", Link: "https://example.com/1"}},
	}}

	svc := New(
		WithChatClient(chat),
		WithNewsProvider(news),
		WithClock(fixedClock()),
	)

	report, err := svc.Analyze(context.Background(), Input{Company: "Ромашка"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if report.Company != "Ромашка" {
		t.Errorf("Company = %q", report.Company)
	}
	if report.PlainText != "1. Итоги\nКомпания стабильна." {
		t.Errorf("PlainText = %q", report.PlainText)
	}
	if !strings.Contains(report.HTML, "Компания стабильна.") {
		t.Errorf("HTML missing analysis text")
	}
	if !strings.Contains(report.HTML, "02.04.2025 10:30") {
		t.Errorf("HTML missing injected timestamp")
	}
	if len(report.Sources) != 1 || report.Sources[0].Link != "https://example.com/1" {
		t.Errorf("Sources = %v", report.Sources)
	}
	if !report.GeneratedAt.Equal(fixedClock()()) {
		t.Errorf("GeneratedAt = %v", report.GeneratedAt)
	}

	if news.query != "Ромашка" {
		t.Errorf("news queried with %q", news.query)
	}
	if !strings.Contains(chat.prompt, "Выручка растёт.") {
		t.Errorf("prompt missing news summary")
	}
	if !strings.Contains(chat.prompt, "https://example.com/1") {
		t.Errorf("prompt missing article links")
	}
}

func TestAnalyzeNewsFailureIsSoft(t *testing.T) {
	chat := &mockChat{}
	news := &mockNews{err: errors.New("all sources down")}

	svc := New(WithChatClient(chat), WithNewsProvider(news))

	report, err := svc.Analyze(context.Background(), Input{Company: "Ромашка"})
	if err != nil {
		t.Fatalf("Analyze() error = %v, want soft news failure", err)
	}
	if !chat.called {
		t.Fatalf("chat not called after news failure")
	}
	if !strings.Contains(chat.prompt, "Не удалось получить новости.") {
		t.Errorf("prompt missing unavailability note: %q", chat.prompt)
	}
	if len(report.Sources) != 0 {
		t.Errorf("Sources = %v, want empty", report.Sources)
	}
}

func TestAnalyzeChatFailureIsHard(t *testing.T) {
	wantErr := errors.New("model overloaded")
	svc := New(
		WithChatClient(&mockChat{err: wantErr}),
		WithNewsProvider(&mockNews{}),
	)

	_, err := svc.Analyze(context.Background(), Input{Company: "Ромашка"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Analyze() error = %v, want %v", err, wantErr)
	}
}

func TestAnalyzeDetectsCompanyFromPDF(t *testing.T) {
	chat := &mockChat{}
	news := &mockNews{}
	pdf := &mockPDF{text: `ООО "Вектор Плюс" годовой отчёт за 2024 год`}

	svc := New(
		WithChatClient(chat),
		WithNewsProvider(news),
		WithPDFExtractor(pdf),
	)

	report, err := svc.Analyze(context.Background(), Input{PDFPath: "report.pdf"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if pdf.path != "report.pdf" {
		t.Errorf("extractor called with %q", pdf.path)
	}
	if report.Company != "Вектор Плюс" {
		t.Errorf("Company = %q, want detected name", report.Company)
	}
	if news.query != "Вектор Плюс" {
		t.Errorf("news queried with %q", news.query)
	}
}

func TestAnalyzeUnknownCompanyFallback(t *testing.T) {
	svc := New(
		WithChatClient(&mockChat{}),
		WithNewsProvider(&mockNews{}),
		WithPDFExtractor(&mockPDF{text: ""}),
	)

	report, err := svc.Analyze(context.Background(), Input{PDFPath: "empty.pdf"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Company != "Неизвестная компания" {
		t.Errorf("Company = %q", report.Company)
	}
}

func TestAnalyzePDFFailureIsHard(t *testing.T) {
	wantErr := errors.New("corrupt file")
	svc := New(
		WithChatClient(&mockChat{}),
		WithNewsProvider(&mockNews{}),
		WithPDFExtractor(&mockPDF{err: wantErr}),
	)

	_, err := svc.Analyze(context.Background(), Input{Company: "X", PDFPath: "broken.pdf"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Analyze() error = %v, want %v", err, wantErr)
	}
}

func TestAnalyzeAppliesInputDefaults(t *testing.T) {
	tests := []struct {
		name         string
		input        Input
		wantArticles int
		wantSummary  int
	}{
		{"zero values get defaults", Input{Company: "X"}, 30, 6},
		{"below minimum clamped up", Input{Company: "X", MaxArticles: 1}, 5, 6},
		{"above maximum clamped down", Input{Company: "X", MaxArticles: 1000}, 100, 6},
		{"explicit values kept", Input{Company: "X", MaxArticles: 42, SummarySentences: 3}, 42, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			news := &mockNews{}
			svc := New(WithChatClient(&mockChat{}), WithNewsProvider(news))

			if _, err := svc.Analyze(context.Background(), tt.input); err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if news.opts.MaxArticles != tt.wantArticles {
				t.Errorf("MaxArticles = %d, want %d", news.opts.MaxArticles, tt.wantArticles)
			}
			if news.opts.SummarySentences != tt.wantSummary {
				t.Errorf("SummarySentences = %d, want %d", news.opts.SummarySentences, tt.wantSummary)
			}
		})
	}
}

func TestWithTimeoutPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

func TestAnalyzeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New(
		WithChatClient(&mockChat{}),
		WithNewsProvider(&mockNews{err: context.Canceled}),
	)

	_, err := svc.Analyze(ctx, Input{Company: "X"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}
