package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ananyev/go-corpreport/internal/config"
)

func TestBuildInputs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.News.MaxArticles = 20
	cfg.News.SummarySentences = 4

	t.Run("companies become inputs", func(t *testing.T) {
		inputs := buildInputs([]string{"Ромашка", "Вектор"}, &analyzeFlags{pdfPath: "doc.pdf"}, cfg)
		if len(inputs) != 2 {
			t.Fatalf("got %d inputs", len(inputs))
		}
		if inputs[0].Company != "Ромашка" || inputs[0].PDFPath != "doc.pdf" {
			t.Errorf("first input = %+v", inputs[0])
		}
		// PDF applies to the first company only
		if inputs[1].PDFPath != "" {
			t.Errorf("second input has PDF: %+v", inputs[1])
		}
		if inputs[0].MaxArticles != 20 || inputs[0].SummarySentences != 4 {
			t.Errorf("config not merged: %+v", inputs[0])
		}
	})

	t.Run("pdf only", func(t *testing.T) {
		inputs := buildInputs(nil, &analyzeFlags{pdfPath: "doc.pdf"}, cfg)
		if len(inputs) != 1 || inputs[0].Company != "" || inputs[0].PDFPath != "doc.pdf" {
			t.Errorf("inputs = %+v", inputs)
		}
	})

	t.Run("nothing", func(t *testing.T) {
		if inputs := buildInputs(nil, &analyzeFlags{}, cfg); inputs != nil {
			t.Errorf("inputs = %+v, want nil", inputs)
		}
	})
}

func TestMergeFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	mergeFlags(&analyzeFlags{numArticles: 7, noFetchContent: true, summarySentences: 2}, cfg)

	if cfg.News.MaxArticles != 7 {
		t.Errorf("MaxArticles = %d", cfg.News.MaxArticles)
	}
	if cfg.News.FetchContent {
		t.Errorf("FetchContent not disabled")
	}
	if cfg.News.SummarySentences != 2 {
		t.Errorf("SummarySentences = %d", cfg.News.SummarySentences)
	}
}

func TestResolveTimeout(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"flag wins", "90s", time.Minute, 90 * time.Second, false},
		{"env fallback", "", 2 * time.Minute, 2 * time.Minute, false},
		{"nothing set", "", 0, 0, false},
		{"garbage", "ninety", 0, 0, true},
		{"negative", "-5s", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTimeout(tt.flag, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveTimeout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	if err := validateWorkers(0); err != nil {
		t.Errorf("validateWorkers(0) = %v", err)
	}
	if err := validateWorkers(4); err != nil {
		t.Errorf("validateWorkers(4) = %v", err)
	}
	if err := validateWorkers(-1); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("validateWorkers(-1) = %v", err)
	}
	if err := validateWorkers(100); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("validateWorkers(100) = %v", err)
	}
}

func TestResolveHTMLPath(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		name   string
		params outputParams
		want   string
	}{
		{
			name:   "single default",
			params: outputParams{single: true},
			want:   "report.html",
		},
		{
			name:   "single explicit file",
			params: outputParams{single: true, outputHTML: "custom.html"},
			want:   "custom.html",
		},
		{
			name:   "single directory target",
			params: outputParams{single: true, outputHTML: "out"},
			want:   filepath.Join("out", "report.html"),
		},
		{
			name:   "batch default uses slug",
			params: outputParams{},
			want:   "report-ромашка.html",
		},
		{
			name:   "batch directory uses slug",
			params: outputParams{outputHTML: "out"},
			want:   filepath.Join("out", "report-ромашка.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveHTMLPath("Ромашка", cfg, &tt.params)
			if got != tt.want {
				t.Errorf("resolveHTMLPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveTXTPath(t *testing.T) {
	cfg := config.DefaultConfig()

	single := &outputParams{single: true}
	if got := resolveTXTPath("report.html", cfg, single); got != "report_raw.txt" {
		t.Errorf("single default = %q", got)
	}

	explicit := &outputParams{single: true, outputTXT: "raw.txt"}
	if got := resolveTXTPath("report.html", cfg, explicit); got != "raw.txt" {
		t.Errorf("explicit = %q", got)
	}

	batch := &outputParams{}
	if got := resolveTXTPath("out/report-x.html", cfg, batch); got != "out/report-x.txt" {
		t.Errorf("batch = %q", got)
	}
}

func TestReplaceExt(t *testing.T) {
	if got := replaceExt("report.html", ".pdf"); got != "report.pdf" {
		t.Errorf("replaceExt() = %q", got)
	}
	if got := replaceExt("noext", ".pdf"); got != "noext.pdf" {
		t.Errorf("replaceExt() = %q", got)
	}
}
