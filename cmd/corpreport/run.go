package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	corpreport "github.com/ananyev/go-corpreport"
	"github.com/ananyev/go-corpreport/internal/config"
	"github.com/ananyev/go-corpreport/internal/gigachat"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no company or PDF specified")
	ErrReadText           = errors.New("failed to read analysis text")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteReport        = errors.New("failed to write report")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Analyzer is the interface for the analysis service.
type Analyzer interface {
	Analyze(ctx context.Context, input corpreport.Input) (*corpreport.Report, error)
	ExportPDF(ctx context.Context, htmlDoc string) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Analyzer = (*corpreport.Service)(nil)

// AnalysisResult holds the outcome of analyzing a single company.
type AnalysisResult struct {
	Company    string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// outputParams groups output settings shared across the batch.
type outputParams struct {
	outputHTML string // explicit path or directory ("" = config default)
	outputTXT  string
	exportPDF  bool
	extraCSS   string
	single     bool
}

// run executes the CLI after flag parsing.
func run(ctx context.Context, flags *analyzeFlags, companies []string, env *Environment) error {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfiguration(flags, envCfg)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)

	extraCSS, err := loadExtraCSS(cfg.Report.ExtraCSS)
	if err != nil {
		return err
	}

	// Render-only mode: take an existing analysis text and produce HTML.
	if flags.fromText != "" {
		return runRender(ctx, flags, cfg, extraCSS, env)
	}

	inputs := buildInputs(companies, flags, cfg)
	if len(inputs) == 0 {
		return ErrNoInput
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	chatClient, err := buildChatClient(cfg, envCfg)
	if err != nil {
		return err
	}

	factory := func() *corpreport.Service {
		opts := []corpreport.Option{
			corpreport.WithChatClient(chatClient),
			corpreport.WithClock(env.Now),
		}
		if timeout > 0 {
			opts = append(opts, corpreport.WithTimeout(timeout))
		}
		return corpreport.New(opts...)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := corpreport.ResolvePoolSize(workers)
	if poolSize > len(inputs) {
		poolSize = len(inputs)
	}
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := corpreport.NewServicePool(poolSize, factory)
	defer pool.Close()

	params := &outputParams{
		outputHTML: resolveOutputTarget(flags.output, envCfg.OutputDir),
		outputTXT:  flags.outputTXT,
		exportPDF:  flags.exportPDF,
		extraCSS:   extraCSS,
		single:     len(inputs) == 1,
	}

	results := analyzeBatch(ctx, pool, inputs, cfg, params)

	failedCount := printResults(results, flags.quiet, flags.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d analysis(es) failed", failedCount)
	}
	return nil
}

// runRender renders a report from a saved analysis text, skipping the whole
// retrieval pipeline. No credentials are required.
func runRender(ctx context.Context, flags *analyzeFlags, cfg *config.Config, extraCSS string, env *Environment) error {
	content, err := os.ReadFile(flags.fromText) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadText, err)
	}

	htmlDoc := corpreport.RenderAt(string(content), env.Now())
	if extraCSS != "" {
		htmlDoc = corpreport.InjectCSS(htmlDoc, extraCSS)
	}

	outPath := flags.output
	if outPath == "" {
		outPath = cfg.Report.OutputHTML
	}
	if err := writeFileInDir(outPath, []byte(htmlDoc)); err != nil {
		return err
	}
	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
	}

	if flags.exportPDF {
		svc := corpreport.New()
		defer svc.Close()

		pdfBytes, err := svc.ExportPDF(ctx, htmlDoc)
		if err != nil {
			return err
		}
		pdfPath := replaceExt(outPath, ".pdf")
		if err := writeFileInDir(pdfPath, pdfBytes); err != nil {
			return err
		}
		if !flags.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", pdfPath)
		}
	}
	return nil
}

// loadConfiguration loads the YAML config with CLI > env > discovery priority.
func loadConfiguration(flags *analyzeFlags, envCfg *envConfig) (*config.Config, error) {
	path := flags.config
	if path == "" {
		path = envCfg.ConfigPath
	}
	if path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	return config.Discover()
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *analyzeFlags, cfg *config.Config) {
	if flags.numArticles > 0 {
		cfg.News.MaxArticles = flags.numArticles
	}
	if flags.noFetchContent {
		cfg.News.FetchContent = false
	}
	if flags.summarySentences > 0 {
		cfg.News.SummarySentences = flags.summarySentences
	}
}

// buildChatClient constructs the GigaChat client. Environment credentials
// take priority over config file values.
func buildChatClient(cfg *config.Config, envCfg *envConfig) (*gigachat.Client, error) {
	gcfg := gigachat.Config{
		ClientID:     cfg.GigaChat.ClientID,
		ClientSecret: cfg.GigaChat.ClientSecret,
		Scope:        cfg.GigaChat.Scope,
		TokenURL:     cfg.GigaChat.TokenURL,
		ChatURL:      cfg.GigaChat.ChatURL,
		Model:        cfg.GigaChat.Model,
		Temperature:  cfg.GigaChat.Temperature,
		MaxTokens:    cfg.GigaChat.MaxTokens,
		InsecureTLS:  cfg.GigaChat.InsecureTLS,
	}
	if envCfg.ClientID != "" {
		gcfg.ClientID = envCfg.ClientID
	}
	if envCfg.ClientSecret != "" {
		gcfg.ClientSecret = envCfg.ClientSecret
	}
	if envCfg.Scope != "" {
		gcfg.Scope = envCfg.Scope
	}
	if envCfg.InsecureTLS {
		gcfg.InsecureTLS = true
	}
	return gigachat.New(gcfg)
}

// buildInputs maps positional company arguments onto analysis inputs.
// With no companies but a PDF path, the company name is detected from the
// document.
func buildInputs(companies []string, flags *analyzeFlags, cfg *config.Config) []corpreport.Input {
	base := corpreport.Input{
		MaxArticles:      cfg.News.MaxArticles,
		FetchContent:     cfg.News.FetchContent,
		SummarySentences: cfg.News.SummarySentences,
	}

	if len(companies) == 0 {
		if flags.pdfPath == "" {
			return nil
		}
		in := base
		in.PDFPath = flags.pdfPath
		return []corpreport.Input{in}
	}

	inputs := make([]corpreport.Input, len(companies))
	for i, company := range companies {
		in := base
		in.Company = company
		if i == 0 {
			// A PDF document applies to the first company only
			in.PDFPath = flags.pdfPath
		}
		inputs[i] = in
	}
	return inputs
}

// resolveTimeout parses the timeout flag, falling back to the env value.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("invalid timeout %q (use formats like 2m, 300s)", flagValue)
		}
		return d, nil
	}
	return envValue, nil
}

// resolveOutputTarget determines the output path or directory.
func resolveOutputTarget(flagOutput, envOutputDir string) string {
	if flagOutput != "" {
		return flagOutput
	}
	return envOutputDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > corpreport.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, corpreport.MaxPoolSize)
	}
	return nil
}

// loadExtraCSS reads the optional CSS file appended to every report.
func loadExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's config
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// analyzeBatch processes companies concurrently using the service pool.
func analyzeBatch(ctx context.Context, pool *corpreport.ServicePool, inputs []corpreport.Input, cfg *config.Config, params *outputParams) []AnalysisResult {
	if len(inputs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(inputs) {
		concurrency = len(inputs)
	}

	results := make([]AnalysisResult, len(inputs))
	var wg sync.WaitGroup
	jobs := make(chan int, len(inputs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = AnalysisResult{
						Company: inputs[idx].Company,
						Err:     ctx.Err(),
					}
					continue
				}
				results[idx] = analyzeOne(ctx, svc, inputs[idx], cfg, params)
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// analyzeOne runs one analysis and writes its outputs.
func analyzeOne(ctx context.Context, svc Analyzer, input corpreport.Input, cfg *config.Config, params *outputParams) AnalysisResult {
	start := time.Now()
	result := AnalysisResult{Company: input.Company}

	report, err := svc.Analyze(ctx, input)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Company = report.Company

	htmlDoc := report.HTML
	if params.extraCSS != "" {
		htmlDoc = corpreport.InjectCSS(htmlDoc, params.extraCSS)
	}

	htmlPath := resolveHTMLPath(report.Company, cfg, params)
	result.OutputPath = htmlPath

	if err := writeFileInDir(htmlPath, []byte(htmlDoc)); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	txtPath := resolveTXTPath(htmlPath, cfg, params)
	if err := writeFileInDir(txtPath, []byte(report.PlainText)); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if params.exportPDF {
		pdfBytes, err := svc.ExportPDF(ctx, htmlDoc)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
		if err := writeFileInDir(replaceExt(htmlPath, ".pdf"), pdfBytes); err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Duration = time.Since(start)
	return result
}

// resolveHTMLPath determines where the HTML report goes. Batch runs get
// per-company file names derived from the slugified company name.
func resolveHTMLPath(company string, cfg *config.Config, params *outputParams) string {
	target := params.outputHTML

	if params.single {
		if target == "" {
			return cfg.Report.OutputHTML
		}
		if strings.HasSuffix(target, ".html") || strings.HasSuffix(target, ".htm") {
			return target
		}
		return filepath.Join(target, cfg.Report.OutputHTML)
	}

	name := "report-" + corpreport.Slugify(company) + ".html"
	if target == "" {
		return name
	}
	return filepath.Join(target, name)
}

// resolveTXTPath determines where the raw analysis text goes.
func resolveTXTPath(htmlPath string, cfg *config.Config, params *outputParams) string {
	if params.single {
		if params.outputTXT != "" {
			return params.outputTXT
		}
		return filepath.Join(filepath.Dir(htmlPath), cfg.Report.OutputTXT)
	}
	return replaceExt(htmlPath, ".txt")
}

// replaceExt swaps the file extension.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// writeFileInDir writes a file, creating parent directories as needed.
func writeFileInDir(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteReport, err)
		}
	}
	// #nosec G306 -- reports are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteReport, err)
	}
	return nil
}

// printResults outputs analysis results using the environment writers.
func printResults(results []AnalysisResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			name := r.Company
			if name == "" {
				name = "(from PDF)"
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", name, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Company, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
