package corpreport

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 page dimensions in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.4
)

// pdfExporter renders a finished HTML report to PDF via headless Chrome.
// Rod downloads Chromium on first run if no browser is found.
type pdfExporter struct {
	browser *rod.Browser
	timeout time.Duration
}

func newPDFExporter(timeout time.Duration) *pdfExporter {
	return &pdfExporter{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (e *pdfExporter) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.browser = rod.New().ControlURL(u)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (e *pdfExporter) Close() error {
	if e.browser != nil {
		err := e.browser.Close()
		e.browser = nil
		return err
	}
	return nil
}

// Export writes the document to a temp file and prints it through Chrome.
// The file round-trip lets relative anchors and the embedded script behave
// exactly as in a saved report.
func (e *pdfExporter) Export(ctx context.Context, htmlDoc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.ensureBrowser(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "corpreport-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer os.RemoveAll(dir)

	filePath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(filePath, []byte(htmlDoc), 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	page, err := e.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// buildPDFOptions constructs print settings with a dated footer.
func buildPDFOptions(generatedAt time.Time) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(paperWidthInches),
		PaperHeight:         floatPtr(paperHeightInches),
		MarginTop:           floatPtr(marginInches),
		MarginBottom:        floatPtr(marginInches + 0.25),
		MarginLeft:          floatPtr(marginInches),
		MarginRight:         floatPtr(marginInches),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      "<span></span>",
		FooterTemplate:      buildFooterTemplate(generatedAt),
	}
}

// buildFooterTemplate generates Chrome's native footer with the generation
// date and page counter.
func buildFooterTemplate(generatedAt time.Time) string {
	date := html.EscapeString(generatedAt.Format(generatedAtLayout))
	return fmt.Sprintf(`<div style="font-size: 10px; color: #aaa; width: 100%%; text-align: right; padding: 0 0.5in;">%s - <span class="pageNumber"></span>/<span class="totalPages"></span></div>`, date)
}

func floatPtr(f float64) *float64 { return &f }
