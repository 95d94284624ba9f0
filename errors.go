package corpreport

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoSubject    = errors.New("either a company name or a PDF path must be provided")
	ErrNoChatClient = errors.New("no chat client configured")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
