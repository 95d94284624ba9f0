package main

import (
	"errors"
	"os"

	corpreport "github.com/ananyev/go-corpreport"
	"github.com/ananyev/go-corpreport/internal/config"
	"github.com/ananyev/go-corpreport/internal/gigachat"
)

// Exit codes for the corpreport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful analysis
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or credentials
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors during PDF export
	ExitUpstream = 5 // GigaChat API failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, corpreport.ErrBrowserConnect) ||
		errors.Is(err, corpreport.ErrPageCreate) ||
		errors.Is(err, corpreport.ErrPageLoad) ||
		errors.Is(err, corpreport.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Upstream API errors (exit 5)
	if errors.Is(err, gigachat.ErrTokenRequest) ||
		errors.Is(err, gigachat.ErrChatRequest) ||
		errors.Is(err, gigachat.ErrEmptyChoices) {
		return ExitUpstream
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadText) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteReport) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, gigachat.ErrMissingCredentials) ||
		errors.Is(err, corpreport.ErrNoSubject) ||
		errors.Is(err, corpreport.ErrNoChatClient) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
