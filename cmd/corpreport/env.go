package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment. A .env file in the working
// directory is loaded first so GIGACHAT_* credentials can live there.
func DefaultEnv() *Environment {
	_ = godotenv.Load() // missing .env is fine

	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// GigaChat credentials, same names the .env file uses
	ClientID     string // GIGACHAT_CLIENT_ID
	ClientSecret string // GIGACHAT_CLIENT_SECRET
	Scope        string // GIGACHAT_SCOPE
	InsecureTLS  bool   // GIGACHAT_INSECURE_TLS: accept the Sber CA without a trust store

	// Tool settings
	ConfigPath string        // CORPREPORT_CONFIG: config file path
	OutputDir  string        // CORPREPORT_OUTPUT_DIR: default output directory
	Timeout    time.Duration // CORPREPORT_TIMEOUT: per-company timeout
	Workers    int           // CORPREPORT_WORKERS: parallel analyses
}

// knownEnvVars lists valid CORPREPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CORPREPORT_CONFIG":     true,
	"CORPREPORT_OUTPUT_DIR": true,
	"CORPREPORT_TIMEOUT":    true,
	"CORPREPORT_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ClientID:     os.Getenv("GIGACHAT_CLIENT_ID"),
		ClientSecret: os.Getenv("GIGACHAT_CLIENT_SECRET"),
		Scope:        os.Getenv("GIGACHAT_SCOPE"),
		ConfigPath:   os.Getenv("CORPREPORT_CONFIG"),
		OutputDir:    os.Getenv("CORPREPORT_OUTPUT_DIR"),
	}

	if v := os.Getenv("GIGACHAT_INSECURE_TLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.InsecureTLS = b
		}
	}

	if timeout := os.Getenv("CORPREPORT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("CORPREPORT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CORPREPORT_* variables.
// Helps catch typos like CORPREPORT_WORKER instead of CORPREPORT_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CORPREPORT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}
