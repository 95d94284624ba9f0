// Package gigachat implements a minimal client for the GigaChat API:
// OAuth token issuance and chat completions.
package gigachat

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Endpoint and model defaults.
const (
	DefaultTokenURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	DefaultChatURL  = "https://gigachat.devices.sberbank.ru/api/v1/chat/completions"
	DefaultScope    = "GIGACHAT_API_PERS"
	DefaultModel    = "GigaChat"

	DefaultTemperature = 0.2
	DefaultMaxTokens   = 2000

	tokenTimeout = 30 * time.Second
	chatTimeout  = 120 * time.Second

	// tokenExpirySlack refreshes the cached token slightly before the
	// server-reported expiry.
	tokenExpirySlack = 30 * time.Second
)

// Sentinel errors for client operations.
var (
	ErrMissingCredentials = errors.New("gigachat: client id and secret are required")
	ErrTokenRequest       = errors.New("gigachat: token request failed")
	ErrChatRequest        = errors.New("gigachat: chat request failed")
	ErrEmptyChoices       = errors.New("gigachat: response contained no choices")
)

// Config holds connection settings. Zero values fall back to the package
// defaults; only ClientID and ClientSecret are required.
type Config struct {
	ClientID     string
	ClientSecret string
	Scope        string
	TokenURL     string
	ChatURL      string
	Model        string
	Temperature  float64
	MaxTokens    int

	// InsecureTLS skips certificate verification. The upstream endpoints
	// are served with a private CA; enable this only when that CA cannot
	// be installed.
	InsecureTLS bool
}

func (c Config) withDefaults() Config {
	if c.Scope == "" {
		c.Scope = DefaultScope
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.ChatURL == "" {
		c.ChatURL = DefaultChatURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	return c
}

// Client issues tokens and chat completions. Safe for concurrent use; the
// access token is cached until shortly before its reported expiry.
type Client struct {
	cfg  Config
	http *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests, proxies).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client. Returns ErrMissingCredentials when the client id or
// secret is empty.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{cfg: cfg.withDefaults()}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		transport := http.DefaultTransport
		if c.cfg.InsecureTLS {
			t := http.DefaultTransport.(*http.Transport).Clone()
			t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 - opt-in for the private CA
			transport = t
		}
		c.http = &http.Client{Transport: transport}
	}
	return c, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // unix milliseconds
}

// Token returns a valid access token, requesting a new one when the cached
// token is missing or about to expire.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt.Add(-tokenExpirySlack)) {
		return c.accessToken, nil
	}

	ctx, cancel := context.WithTimeout(ctx, tokenTimeout)
	defer cancel()

	form := url.Values{"scope": {c.cfg.Scope}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientID + ":" + c.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("RqUID", uuid.NewString())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.doJSON(req, ErrTokenRequest, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token in response", ErrTokenRequest)
	}

	c.accessToken = tok.AccessToken
	if tok.ExpiresAt > 0 {
		c.expiresAt = time.UnixMilli(tok.ExpiresAt)
	} else {
		c.expiresAt = time.Now().Add(25 * time.Minute)
	}
	return c.accessToken, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a single-user-message chat completion and returns the
// model's reply text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChatRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ChatURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChatRequest, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var reply chatResponse
	if err := c.doJSON(req, ErrChatRequest, &reply); err != nil {
		return "", err
	}
	if len(reply.Choices) == 0 {
		return "", ErrEmptyChoices
	}
	return reply.Choices[0].Message.Content, nil
}

// doJSON executes the request and decodes a JSON body, mapping transport
// and status failures onto the given sentinel.
func (c *Client) doJSON(req *http.Request, sentinel error, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", sentinel, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", sentinel, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
