// Package llm is a minimal client for the Gemini generateContent REST endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"learnhub/internal/observability"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/oauth2"
)

// ErrTimeout is returned when the upstream did not answer within the client timeout.
var ErrTimeout = errors.New("gemini request timed out")

// StatusError carries a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini error: status %d: %s", e.StatusCode, e.Body)
}

// Config controls a Gemini client.
type Config struct {
	APIKey      string
	Endpoint    string
	Timeout     time.Duration
	HTTPClient  *http.Client
	TokenSource oauth2.TokenSource
}

// Client calls a generateContent endpoint with a single user turn.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
	cred     oauth2.TokenSource
}

// New constructs a Gemini client from config.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("gemini endpoint is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		endpoint: endpoint,
		client:   client,
		cred:     cfg.TokenSource,
	}, nil
}

// StaticToken wraps a fixed bearer token, or returns nil when token is empty.
func StaticToken(token string) oauth2.TokenSource {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// GenerateText sends prompt as one user turn and returns the concatenated text
// of the first candidate's parts. A response without candidates yields "".
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, span := observability.StartClientSpan(ctx, "gemini.generateContent",
		attribute.Int("prompt.length", len(prompt)),
	)
	defer span.End()

	text, err := c.generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return text, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}
	if c.cred != nil {
		token, err := c.cred.Token()
		if err != nil {
			return "", fmt.Errorf("gemini token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if !gjson.ValidBytes(data) {
		return "", errors.New("gemini returned invalid JSON")
	}

	var reply strings.Builder
	for _, text := range gjson.GetBytes(data, "candidates.0.content.parts.#.text").Array() {
		reply.WriteString(text.String())
	}
	return reply.String(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
