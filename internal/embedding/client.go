package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3

	// maxBodyBytes caps response reads; a batch of 2000-dim float vectors
	// stays well under this.
	maxBodyBytes = 32 << 20
)

// Config configures the embeddings client.
type Config struct {
	// BaseURL is the provider root, e.g. "https://api.siliconflow.cn/v1".
	// The client POSTs to BaseURL + "/embeddings".
	BaseURL string

	// APIKey is sent as a Bearer token.
	APIKey string

	// Model is the embedding model identifier.
	Model string

	// Dimension is the expected vector width. Responses with a different
	// width are rejected, never truncated or padded.
	Dimension int

	// Timeout bounds a single request. Default 30s.
	Timeout time.Duration

	// MaxRetries bounds retries on 429/5xx/network errors. Default 3.
	MaxRetries int

	// RequestsPerSecond paces outgoing requests. 0 disables pacing.
	RequestsPerSecond float64

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client

	// Logger for retry diagnostics. Nil uses slog.Default.
	Logger *slog.Logger
}

// Client is an OpenAI-compatible embeddings client.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	maxRetries int
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ Embedder = (*Client)(nil)

// NewClient creates an embeddings client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("embeddings base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}
	if cfg.Dimension < 1 {
		return nil, fmt.Errorf("vector dimension must be positive, got %d", cfg.Dimension)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimension:  cfg.Dimension,
		maxRetries: maxRetries,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

// Dimension returns the vector width this client expects.
func (c *Client) Dimension() int { return c.dimension }

// EmbedOne embeds a single text, typically a search query.
func (c *Client) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts and returns one vector per text, same order.
//
// An empty batch returns an empty result without calling the provider.
// Any provider failure fails the whole batch.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	normalized := make([]string, len(texts))
	for i, text := range texts {
		n := Normalize(text)
		if n == "" {
			return nil, fmt.Errorf("%w: text %d", ErrEmptyInput, i)
		}
		normalized[i] = n
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	payload, err := c.doWithRetry(ctx, normalized)
	if err != nil {
		return nil, err
	}

	return c.parseResponse(payload, len(texts))
}

// embedRequest is the OpenAI-compatible request body.
type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embedResponse is the OpenAI-compatible response body. Providers may
// return data out of order; Index restores positional alignment.
type embedResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (c *Client) doWithRetry(ctx context.Context, input []string) ([]byte, error) {
	body, err := json.Marshal(embedRequest{Model: c.model, Input: input})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + "/embeddings"

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, retryDelay(attempt, lastErr)); err != nil {
				return nil, err
			}
			c.logger.Debug("retrying embeddings request", "attempt", attempt, "error", lastErr)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Deadline and cancellation are not retryable.
			if ctx.Err() != nil {
				return nil, fmt.Errorf("embeddings request: %w", ctx.Err())
			}
			lastErr = err
			continue
		}

		payload, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = &statusError{status: resp.Status, retryAfter: resp.Header.Get("Retry-After")}
			continue
		case resp.StatusCode >= 300:
			return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
		case readErr != nil:
			lastErr = readErr
			continue
		}

		return payload, nil
	}

	return nil, fmt.Errorf("embeddings request failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) parseResponse(payload []byte, want int) ([][]float32, error) {
	var out embedResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decoding embeddings response: %w", err)
	}

	if len(out.Data) != want {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrNoEmbedding, len(out.Data), want)
	}

	vectors := make([][]float32, want)
	for _, d := range out.Data {
		if d.Index < 0 || d.Index >= want {
			return nil, fmt.Errorf("%w: index %d out of range", ErrNoEmbedding, d.Index)
		}
		if len(d.Embedding) != c.dimension {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(d.Embedding), c.dimension)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("%w: missing vector for text %d", ErrNoEmbedding, i)
		}
	}

	return vectors, nil
}

// statusError carries a retryable HTTP status plus its Retry-After hint.
type statusError struct {
	status     string
	retryAfter string
}

func (e *statusError) Error() string {
	return "embeddings request failed: " + e.status
}

// retryDelay computes the backoff before the given attempt, honoring a
// Retry-After header when the previous failure carried one.
func retryDelay(attempt int, lastErr error) time.Duration {
	if se, ok := lastErr.(*statusError); ok && se.retryAfter != "" {
		if secs, err := strconv.Atoi(se.retryAfter); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}

	// Exponential backoff capped at 5s.
	d := 200 * time.Millisecond << (attempt - 1)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
