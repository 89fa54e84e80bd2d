package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"plate-service/internal/config"
)

const (
	maxBodyBytes      = 10 << 20
	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

var ErrInvalidURL = errors.New("invalid plate list URL")

// PlateList is a downloaded plate list, not yet parsed.
type PlateList struct {
	Body        []byte
	ContentType string
}

// IsHTML reports whether the server labelled the list as an HTML page.
func (l *PlateList) IsHTML() bool {
	return strings.Contains(strings.ToLower(l.ContentType), "html")
}

type PlateListClient struct {
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

func NewPlateListClient(cfg *config.Config) *PlateListClient {
	return &PlateListClient{
		httpClient: &http.Client{
			Timeout: cfg.Plates.FetchTimeout,
		},
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
}

// Fetch downloads a plate list. Network errors are retried with a linear
// backoff; HTTP error statuses are not.
func (c *PlateListClient) Fetch(ctx context.Context, rawURL string) (*PlateList, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "text/tab-separated-values, text/plain, text/html;q=0.9, */*;q=0.5")

		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil {
			break
		}
		if attempt == c.maxRetries-1 || ctx.Err() != nil {
			return nil, fmt.Errorf("failed to execute request after %d attempts: %w", attempt+1, lastErr)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * c.backoff):
		}
	}
	if resp == nil {
		return nil, fmt.Errorf("failed to execute request: %w", lastErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("plate list source returned status %d: %s", resp.StatusCode, snippet(body))
	}

	return &PlateList{Body: body, ContentType: resp.Header.Get("Content-Type")}, nil
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
