package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxElapsed      = 30 * time.Second
)

// HTTP downloads dataset files from <baseURL>/<name>.
type HTTP struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger

	initialInterval time.Duration
	maxElapsed      time.Duration
}

// HTTPOption customizes an HTTP source.
type HTTPOption func(*HTTP)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) { h.httpClient.Timeout = d }
}

// WithRetry sets the first backoff interval and the total time spent
// retrying one file. maxElapsed of zero retries until the context ends.
func WithRetry(initial, maxElapsed time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.initialInterval = initial
		h.maxElapsed = maxElapsed
	}
}

// NewHTTP creates an HTTP source.
func NewHTTP(baseURL string, logger *slog.Logger, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      &http.Client{Timeout: defaultTimeout},
		log:             logger.With("adapter", "http_source"),
		initialInterval: defaultInitialInterval,
		maxElapsed:      defaultMaxElapsed,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch downloads one file. Network errors and 5xx responses are retried
// with exponential backoff; any other non-200 status fails immediately.
func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	reqURL := h.baseURL + "/" + escapePath(name)

	h.log.DebugContext(ctx, "source request", slog.String("url", reqURL))

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}

		resp, err := h.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%s: %w", name, domain.ErrNotFound))
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = h.initialInterval
	b.MaxElapsedTime = h.maxElapsed

	notify := func(err error, wait time.Duration) {
		h.log.WarnContext(ctx, "source retry",
			slog.String("url", reqURL),
			slog.String("reason", err.Error()),
			slog.Duration("wait", wait),
		)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("http source: fetch %s: %w", name, err)
	}

	h.log.DebugContext(ctx, "source response", slog.String("url", reqURL), slog.Int("bytes", len(body)))
	return body, nil
}

func escapePath(name string) string {
	parts := strings.Split(strings.TrimLeft(name, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
