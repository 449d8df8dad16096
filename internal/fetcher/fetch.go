package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds the playlist GET request.
const DefaultTimeout = 10 * time.Second

// Fetch retrieves the raw playlist text from rawURL.
// userAgent is optional; timeout <= 0 falls back to DefaultTimeout.
// The body must start with #EXTM3U (leading whitespace ignored) or
// ErrMalformedPlaylist is returned. Fetch has no side effects beyond
// the network call.
func Fetch(ctx context.Context, rawURL string, userAgent string, timeout time.Duration) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("NewRequest: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP %d", ErrNetwork, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	content := string(body)
	if !strings.HasPrefix(strings.TrimSpace(content), "#EXTM3U") {
		return "", ErrMalformedPlaylist
	}
	return content, nil
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
