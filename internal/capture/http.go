package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const UserAgent = "mytime-ics/1.0 (github.com/pfrederiksen/mytime-ics)"

// HTTPSource fetches the page with a plain GET. It only works for pages that
// are rendered server side, such as a saved schedule served from a local web
// server; the live myTime app needs BrowserSource.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource creates an HTTPSource. A zero timeout uses DefaultTimeoutSec.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
	return &HTTPSource{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// HTML fetches the page body.
func (h *HTTPSource) HTML(ctx context.Context) (string, error) {
	if h.url == "" {
		return "", fmt.Errorf("capture: URL is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(body), nil
}
