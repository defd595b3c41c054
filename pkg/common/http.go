package common

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxResponseSize protects us against dynamic pages which infinitely stream output.
const DefaultMaxResponseSize = 32 << 20

// HTTPStatusError captures non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Response is what's left of an HTTP response after the body was read.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// NewHTTPClient returns a client with the given timeout. A zero timeout means no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// ReadAllFromURL reads all content from the URL (up to `maxSize` bytes). Non-2xx responses are returned as
// *HTTPStatusError.
func ReadAllFromURL(ctx context.Context, client *http.Client, url string, maxSize int64) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxResponseSize
	}
	content, err := io.ReadAll(io.LimitReader(res.Body, maxSize))
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        content,
	}, nil
}
