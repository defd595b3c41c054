package rss

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

const DefaultMaxItemCount = 10

// FeedSource turns the items of an RSS/Atom feed (for example, a health authority's news feed) into snippets.
type FeedSource struct {
	url          string
	httpClient   *http.Client
	maxItemCount int
	maxChars     int
}

func NewFeedSource(url string, timeout time.Duration, maxItemCount, maxChars int) *FeedSource {
	if maxItemCount <= 0 {
		maxItemCount = DefaultMaxItemCount
	}
	return &FeedSource{
		url:          url,
		httpClient:   common.NewHTTPClient(timeout),
		maxItemCount: maxItemCount,
		maxChars:     maxChars,
	}
}

func (f *FeedSource) Name() string {
	return f.url
}

// FetchSnippets the query is ignored: the filter decides what's relevant.
func (f *FeedSource) FetchSnippets(ctx context.Context, _ string) ([]domain.Snippet, error) {
	response, err := common.ReadAllFromURL(ctx, f.httpClient, f.url, 0)
	if err != nil {
		fetchErr := &domain.FetchError{Source: f.url, Err: err}
		var statusErr *common.HTTPStatusError
		if errors.As(err, &statusErr) {
			fetchErr.StatusCode = statusErr.StatusCode
		}
		return nil, fetchErr
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(response.Body))
	if err != nil {
		return nil, &domain.FetchError{Source: f.url, Err: err}
	}
	result := make([]domain.Snippet, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(result) == f.maxItemCount {
			break
		}
		text := strings.TrimSpace(strings.TrimSpace(item.Title) + ". " + strings.TrimSpace(item.Description))
		if text == "." {
			continue
		}
		source := item.Link
		if source == "" {
			source = f.url
		}
		result = append(result, domain.Snippet{
			Source: source,
			Text:   common.TruncateRunes(common.FlattenNewlines(text), f.maxChars),
		})
	}
	return result, nil
}
