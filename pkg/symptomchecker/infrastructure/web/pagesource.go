package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

const (
	// ExtractorRaw keeps the body as is (markup included).
	ExtractorRaw = "raw"
	// ExtractorHTML keeps the title and the paragraphs of an HTML page.
	ExtractorHTML = "html"
)

const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxChars     = 2000
)

// ContentExtractor turns a fetched body into plain text.
type ContentExtractor func(body []byte) (string, error)

// NewContentExtractor returns the extractor by its name (see domain.ConfigKeyRetrievalExtractor).
func NewContentExtractor(name string) (ContentExtractor, error) {
	switch name {
	case "", ExtractorRaw:
		return ExtractRawContent, nil
	case ExtractorHTML:
		return ExtractHTMLContent, nil
	default:
		return nil, fmt.Errorf("unknown content extractor %q", name)
	}
}

func ExtractRawContent(body []byte) (string, error) {
	return string(body), nil
}

// ExtractHTMLContent returns the page's title followed by the text of all paragraphs.
func ExtractHTMLContent(body []byte) (string, error) {
	reader, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	pageContent := strings.TrimSpace(reader.Find("title").Text())
	found := reader.Find("p").Map(func(i int, selection *goquery.Selection) string {
		return strings.TrimSpace(selection.Text())
	})
	pageContent += " " + strings.Join(found, " ")
	return strings.TrimSpace(pageContent), nil
}

// PageFetcher fetches web pages as snippets. One fetcher serves many sources.
type PageFetcher struct {
	httpClient *http.Client
	extractor  ContentExtractor
	maxChars   int
}

func NewPageFetcher(timeout time.Duration, extractor ContentExtractor, maxChars int) *PageFetcher {
	if extractor == nil {
		extractor = ExtractRawContent
	}
	return &PageFetcher{
		httpClient: common.NewHTTPClient(timeout),
		extractor:  extractor,
		maxChars:   maxChars,
	}
}

// NewPageSource wraps a page URL into a snippet source (see domain.PageSourceFactory).
func (p *PageFetcher) NewPageSource(url string) domain.SnippetSource {
	return &pageSource{
		url:     url,
		fetcher: p,
	}
}

// FetchPage fetches the page and returns its first `maxChars` characters with newlines replaced by spaces.
// Only "200 OK" is accepted.
func (p *PageFetcher) FetchPage(ctx context.Context, url string) (domain.Snippet, error) {
	response, err := common.ReadAllFromURL(ctx, p.httpClient, url, 0)
	if err != nil {
		fetchErr := &domain.FetchError{Source: url, Err: err}
		var statusErr *common.HTTPStatusError
		if errors.As(err, &statusErr) {
			fetchErr.StatusCode = statusErr.StatusCode
		}
		return domain.Snippet{}, fetchErr
	}
	if response.StatusCode != http.StatusOK {
		return domain.Snippet{}, &domain.FetchError{
			Source:     url,
			StatusCode: response.StatusCode,
			Err:        errors.New("only 200 OK is accepted"),
		}
	}
	text, err := p.extractor(response.Body)
	if err != nil {
		return domain.Snippet{}, &domain.FetchError{Source: url, Err: err}
	}
	return domain.Snippet{
		Source: url,
		Text:   common.TruncateRunes(common.FlattenNewlines(text), p.maxChars),
	}, nil
}

type pageSource struct {
	url     string
	fetcher *PageFetcher
}

func (p *pageSource) Name() string {
	return p.url
}

// FetchSnippets a web page doesn't depend on the query.
func (p *pageSource) FetchSnippets(ctx context.Context, _ string) ([]domain.Snippet, error) {
	snippet, err := p.fetcher.FetchPage(ctx, p.url)
	if err != nil {
		return nil, err
	}
	return []domain.Snippet{snippet}, nil
}
