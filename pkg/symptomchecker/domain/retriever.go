package domain

import (
	"context"
	"errors"
	"fmt"

	"kgeyst.com/symptomchecker/pkg/common"
)

// DefaultRetrievalSources trusted health-authority pages used when no sources are configured.
var DefaultRetrievalSources = []string{
	"https://www.who.int/news-room/fact-sheets",
	"https://www.nhs.uk/conditions",
	"https://www.cdc.gov/conditions",
}

// PageSourceFactory creates a snippet source for a page URL.
type PageSourceFactory func(url string) SnippetSource

// Retriever a naive retriever: fetches a few sources one after another and keeps the snippets which look related to
// the query. It's not a semantic search (no embeddings, no ranking).
type Retriever struct {
	pageSourceFactory PageSourceFactory
	filter            SnippetFilter
	logger            common.Logger
}

func NewRetriever(pageSourceFactory PageSourceFactory, filter SnippetFilter, logger common.Logger) *Retriever {
	if filter == nil {
		filter = FirstWordFilter
	}
	return &Retriever{
		pageSourceFactory: pageSourceFactory,
		filter:            filter,
		logger:            logger,
	}
}

// RetrieveFromURLs fetches the given pages (DefaultRetrievalSources if `urls` is empty), then `extraSources` (feeds,
// encyclopedias...). All snippets are filtered together.
func (r *Retriever) RetrieveFromURLs(ctx context.Context, query string, urls []string, extraSources ...SnippetSource) *Retrieval {
	if len(urls) == 0 {
		urls = DefaultRetrievalSources
	}
	return r.Retrieve(ctx, query, append(r.PageSources(urls), extraSources...))
}

// PageSources wraps URLs into snippet sources.
func (r *Retriever) PageSources(urls []string) []SnippetSource {
	sources := make([]SnippetSource, 0, len(urls))
	for _, url := range urls {
		sources = append(sources, r.pageSourceFactory(url))
	}
	return sources
}

// Retrieve fetches all sources sequentially. A failed source doesn't fail the whole retrieval: it's skipped and
// reported in Retrieval.Failures. Zero (reachable) sources result in an empty retrieval.
func (r *Retriever) Retrieve(ctx context.Context, query string, sources []SnippetSource) *Retrieval {
	result := &Retrieval{}
	for _, source := range sources {
		snippets, err := source.FetchSnippets(ctx, query)
		if err != nil {
			fetchErr := asFetchError(source.Name(), err)
			r.logger.Log(fetchErr.Error())
			result.Failures = append(result.Failures, fetchErr)
			continue
		}
		result.Fetched = append(result.Fetched, snippets...)
	}
	result.Snippets = r.filter(query, result.Fetched)
	if len(result.Failures) > 0 {
		r.logger.Log(fmt.Sprintf("retrieval: %d of %d sources failed: %v", len(result.Failures), len(sources), result.FailedSources()))
	}
	return result
}

func asFetchError(source string, err error) *FetchError {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr
	}
	return &FetchError{Source: source, Err: err}
}
