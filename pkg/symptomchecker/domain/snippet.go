package domain

import "context"

// Snippet a short, unranked excerpt of fetched text.
type Snippet struct {
	Source string
	Text   string
}

// SnippetSource a single retrieval source: a web page, a feed, an encyclopedia...
type SnippetSource interface {
	// Name identifies the source in reports (usually the URL).
	Name() string
	// FetchSnippets some sources (a web page) ignore the query, others (a search) rely on it.
	FetchSnippets(ctx context.Context, query string) ([]Snippet, error)
}

// Retrieval the outcome of Retriever.Retrieve.
type Retrieval struct {
	// Fetched all snippets which were successfully fetched, in source order.
	Fetched []Snippet
	// Snippets the filtered snippets (a subset of Fetched, or Fetched itself if nothing matched).
	Snippets []Snippet
	// Failures one entry per source which failed.
	Failures []*FetchError
}

// FailedSources the names of the sources which failed.
func (r *Retrieval) FailedSources() []string {
	result := make([]string, 0, len(r.Failures))
	for _, failure := range r.Failures {
		result = append(result, failure.Source)
	}
	return result
}
