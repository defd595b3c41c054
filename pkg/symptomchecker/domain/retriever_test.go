package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRetriever(sources map[string]*fakeSource, logger *fakeLogger) *Retriever {
	return NewRetriever(func(url string) SnippetSource {
		if source, ok := sources[url]; ok {
			return source
		}
		return failingSource(url)
	}, FirstWordFilter, logger)
}

func TestRetriever_FiltersByFirstWord(t *testing.T) {
	logger := &fakeLogger{}
	skin := textSource("https://a.example", "...skin conditions overview...")
	other := textSource("https://b.example", "opening hours")
	retriever := newTestRetriever(nil, logger)

	retrieval := retriever.Retrieve(context.Background(), "Skin rash on the arm", []SnippetSource{skin, other})

	require.Len(t, retrieval.Fetched, 2)
	require.Equal(t, []Snippet{{Source: "https://a.example", Text: "...skin conditions overview..."}}, retrieval.Snippets)
	require.Empty(t, retrieval.Failures)
}

func TestRetriever_NoMatchReturnsAllFetched(t *testing.T) {
	skin := textSource("https://a.example", "...skin conditions overview...")
	other := textSource("https://b.example", "opening hours")
	retriever := newTestRetriever(nil, &fakeLogger{})

	retrieval := retriever.Retrieve(context.Background(), "What condition might this be?", []SnippetSource{skin, other})

	require.Equal(t, retrieval.Fetched, retrieval.Snippets)
	require.Len(t, retrieval.Snippets, 2)
}

func TestRetriever_FailuresAreReportedNotFatal(t *testing.T) {
	logger := &fakeLogger{}
	ok := textSource("https://ok.example", "skin")
	broken := failingSource("https://broken.example")
	statusErr := &FetchError{Source: "https://gone.example", StatusCode: 404, Err: errors.New("not found")}
	gone := &fakeSource{name: "https://gone.example", err: statusErr}
	retriever := newTestRetriever(nil, logger)

	retrieval := retriever.Retrieve(context.Background(), "skin", []SnippetSource{broken, ok, gone})

	require.Len(t, retrieval.Snippets, 1)
	require.Len(t, retrieval.Failures, 2)
	require.Equal(t, []string{"https://broken.example", "https://gone.example"}, retrieval.FailedSources())
	require.Same(t, statusErr, retrieval.Failures[1], "an existing FetchError is kept as is")
	for _, failure := range retrieval.Failures {
		require.ErrorIs(t, failure, ErrFetchFailed)
	}
	require.NotEmpty(t, logger.messages)
}

func TestRetriever_ZeroReachableSources(t *testing.T) {
	retriever := newTestRetriever(nil, &fakeLogger{})

	retrieval := retriever.Retrieve(context.Background(), "What is it?", []SnippetSource{failingSource("a"), failingSource("b")})
	require.Empty(t, retrieval.Snippets)
	require.Empty(t, retrieval.Fetched)
	require.Len(t, retrieval.Failures, 2)

	retrieval = retriever.Retrieve(context.Background(), "What is it?", nil)
	require.Empty(t, retrieval.Snippets)
	require.Empty(t, retrieval.Failures)
}

func TestRetriever_RetrieveFromURLsUsesDefaults(t *testing.T) {
	sources := map[string]*fakeSource{}
	for _, url := range DefaultRetrievalSources {
		sources[url] = textSource(url, "conditions")
	}
	retriever := newTestRetriever(sources, &fakeLogger{})

	retrieval := retriever.RetrieveFromURLs(context.Background(), "conditions", nil)

	require.Len(t, retrieval.Snippets, len(DefaultRetrievalSources))
	for index, url := range DefaultRetrievalSources {
		require.Equal(t, url, retrieval.Snippets[index].Source, "sources are fetched in order")
		require.Equal(t, 1, sources[url].calls)
	}

	retrieval = retriever.RetrieveFromURLs(context.Background(), "conditions", []string{DefaultRetrievalSources[0]})
	require.Len(t, retrieval.Fetched, 1)
}

func TestRetriever_RetrieveFromURLsWithExtraSources(t *testing.T) {
	page := textSource("https://a.example", "opening hours")
	feed := textSource("https://feed.example/rss", "psoriasis flare-ups in winter")
	retriever := newTestRetriever(map[string]*fakeSource{"https://a.example": page}, &fakeLogger{})

	retrieval := retriever.RetrieveFromURLs(context.Background(), "Psoriasis in winter", []string{"https://a.example", "https://down.example"}, feed)

	require.Equal(t, []Snippet{page.snippets[0], feed.snippets[0]}, retrieval.Fetched)
	require.Equal(t, []Snippet{feed.snippets[0]}, retrieval.Snippets, "pages and extra sources are filtered together")
	require.Equal(t, []string{"https://down.example"}, retrieval.FailedSources())
}
