package wiki

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gowiki "github.com/trietmn/go-wiki"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

const (
	sourceName         = "wikipedia"
	articleURLTemplate = "https://en.wikipedia.org/wiki/%s"
	summarySentences   = 5
)

// ArticleProvider searches and summarizes Wikipedia articles.
type ArticleProvider interface {
	Search(searchString string, maxArticleCount int) ([]string, error)
	GetSummary(articleName string, maxArticleSentenceCount int) (string, error)
}

// ArticleSource searches Wikipedia for the query and returns article summaries as snippets.
type ArticleSource struct {
	articleProvider ArticleProvider
	maxArticleCount int
	maxChars        int
}

func NewArticleSource(articleProvider ArticleProvider, maxArticleCount, maxChars int) *ArticleSource {
	return &ArticleSource{
		articleProvider: articleProvider,
		maxArticleCount: maxArticleCount,
		maxChars:        maxChars,
	}
}

func (a *ArticleSource) Name() string {
	return sourceName
}

// FetchSnippets go-wiki has no context support, so cancellation is only checked between articles.
func (a *ArticleSource) FetchSnippets(ctx context.Context, query string) ([]domain.Snippet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	articleNames, err := a.articleProvider.Search(query, a.maxArticleCount)
	if err != nil {
		return nil, &domain.FetchError{Source: sourceName, Err: err}
	}
	var result []domain.Snippet
	for _, articleName := range articleNames {
		if err := ctx.Err(); err != nil {
			return nil, &domain.FetchError{Source: sourceName, Err: err}
		}
		summary, err := a.articleProvider.GetSummary(articleName, summarySentences)
		if err != nil {
			continue // a single broken article shouldn't hide the rest
		}
		summary = strings.TrimSpace(summary)
		if summary == "" {
			continue
		}
		result = append(result, domain.Snippet{
			Source: fmt.Sprintf(articleURLTemplate, strings.ReplaceAll(articleName, " ", "_")),
			Text:   common.TruncateRunes(common.FlattenNewlines(summary), a.maxChars),
		})
	}
	return result, nil
}

// memo remembers lookups by key. Wikipedia is rate-limited, and the same query tends to come back.
type memo[V any] struct {
	mutex  sync.Mutex
	values map[string]V
}

func newMemo[V any]() *memo[V] {
	return &memo[V]{values: make(map[string]V)}
}

// getOrLoad failed loads are not remembered.
func (m *memo[V]) getOrLoad(key string, load func() (V, error)) (V, error) {
	m.mutex.Lock()
	value, ok := m.values[key]
	m.mutex.Unlock()
	if ok {
		return value, nil
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	m.mutex.Lock()
	m.values[key] = value
	m.mutex.Unlock()
	return value, nil
}

type goWikiArticleProvider struct {
	searches  *memo[[]string]
	summaries *memo[string]
}

// NewArticleProvider queries en.wikipedia.org through go-wiki.
func NewArticleProvider() ArticleProvider {
	return &goWikiArticleProvider{
		searches:  newMemo[[]string](),
		summaries: newMemo[string](),
	}
}

func (g *goWikiArticleProvider) Search(searchString string, maxArticleCount int) ([]string, error) {
	key := fmt.Sprintf("%d:%s", maxArticleCount, searchString)
	return g.searches.getOrLoad(key, func() ([]string, error) {
		articleNames, _, err := gowiki.Search(searchString, maxArticleCount, true)
		return articleNames, err
	})
}

func (g *goWikiArticleProvider) GetSummary(articleName string, maxArticleSentenceCount int) (string, error) {
	key := fmt.Sprintf("%d:%s", maxArticleSentenceCount, articleName)
	return g.summaries.getOrLoad(key, func() (string, error) {
		return gowiki.Summary(articleName, maxArticleSentenceCount, -1, false, true)
	})
}
