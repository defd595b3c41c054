package domain

import (
	"fmt"
	"strings"
)

// SnippetFilter narrows down fetched snippets to the ones related to the query. Implementations must return the
// input as is if nothing matches.
type SnippetFilter func(query string, snippets []Snippet) []Snippet

const (
	SnippetFilterFirstWord = "firstWord"
	SnippetFilterAnyWord   = "anyWord"
	SnippetFilterNone      = "none"
)

// NewSnippetFilter returns the heuristic by its name (see ConfigKeyRetrievalFilter).
func NewSnippetFilter(name string) (SnippetFilter, error) {
	switch name {
	case "", SnippetFilterFirstWord:
		return FirstWordFilter, nil
	case SnippetFilterAnyWord:
		return AnyWordFilter, nil
	case SnippetFilterNone:
		return NoFilter, nil
	default:
		return nil, fmt.Errorf("unknown snippet filter %q", name)
	}
}

// FirstWordFilter keeps snippets which contain the first word of the query (case-insensitive).
// Note that the first word of a question is usually a stopword ("what", "how"), which rarely appears in prose, so
// in practice it often falls back to all snippets. It's kept as is until we decide on something better (see
// AnyWordFilter).
func FirstWordFilter(query string, snippets []Snippet) []Snippet {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return snippets
	}
	return filterOrAll(snippets, words[:1])
}

// AnyWordFilter keeps snippets which contain any word of the query (case-insensitive, punctuation is ignored).
func AnyWordFilter(query string, snippets []Snippet) []Snippet {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if word != "" {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return snippets
	}
	return filterOrAll(snippets, words)
}

// NoFilter returns all snippets.
func NoFilter(_ string, snippets []Snippet) []Snippet {
	return snippets
}

func filterOrAll(snippets []Snippet, words []string) []Snippet {
	var related []Snippet
	for _, snippet := range snippets {
		text := strings.ToLower(snippet.Text)
		for _, word := range words {
			if strings.Contains(text, word) {
				related = append(related, snippet)
				break
			}
		}
	}
	if len(related) == 0 {
		return snippets
	}
	return related
}
