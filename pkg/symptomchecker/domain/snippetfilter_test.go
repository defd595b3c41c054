package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testSnippets = []Snippet{
	{Source: "https://who.example", Text: "Fact sheets about skin conditions overview"},
	{Source: "https://nhs.example", Text: "Health A-Z: Eczema, Psoriasis"},
	{Source: "https://cdc.example", Text: "What you need to know about measles"},
}

func TestFirstWordFilter_KeepsMatchingSubset(t *testing.T) {
	related := FirstWordFilter("What condition might this be?", testSnippets)
	require.Equal(t, []Snippet{testSnippets[2]}, related)
	require.Less(t, len(related), len(testSnippets))
}

func TestFirstWordFilter_CaseInsensitive(t *testing.T) {
	related := FirstWordFilter("ECZEMA or not?", testSnippets)
	require.Equal(t, []Snippet{testSnippets[1]}, related)
}

func TestFirstWordFilter_FallsBackToAll(t *testing.T) {
	related := FirstWordFilter("Rash on my arm", testSnippets)
	require.Equal(t, testSnippets, related)
}

func TestFirstWordFilter_EmptyQuery(t *testing.T) {
	require.Equal(t, testSnippets, FirstWordFilter("   ", testSnippets))
}

func TestFirstWordFilter_NoSnippets(t *testing.T) {
	require.Empty(t, FirstWordFilter("What is it?", nil))
}

func TestAnyWordFilter(t *testing.T) {
	related := AnyWordFilter("Psoriasis, maybe?", testSnippets)
	require.Equal(t, []Snippet{testSnippets[1]}, related)

	related = AnyWordFilter("zzz qqq", testSnippets)
	require.Equal(t, testSnippets, related)
}

func TestNewSnippetFilter(t *testing.T) {
	for _, name := range []string{"", SnippetFilterFirstWord, SnippetFilterAnyWord, SnippetFilterNone} {
		filter, err := NewSnippetFilter(name)
		require.NoError(t, err)
		require.NotNil(t, filter)
	}
	filter, err := NewSnippetFilter(SnippetFilterNone)
	require.NoError(t, err)
	require.Equal(t, testSnippets, filter("What condition", testSnippets))

	_, err = NewSnippetFilter("embeddings")
	require.Error(t, err)
}
