package web

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestURLFinder_SplitURL(t *testing.T) {
	finder := NewURLFinder()
	cases := []struct {
		input     string
		wantURL   string
		wantQuery string
	}{
		{"https://img.example/rash.jpg", "https://img.example/rash.jpg", ""},
		{"https://img.example/rash.jpg is it contagious?", "https://img.example/rash.jpg", "is it contagious?"},
		{"Is this serious?   http://img.example/a.png  ", "http://img.example/a.png", "Is this serious?"},
		{"compare https://nhs.example/conditions with https://img.example/b.jpeg", "https://img.example/b.jpeg", "compare https://nhs.example/conditions with"},
		{"  no link here ", "", "no link here"},
		{"", "", ""},
	}
	for _, tc := range cases {
		url, query := finder.SplitURL(tc.input)
		require.Equal(t, tc.wantURL, url, "input=%q", tc.input)
		require.Equal(t, tc.wantQuery, query, "input=%q", tc.input)
	}
}
