package web

import (
	"strings"

	"github.com/mvdan/xurls"

	"kgeyst.com/symptomchecker/pkg/common"
)

type URLFinder struct{}

func NewURLFinder() *URLFinder {
	return &URLFinder{}
}

func (u *URLFinder) FindURLs(str string) []string {
	return xurls.Strict.FindAllString(str, -1)
}

// SplitURL finds the first image URL in `str` (or the first URL if none looks like an image) and returns it along
// with the rest of the text (for example, a question typed next to an image link). Returns an empty URL if there's none.
func (u *URLFinder) SplitURL(str string) (url string, rest string) {
	urls := u.FindURLs(str)
	if len(urls) == 0 {
		return "", strings.TrimSpace(str)
	}
	url = urls[0]
	for _, candidate := range urls {
		if common.IsImageFormat(candidate) {
			url = candidate
			break
		}
	}
	rest = strings.TrimSpace(strings.Replace(str, url, "", 1))
	return url, strings.Join(strings.Fields(rest), " ")
}
