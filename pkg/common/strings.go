package common

import "strings"

// TruncateRunes returns the first `maxRunes` characters of `str` (not bytes, so that multibyte text isn't cut in half).
func TruncateRunes(str string, maxRunes int) string {
	if maxRunes < 0 {
		return str
	}
	count := 0
	for index := range str {
		if count == maxRunes {
			return str[:index]
		}
		count++
	}
	return str
}

// FlattenNewlines replaces newlines with spaces so that a multiline text fits into a single line. Carriage returns
// are kept.
func FlattenNewlines(str string) string {
	return strings.ReplaceAll(str, "\n", " ")
}
