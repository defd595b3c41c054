package common

import "strings"

// RemoveSingleQuotesIfAny strips surrounding single quotes: users sometimes paste secrets as "'abc'".
func RemoveSingleQuotesIfAny(str string) string {
	if len(str) >= 2 && str[0] == '\'' && str[len(str)-1] == '\'' {
		str = str[1 : len(str)-1]
	}
	return str
}

// RemoveDoubleQuotesIfAny strips surrounding double quotes, see RemoveSingleQuotesIfAny.
func RemoveDoubleQuotesIfAny(str string) string {
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	return str
}

// CleanInput trims whitespace and surrounding quotes of a value typed in by a user.
func CleanInput(str string) string {
	str = strings.TrimSpace(str)
	str = RemoveDoubleQuotesIfAny(str)
	str = RemoveSingleQuotesIfAny(str)
	return strings.TrimSpace(str)
}
