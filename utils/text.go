package utils

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags converts rich HTML to plain text: tags removed, script and
// style contents dropped, entities decoded, whitespace collapsed to
// single spaces.
func StripTags(input string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(input))
	var sb strings.Builder
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return CollapseWhitespace(sb.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(tokenizer.Text())
				sb.WriteByte(' ')
			}
		}
	}
}

func isSkippedTag(name string) bool {
	switch name {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}

// CollapseWhitespace reduces all whitespace runs to a single space and
// trims the ends.
func CollapseWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// TruncateRunes cuts a string to at most limit runes. Truncation counts
// characters, not bytes, so multibyte text keeps its budget.
func TruncateRunes(input string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(input)
	if len(runes) <= limit {
		return input
	}
	return string(runes[:limit])
}
