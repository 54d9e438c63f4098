package utils

import "strings"

// TitleCase capitalizes the first letter of each space-separated word and
// lowercases the rest, e.g. "jOHN doE" -> "John Doe".
func TitleCase(text string) string {
	if text == "" {
		return text
	}
	words := strings.Split(text, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
