package api

import "strings"

// toPlural turns a lower-cased kind into its plural path segment using
// simple English suffix rules. Best effort: irregular plurals come out
// wrong, which is one reason discovery-derived descriptors are preferred
// over guessed ones.
func toPlural(word string) string {
	if word == "" {
		return word
	}
	if strings.HasSuffix(word, "s") || strings.HasSuffix(word, "x") ||
		strings.HasSuffix(word, "ch") || strings.HasSuffix(word, "sh") {
		return word + "es"
	}
	if strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(word[len(word)-2]) {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}

func isVowel(c byte) bool {
	return strings.IndexByte("aeiou", c) >= 0
}
