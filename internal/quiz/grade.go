package quiz

import "strings"

// Grade compares an answer with the expected value ignoring case and
// surrounding whitespace. An empty answer is simply wrong.
func Grade(answer, expected string) bool {
	return normalize(answer) == normalize(expected)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
