package tts

import "strings"

// Sanitize normalizes a sentence into the canonical form used both as the
// synthesis request payload and as the cache key. Embedded newlines are
// replaced with a sentence terminator so the backend never sees raw line
// breaks. Pure and deterministic: equal input always yields equal keys.
func Sanitize(sentence string) string {
	return strings.ReplaceAll(sentence, "\n", ". ")
}
