package tts

import "testing"

func TestSanitize_ReplacesNewlines(t *testing.T) {
	got := Sanitize("Hello\nworld")
	if got != "Hello. world" {
		t.Errorf("Expected 'Hello. world', got %q", got)
	}
}

func TestSanitize_ReplacesEveryNewline(t *testing.T) {
	got := Sanitize("a\nb\nc")
	if got != "a. b. c" {
		t.Errorf("Expected 'a. b. c', got %q", got)
	}
}

func TestSanitize_NoNewlines(t *testing.T) {
	in := "The quick brown fox."
	if got := Sanitize(in); got != in {
		t.Errorf("Expected input unchanged, got %q", got)
	}
}

func TestSanitize_Empty(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello world.",
		"First line\nsecond line",
		"a\n\nb",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestSanitize_Deterministic(t *testing.T) {
	in := "Line one\nline two"
	if Sanitize(in) != Sanitize(in) {
		t.Error("Expected identical output for identical input")
	}
}
