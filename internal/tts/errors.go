package tts

import "fmt"

// SynthesisError reports a failed synthesis call for one sentence: the
// backend was unreachable, timed out, or answered with a non-200 status.
type SynthesisError struct {
	Sentence   string // Sanitized sentence that failed
	StatusCode int    // HTTP status from the backend, 0 if the call never completed
	Err        error  // Underlying transport error, if any
}

func (e *SynthesisError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("synthesis failed for %q: backend returned status %d", truncate(e.Sentence), e.StatusCode)
	}
	return fmt.Sprintf("synthesis failed for %q: %v", truncate(e.Sentence), e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// truncate keeps error messages readable for long sentences.
func truncate(s string) string {
	const max = 60
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
