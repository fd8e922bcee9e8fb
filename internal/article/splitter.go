package article

import (
	"strings"
	"unicode"
)

// Splitter detects sentence boundaries in plain article text. Internal
// whitespace, including newlines, is preserved inside each sentence; only
// the edges are trimmed.
type Splitter struct {
	minLength     int
	abbreviations map[string]bool
}

// NewSplitter creates a sentence splitter.
func NewSplitter() *Splitter {
	return &Splitter{
		minLength:     2,
		abbreviations: makeAbbreviationMap(),
	}
}

// Split breaks text into an ordered sequence of sentences.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	var sentences []string
	lastStart := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}

		// Collect trailing punctuation and any closing quote or bracket
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?') {
			end++
		}
		for end < len(runes) && (runes[end] == '"' || runes[end] == '\'' || runes[end] == ')' || runes[end] == ']') {
			end++
		}

		if !s.isSentenceEnd(runes, i, end) {
			continue
		}

		if sent := strings.TrimSpace(string(runes[lastStart:end])); len(sent) >= s.minLength {
			sentences = append(sentences, sent)
		}

		// Skip whitespace to the start of the next sentence
		for end < len(runes) && unicode.IsSpace(runes[end]) {
			end++
		}
		lastStart = end
		i = end - 1
	}

	if lastStart < len(runes) {
		if sent := strings.TrimSpace(string(runes[lastStart:])); len(sent) >= s.minLength {
			sentences = append(sentences, sent)
		}
	}

	return sentences
}

// isSentenceEnd decides whether the punctuation at pos really terminates a
// sentence, filtering out abbreviations, decimal numbers and ellipses.
func (s *Splitter) isSentenceEnd(runes []rune, pos, end int) bool {
	punct := runes[pos]

	if punct == '.' {
		// Word preceding the period
		start := pos - 1
		for start >= 0 && !unicode.IsSpace(runes[start]) {
			start--
		}
		word := strings.ToLower(string(runes[start+1 : pos]))

		if s.abbreviations[word] {
			return false
		}
		// Multi-part abbreviations like "e.g" or "U.S"
		if strings.Contains(word, ".") {
			return false
		}

		// Decimal numbers: "3.14"
		if pos > 0 && pos+1 < len(runes) && unicode.IsDigit(runes[pos-1]) && unicode.IsDigit(runes[pos+1]) {
			return false
		}

		// Ellipsis
		if pos+2 < len(runes) && runes[pos+1] == '.' && runes[pos+2] == '.' {
			return false
		}
	}

	// End of text
	if end >= len(runes) {
		return true
	}

	// Must be followed by whitespace
	if !unicode.IsSpace(runes[end]) {
		return false
	}

	next := end
	for next < len(runes) && unicode.IsSpace(runes[next]) {
		next++
	}
	if next >= len(runes) {
		return true
	}

	// A following uppercase letter or digit marks a new sentence; for ! and ?
	// be lenient about what follows
	if unicode.IsUpper(runes[next]) || unicode.IsDigit(runes[next]) || runes[next] == '"' || runes[next] == '\'' {
		return true
	}
	return punct == '!' || punct == '?'
}

func makeAbbreviationMap() map[string]bool {
	abbrevs := []string{
		"mr", "mrs", "ms", "dr", "prof", "sr", "jr",
		"inc", "ltd", "co", "corp",
		"etc", "vs", "cf", "al",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
		"mon", "tue", "wed", "thu", "fri", "sat", "sun",
		"st", "rd", "ave", "blvd",
		"ft", "lbs", "oz", "kg", "km", "cm", "mm", "mi",
		"hr", "hrs", "min", "mins", "sec", "secs",
		"no", "vol", "pp", "fig",
	}

	m := make(map[string]bool, len(abbrevs))
	for _, a := range abbrevs {
		m[a] = true
	}
	return m
}
