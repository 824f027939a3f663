// Package chunker splits raw text into retrieval-sized units.
//
// The default policy is intentionally naive: split on period-terminated
// sentence boundaries and drop units with no content. The Splitter
// interface keeps the contract stable so the implementation can be swapped
// for a smarter sentence- or token-window splitter without touching any
// other component.
package chunker

import "strings"

// Splitter turns raw text into an ordered sequence of non-empty units.
// Order matters: downstream content/vector pairing is positional.
type Splitter interface {
	Split(text string) []string
}

// SentenceSplitter splits on a single delimiter and drops candidates that
// trim to nothing; kept units preserve their original spacing. The zero
// value splits on ".".
type SentenceSplitter struct {
	// Delimiter terminates a unit. Empty means ".".
	Delimiter string
}

// NewSentenceSplitter returns a SentenceSplitter with the default
// period delimiter.
func NewSentenceSplitter() *SentenceSplitter {
	return &SentenceSplitter{Delimiter: "."}
}

// Split implements Splitter.
//
// Delimiter-free input yields a single unit containing the trimmed text;
// input that trims to nothing yields zero units, never an error.
func (s *SentenceSplitter) Split(text string) []string {
	delim := s.Delimiter
	if delim == "" {
		delim = "."
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	parts := strings.Split(trimmed, delim)
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		chunks = append(chunks, part)
	}
	return chunks
}
