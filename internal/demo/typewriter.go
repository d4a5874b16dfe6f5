package demo

import "unicode/utf8"

// typewriterChunkSize is how many characters each typewriter tick reveals.
const typewriterChunkSize = 3

// TypewriterChunks splits text into fixed-size rune chunks for progressive
// reveal. The final chunk may be shorter. Splitting on rune boundaries keeps
// every intermediate render valid UTF-8.
func TypewriterChunks(text string) []string {
	if text == "" {
		return nil
	}
	chunks := make([]string, 0, (len(text)+typewriterChunkSize-1)/typewriterChunkSize)
	start := 0
	count := 0
	for i := range text {
		if count == typewriterChunkSize {
			chunks = append(chunks, text[start:i])
			start = i
			count = 0
		}
		count++
	}
	chunks = append(chunks, text[start:])
	return chunks
}

// advanceTypewriter returns the rendered byte length after revealing one more
// chunk of target, capped at the full length. The offset always lands on a
// rune boundary so partial renders stay valid UTF-8.
func advanceTypewriter(rendered int, target string) int {
	for i := 0; i < typewriterChunkSize && rendered < len(target); i++ {
		_, size := utf8.DecodeRuneInString(target[rendered:])
		rendered += size
	}
	return rendered
}
