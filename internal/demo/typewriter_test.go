package demo

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTypewriterChunks(t *testing.T) {
	require.Nil(t, TypewriterChunks(""))
	require.Equal(t, []string{"ab"}, TypewriterChunks("ab"))
	require.Equal(t, []string{"abc", "def", "g"}, TypewriterChunks("abcdefg"))

	// Chunks concatenate back to the original text.
	text := WelcomeMessage
	require.Equal(t, text, strings.Join(TypewriterChunks(text), ""))
}

func TestTypewriterChunksRuneBoundaries(t *testing.T) {
	// Multi-byte runes placed so a byte-based splitter would cut through
	// them. Every chunk must stay valid UTF-8 on its own.
	text := "aé—béc"
	chunks := TypewriterChunks(text)
	for _, c := range chunks {
		require.True(t, utf8.ValidString(c), "chunk %q is not valid UTF-8", c)
		require.Equal(t, 3, utf8.RuneCountInString(c))
	}
	require.Equal(t, text, strings.Join(chunks, ""))
}

func TestAdvanceTypewriter(t *testing.T) {
	require.Equal(t, 3, advanceTypewriter(0, "aaaaaaaaaa"))
	require.Equal(t, 6, advanceTypewriter(3, "aaaaaaaaaa"))
	require.Equal(t, 10, advanceTypewriter(9, "aaaaaaaaaa"))
	require.Equal(t, 2, advanceTypewriter(0, "aa"))
}

func TestAdvanceTypewriterRuneSafe(t *testing.T) {
	// An em dash is 3 bytes; placing it off the chunk stride forces the
	// advance past a naive byte step. Each partial render must be a valid
	// UTF-8 prefix of the target.
	text := "ab—cd—ef"
	rendered := 0
	for rendered < len(text) {
		next := advanceTypewriter(rendered, text)
		require.Greater(t, next, rendered)
		require.True(t, utf8.ValidString(text[:next]), "partial render %q is not valid UTF-8", text[:next])
		rendered = next
	}
	require.Equal(t, len(text), rendered)
}
