package whatsapp

import (
	"strings"
	"testing"
)

func TestSplitIntoChunksShortTextUntouched(t *testing.T) {
	chunks := splitIntoChunks("hello there", chunkLimit)
	if len(chunks) != 1 || chunks[0] != "hello there" {
		t.Errorf("short text should be a single chunk, got %v", chunks)
	}
}

func TestSplitIntoChunksPrefersLineBreaks(t *testing.T) {
	line := strings.Repeat("a", 40)
	text := strings.Join([]string{line, line, line}, "\n")

	chunks := splitIntoChunks(text, 100)

	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d exceeds limit: %d chars", i, len(c))
		}
		if strings.HasPrefix(c, "\n") || strings.HasSuffix(c, "\n") {
			t.Errorf("chunk %d has dangling newline: %q", i, c)
		}
	}
}

func TestSplitIntoChunksNoBreakpoints(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := splitIntoChunks(text, 100)

	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	var rebuilt strings.Builder
	for _, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk exceeds limit: %d chars", len(c))
		}
		rebuilt.WriteString(c)
	}
	if rebuilt.String() != text {
		t.Error("chunks do not reassemble into the original text")
	}
}
