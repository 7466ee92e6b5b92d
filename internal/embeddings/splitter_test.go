package embeddings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPagesSkipsBlankPages(t *testing.T) {
	pages := map[int]string{1: "hello world", 2: "   \n  ", 3: "more text here"}
	chunks := splitPages(pages, 1000, 200)
	for _, c := range chunks {
		assert.NotEqual(t, 2, c.pageNumber)
	}
}

func TestSplitPagesAllBlankYieldsNoChunks(t *testing.T) {
	pages := map[int]string{1: "", 2: "   "}
	chunks := splitPages(pages, 1000, 200)
	assert.Empty(t, chunks)
}

func TestSplitTextRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("word ", 500)
	pieces := splitText(text, 200, 40, defaultSeparators)
	for _, p := range pieces {
		assert.LessOrEqual(t, len(p), 260)
	}
	assert.Greater(t, len(pieces), 1)
}

func TestSplitTextShortTextYieldsOneChunk(t *testing.T) {
	pieces := splitText("short text", 1000, 200, defaultSeparators)
	assert.Equal(t, []string{"short text"}, pieces)
}

func TestSplitPagesChunkIndexesPerPage(t *testing.T) {
	pages := map[int]string{1: strings.Repeat("a ", 1000)}
	chunks := splitPages(pages, 200, 40)
	for i, c := range chunks {
		assert.Equal(t, i, c.chunkIndex)
		assert.Equal(t, 1, c.pageNumber)
	}
}
