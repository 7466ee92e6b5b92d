package embeddings

import "strings"

// chunk is one recursive-character-split fragment of a single PDF page.
type chunk struct {
	pageNumber int
	chunkIndex int
	text       string
}

// defaultSeparators mirrors LangChain's RecursiveCharacterTextSplitter
// default separator list, tried in order from most to least structural.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// splitPages chunks every non-blank page's text with a recursive character
// splitter, keeping page boundaries: a chunk never spans two pages.
func splitPages(pages map[int]string, chunkSize, chunkOverlap int) []chunk {
	var out []chunk
	for pageNum := 1; pageNum <= len(pages); pageNum++ {
		text := pages[pageNum]
		if strings.TrimSpace(text) == "" {
			continue
		}
		for i, piece := range splitText(text, chunkSize, chunkOverlap, defaultSeparators) {
			out = append(out, chunk{pageNumber: pageNum, chunkIndex: i, text: piece})
		}
	}
	return out
}

// splitText recursively splits on the first separator that actually breaks
// the text into pieces no longer than chunkSize, falling back to the next
// separator (and ultimately to character-by-character) when it doesn't.
func splitText(text string, chunkSize, chunkOverlap int, separators []string) []string {
	if len(text) <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	sep := separators[len(separators)-1]
	nextSeparators := separators[1:]
	for i, s := range separators {
		if s == "" || strings.Contains(text, s) {
			sep = s
			nextSeparators = separators[i+1:]
			break
		}
	}

	var splits []string
	if sep == "" {
		for _, r := range text {
			splits = append(splits, string(r))
		}
	} else {
		splits = strings.Split(text, sep)
	}

	var merged []string
	var good []string
	for _, s := range splits {
		if len(s) < chunkSize {
			good = append(good, s)
			continue
		}
		if len(good) > 0 {
			merged = append(merged, mergeSplits(good, sep, chunkSize, chunkOverlap)...)
			good = nil
		}
		if len(nextSeparators) > 0 {
			merged = append(merged, splitText(s, chunkSize, chunkOverlap, nextSeparators)...)
		} else {
			merged = append(merged, s)
		}
	}
	if len(good) > 0 {
		merged = append(merged, mergeSplits(good, sep, chunkSize, chunkOverlap)...)
	}
	return merged
}

// mergeSplits reassembles same-separator pieces into chunks as close to
// chunkSize as possible, carrying chunkOverlap bytes from the tail of one
// chunk into the start of the next.
func mergeSplits(splits []string, sep string, chunkSize, chunkOverlap int) []string {
	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		joined := strings.Join(current, sep)
		if strings.TrimSpace(joined) != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, s := range splits {
		addLen := len(s)
		if len(current) > 0 {
			addLen += len(sep)
		}
		if currentLen+addLen > chunkSize && len(current) > 0 {
			flush()
			// carry overlap: keep trailing pieces whose combined length
			// fits within chunkOverlap
			var kept []string
			keptLen := 0
			for i := len(current) - 1; i >= 0; i-- {
				l := len(current[i])
				if len(kept) > 0 {
					l += len(sep)
				}
				if keptLen+l > chunkOverlap {
					break
				}
				kept = append([]string{current[i]}, kept...)
				keptLen += l
			}
			current = kept
			currentLen = keptLen
			addLen = len(s)
			if len(current) > 0 {
				addLen += len(sep)
			}
		}
		current = append(current, s)
		currentLen += addLen
	}
	flush()
	return chunks
}
