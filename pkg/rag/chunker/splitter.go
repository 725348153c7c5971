package chunker

import "strings"

// Splitter breaks document text into overlapping chunks. It walks a
// separator hierarchy (paragraph, line, word, character) and only falls
// through to the next separator when a piece is still too large.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 200
	}
	return &Splitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		Separators:   []string{"\n\n", "\n", " ", ""},
	}
}

// Split returns the chunk texts for a document. Whitespace-only pieces
// are dropped; an empty document yields no chunks.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.splitRecursive(text, s.Separators)
}

func (s *Splitter) splitRecursive(text string, separators []string) []string {
	// Pick the first separator present in the text. The empty separator
	// always matches and means character-level slicing.
	separator := separators[len(separators)-1]
	var nextSeparators []string
	for i, sep := range separators {
		if sep == "" {
			separator = sep
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			nextSeparators = separators[i+1:]
			break
		}
	}

	var splits []string
	if separator == "" {
		splits = sliceRunes(text, s.ChunkSize)
	} else {
		splits = strings.Split(text, separator)
	}

	var chunks []string
	var goodSplits []string
	for _, piece := range splits {
		if len(piece) < s.ChunkSize {
			goodSplits = append(goodSplits, piece)
			continue
		}
		// Flush accumulated small pieces before descending.
		if len(goodSplits) > 0 {
			chunks = append(chunks, s.mergeSplits(goodSplits, separator)...)
			goodSplits = nil
		}
		if len(nextSeparators) == 0 {
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, s.splitRecursive(piece, nextSeparators)...)
		}
	}
	if len(goodSplits) > 0 {
		chunks = append(chunks, s.mergeSplits(goodSplits, separator)...)
	}
	return chunks
}

// mergeSplits packs small pieces back together up to ChunkSize, sliding
// a ChunkOverlap-sized tail into the next chunk.
func (s *Splitter) mergeSplits(splits []string, separator string) []string {
	sepLen := len(separator)

	var chunks []string
	var current []string
	total := 0

	for _, piece := range splits {
		pieceLen := len(piece)
		if total+pieceLen+sepLen*len(current) > s.ChunkSize && len(current) > 0 {
			if chunk := joinSplits(current, separator); chunk != "" {
				chunks = append(chunks, chunk)
			}
			// Drop from the front until the retained tail fits the overlap.
			for total > s.ChunkOverlap || (total+pieceLen+sepLen*len(current) > s.ChunkSize && total > 0) {
				total -= len(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += pieceLen
	}

	if chunk := joinSplits(current, separator); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func joinSplits(splits []string, separator string) string {
	return strings.TrimSpace(strings.Join(splits, separator))
}

func sliceRunes(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
