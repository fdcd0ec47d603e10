package ingest

import (
	"strings"
	"unicode/utf8"
)

// defaultSeparators split paragraphs first, then lines, then words, then
// characters. Lengths are counted in runes so Korean text chunks the same
// as ASCII.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter cuts long text into overlapping chunks for embedding.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// Split returns the chunks of text, each at most chunkSize runes, with
// adjacent chunks sharing up to chunkOverlap runes of context.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.splitText(text, s.separators)
}

func (s *Splitter) splitText(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	// Split("", text) walks rune by rune, so the last-resort separator
	// still makes progress on unbreakable text.
	splits := strings.Split(text, separator)

	var chunks []string
	var pending []string
	for _, piece := range splits {
		if utf8.RuneCountInString(piece) < s.chunkSize {
			pending = append(pending, piece)
			continue
		}
		chunks = append(chunks, s.merge(pending, separator)...)
		pending = nil
		if len(remaining) == 0 {
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, s.splitText(piece, remaining)...)
		}
	}
	chunks = append(chunks, s.merge(pending, separator)...)
	return chunks
}

// merge joins small pieces back together up to chunkSize, carrying the
// tail of each emitted chunk into the next one as overlap.
func (s *Splitter) merge(splits []string, separator string) []string {
	sepLen := utf8.RuneCountInString(separator)

	var chunks []string
	var current []string
	total := 0

	joinedLen := func(pieceLen int) int {
		if len(current) > 0 {
			return total + sepLen + pieceLen
		}
		return pieceLen
	}

	for _, piece := range splits {
		pieceLen := utf8.RuneCountInString(piece)
		if joinedLen(pieceLen) > s.chunkSize && len(current) > 0 {
			if chunk := strings.TrimSpace(strings.Join(current, separator)); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for len(current) > 0 && (total > s.chunkOverlap || joinedLen(pieceLen) > s.chunkSize) {
				head := utf8.RuneCountInString(current[0])
				total -= head
				if len(current) > 1 {
					total -= sepLen
				}
				current = current[1:]
			}
		}
		if len(current) > 0 {
			total += sepLen
		}
		current = append(current, piece)
		total += pieceLen
	}

	if chunk := strings.TrimSpace(strings.Join(current, separator)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}
