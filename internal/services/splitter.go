package services

import "strings"

// TextSplitter cuts text into overlapping windows of at most Size runes,
// preferring to end a window at the last space inside it.
type TextSplitter struct {
	Size    int
	Overlap int
}

func NewTextSplitter(size, overlap int) *TextSplitter {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return &TextSplitter{Size: size, Overlap: overlap}
}

func (s *TextSplitter) Split(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var out []string
	start := 0
	for start < len(runes) {
		end := min(start+s.Size, len(runes))

		// Try to break at word boundary
		if end < len(runes) {
			if cut := lastSpace(runes[start:end]); cut > 0 {
				end = start + cut
			}
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			out = append(out, piece)
		}
		if end == len(runes) {
			break
		}

		next := end - s.Overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return out
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t' {
			return i
		}
	}
	return -1
}
