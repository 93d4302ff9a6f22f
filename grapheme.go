package lineedit

import "github.com/clipperhouse/uax29/v2/graphemes"

// graphemeEnd and graphemeStart give cursor motion and the Differential
// Renderer a shared notion of "one visual character", using
// clipperhouse/uax29's grapheme-cluster segmenter rather than the
// teacher's width-only heuristic (screen.go's NextGraphemeEnd/
// PrevGraphemeStart, which only special-cases zero display width). This
// additionally gets combining-mark clusters and multi-rune emoji right
// rather than just zero-width joiners.

// graphemeEnd returns the offset just past the grapheme cluster starting
// at pos (pos's own line terminator, if any, counts as its own cluster).
func graphemeEnd(buf []rune, pos int) int {
	if pos >= len(buf) {
		return pos
	}
	if buf[pos] == '\n' {
		return pos + 1
	}
	seg := graphemes.FromString(string(buf[pos:]))
	if !seg.Next() {
		return pos + 1
	}
	n := len([]rune(seg.Value()))
	if n == 0 {
		n = 1
	}
	return pos + n
}

// graphemeStart returns the offset of the start of the grapheme cluster
// ending at pos.
func graphemeStart(buf []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if buf[pos-1] == '\n' {
		return pos - 1
	}
	seg := graphemes.FromString(string(buf[:pos]))
	last := 0
	count := 0
	for seg.Next() {
		n := len([]rune(seg.Value()))
		if count+n >= pos {
			break
		}
		count += n
		last = count
	}
	return last
}

// graphemeClusters splits s into its grapheme clusters, each as a []rune.
func graphemeClusters(s []rune) [][]rune {
	var out [][]rune
	for i := 0; i < len(s); {
		end := graphemeEnd(s, i)
		if end <= i {
			end = i + 1
		}
		out = append(out, s[i:end])
		i = end
	}
	return out
}
