// Package extract slices highlighted ranges out of source text while
// preserving the original line and column geometry of each snippet.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codelayers/layerex/internal/annotations"
)

// ErrRangeOutOfBounds is returned when a range references lines beyond the
// source file's length. Callers are expected to clamp upstream; the
// extractor itself trusts the caller's clamp.
var ErrRangeOutOfBounds = errors.New("range exceeds source line count")

// PlacedLine is one piece of an extracted snippet together with the output
// line index it lands on. The first piece of a snippet is left-padded with
// the range's startCharacter spaces so it keeps its original horizontal
// position; later pieces carry their own original indentation already.
type PlacedLine struct {
	Index int
	Text  string
}

// Snippet is the result of extracting one range: the raw extracted text and
// the per-line placement used to rebuild it inside a reconstructed file.
type Snippet struct {
	Text  string
	Lines []PlacedLine
}

// Extract computes the exact substring of sourceLines covered by rng.
//
// The sliced lines are joined with a newline and, when the range does not
// cover the full first line from its start or the full last line to its end,
// trimmed from the front by startCharacter and from the back by the last
// line's length minus endCharacter. The trim arithmetic deliberately runs
// against the joined string's ends rather than per line; this matches the
// recorded annotations and is a fixed contract, not something to re-derive.
func Extract(sourceLines []string, rng annotations.HighlightRange) (Snippet, error) {
	if rng.EndLine >= len(sourceLines) {
		return Snippet{}, fmt.Errorf("%w: endLine %d, %d source lines", ErrRangeOutOfBounds, rng.EndLine, len(sourceLines))
	}

	sliced := sourceLines[rng.StartLine : rng.EndLine+1]
	working := strings.Join(sliced, "\n")

	lastLen := len(sliced[len(sliced)-1])
	if rng.StartCharacter > 0 || rng.EndCharacter < lastLen {
		front := rng.StartCharacter
		if front > len(working) {
			front = len(working)
		}
		back := len(working) - (lastLen - rng.EndCharacter)
		if back < front {
			back = front
		}
		if back > len(working) {
			back = len(working)
		}
		working = working[front:back]
	}

	pieces := strings.Split(working, "\n")
	lines := make([]PlacedLine, 0, len(pieces))
	for i, piece := range pieces {
		if i == 0 && rng.StartCharacter > 0 {
			piece = strings.Repeat(" ", rng.StartCharacter) + piece
		}
		lines = append(lines, PlacedLine{Index: rng.StartLine + i, Text: piece})
	}

	return Snippet{Text: working, Lines: lines}, nil
}

// Clamp returns a copy of rng adjusted to fit within lineCount lines, with
// the end character pulled back to the clamped last line's length when the
// end line moved. ok is false when the range starts beyond the file entirely
// and nothing of it can be extracted.
func Clamp(rng annotations.HighlightRange, sourceLines []string) (clamped annotations.HighlightRange, ok bool) {
	if rng.StartLine >= len(sourceLines) {
		return rng, false
	}
	clamped = rng
	if clamped.EndLine >= len(sourceLines) {
		clamped.EndLine = len(sourceLines) - 1
		clamped.EndCharacter = len(sourceLines[clamped.EndLine])
	}
	return clamped, true
}
