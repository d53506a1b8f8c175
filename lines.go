package textmesh

import (
	"iter"
	"strings"
)

// Lines returns an iterator over the '\n'-separated segments of text.
// Every segment is yielded, including empty ones: "a\n\nb" yields
// "a", "", "b", and a trailing newline yields a final empty segment.
// An empty input yields a single empty segment.
//
// The layout code treats each segment as one line; empty segments
// produce no glyphs but still advance the line cursor.
func Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			i := strings.IndexByte(text, '\n')
			if i < 0 {
				yield(text)
				return
			}
			if !yield(text[:i]) {
				return
			}
			text = text[i+1:]
		}
	}
}
