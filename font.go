package textmesh

// GlyphID identifies a glyph within a particular font.
type GlyphID uint32

// Font describes an opened font face at a declared size. Metrics are in
// the font's native units at that size; the layout functions rescale
// them by renderSize/Size.
//
// Sign convention: Ascent is positive (above the baseline), Descent is
// negative (below the baseline). LineHeight is the positive distance
// between consecutive baselines.
type Font interface {
	// IsOpened reports whether the font has data loaded. Layout
	// functions panic when handed an unopened font.
	IsOpened() bool

	// Size returns the size the font was opened at, in native units.
	Size() float32

	// Ascent returns the distance from baseline to the top of the em
	// box, positive.
	Ascent() float32

	// Descent returns the distance from baseline to the bottom of the
	// em box, negative.
	Descent() float32

	// LineHeight returns the baseline-to-baseline distance, positive.
	LineHeight() float32

	// CreateShaper returns a new shaper for this font. Shapers are
	// stateful and not safe for concurrent use; create one per
	// goroutine.
	CreateShaper() Shaper
}

// Shaper turns a run of text into an ordered glyph sequence with
// positioning deltas, handling ligatures and kerning. Offsets and
// advances are in the font's native units.
//
// Usage: call Shape, then read the results through GlyphCount,
// GlyphIDsInto and GlyphOffsetsAdvancesInto. The results stay valid
// until the next Shape call.
type Shaper interface {
	// Shape shapes one line of text. The text must not contain line
	// breaks; split lines first.
	Shape(text string)

	// GlyphCount returns the number of glyphs the last Shape produced.
	GlyphCount() int

	// GlyphIDsInto fills ids with the shaped glyph identifiers.
	// len(ids) must equal GlyphCount().
	GlyphIDsInto(ids []GlyphID)

	// GlyphOffsetsAdvancesInto fills offsets and advances with the
	// shaped positioning deltas. Both slices must have length
	// GlyphCount(). The offset displaces the glyph from the current
	// cursor; the advance moves the cursor to the next glyph.
	GlyphOffsetsAdvancesInto(offsets, advances []Vec2)
}
