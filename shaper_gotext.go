package textmesh

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// hbShaperPool pools HarfbuzzShaper instances. HarfbuzzShaper has
// internal mutable state and is not safe for concurrent use, but
// reusing instances across sequential Shape calls avoids reallocating
// its buffers.
var hbShaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// GoTextFont is a [Font] backed by go-text/typesetting's HarfBuzz
// shaping. It parses TTF/OTF data once and hands out shapers that
// support kerning, ligatures, right-to-left text and complex scripts.
//
// Metrics are reported at the declared size: Ascent positive, Descent
// negative, matching the layout functions' sign convention.
//
// GoTextFont is safe for concurrent use; the shapers it creates are
// not, so create one per goroutine.
type GoTextFont struct {
	// font is the parsed font. font.Font is read-only and safe for
	// concurrent use, unlike font.Face, which each shaper gets its own
	// instance of.
	font *font.Font

	size       float32
	ascent     float32
	descent    float32
	lineHeight float32
}

// NewGoTextFont parses TTF/OTF font data and opens it at the given
// size. The size becomes the font's native unit scale: metrics and
// shaped glyph deltas are all expressed at this size.
func NewGoTextFont(data []byte, size float32) (*GoTextFont, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %v is not positive", ErrFontParse, size)
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontParse, err)
	}

	extents, ok := face.FontHExtents()
	if !ok {
		return nil, fmt.Errorf("%w: font has no horizontal metrics", ErrFontParse)
	}

	// Extents are in font units; bring them to the declared size.
	// Typesetting normalizes ascender positive and descender negative,
	// the convention the layout functions expect.
	unitScale := size / float32(face.Upem())
	ascent := extents.Ascender * unitScale
	descent := extents.Descender * unitScale
	lineGap := extents.LineGap * unitScale

	return &GoTextFont{
		font:       face.Font,
		size:       size,
		ascent:     ascent,
		descent:    descent,
		lineHeight: ascent - descent + lineGap,
	}, nil
}

// IsOpened reports whether the font has parsed data.
func (f *GoTextFont) IsOpened() bool { return f != nil && f.font != nil }

// Size returns the size the font was opened at.
func (f *GoTextFont) Size() float32 { return f.size }

// Ascent returns the scaled typographic ascender, positive.
func (f *GoTextFont) Ascent() float32 { return f.ascent }

// Descent returns the scaled typographic descender, negative.
func (f *GoTextFont) Descent() float32 { return f.descent }

// LineHeight returns the scaled baseline-to-baseline distance.
func (f *GoTextFont) LineHeight() float32 { return f.lineHeight }

// CreateShaper returns a HarfBuzz shaper for this font. The shaper is
// not safe for concurrent use.
func (f *GoTextFont) CreateShaper() Shaper {
	// font.Face is not safe for concurrent use, so each shaper wraps
	// the shared read-only Font in its own Face.
	return &goTextShaper{
		font: f,
		face: font.NewFace(f.font),
	}
}

// goTextShaper shapes single lines through a pooled HarfbuzzShaper and
// keeps the last output for the Into accessors.
type goTextShaper struct {
	font     *GoTextFont
	face     *font.Face
	output   shaping.Output
	vertical bool
}

func (s *goTextShaper) Shape(text string) {
	if text == "" {
		s.output = shaping.Output{}
		return
	}

	runes := []rune(text)
	dir := baseDirection(text)
	s.vertical = dir.IsVertical()

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      s.face,
		Size:      fixed.Int26_6(s.font.size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := hbShaperPool.Get().(*shaping.HarfbuzzShaper)
	s.output = hb.Shape(input)
	hbShaperPool.Put(hb)
}

func (s *goTextShaper) GlyphCount() int {
	return len(s.output.Glyphs)
}

func (s *goTextShaper) GlyphIDsInto(ids []GlyphID) {
	if len(ids) != len(s.output.Glyphs) {
		panic(fmt.Sprintf("textmesh: expected the ID slice to have length %d, got %d",
			len(s.output.Glyphs), len(ids)))
	}
	for i, g := range s.output.Glyphs {
		ids[i] = GlyphID(g.GlyphID)
	}
}

func (s *goTextShaper) GlyphOffsetsAdvancesInto(offsets, advances []Vec2) {
	if len(offsets) != len(s.output.Glyphs) || len(advances) != len(s.output.Glyphs) {
		panic(fmt.Sprintf("textmesh: expected the offset and advance slices to have length %d, got %d and %d",
			len(s.output.Glyphs), len(offsets), len(advances)))
	}
	for i, g := range s.output.Glyphs {
		offsets[i] = Vec2{X: fixedToFloat(g.XOffset), Y: fixedToFloat(g.YOffset)}
		if s.vertical {
			advances[i] = Vec2{Y: fixedToFloat(g.Advance)}
		} else {
			advances[i] = Vec2{X: fixedToFloat(g.Advance)}
		}
	}
}

// fixedToFloat converts a fixed.Int26_6 value to float32. The
// fixed-point representation uses 6 fractional bits.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// baseDirection resolves the paragraph base direction of a line using
// the Unicode bidi algorithm, so Arabic and Hebrew lines shape
// right-to-left without explicit configuration.
func baseDirection(text string) di.Direction {
	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return di.DirectionLTR
	}
	// Direction is only defined after Order has run the bidi algorithm.
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	if p.IsLeftToRight() {
		return di.DirectionLTR
	}
	return di.DirectionRTL
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Mixed-script text should be split into runs
// before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
