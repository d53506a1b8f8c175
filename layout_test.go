package textmesh

import (
	"strings"
	"testing"
)

// testFont is a synthetic mono-width font for layout tests: size 1,
// ascent 1, descent 0, line height 1, and one glyph per rune with a
// unit X advance and zero offset. Glyph ids are the rune values.
type testFont struct {
	opened bool
}

func newTestFont() *testFont { return &testFont{opened: true} }

func (f *testFont) IsOpened() bool      { return f.opened }
func (f *testFont) Size() float32       { return 1 }
func (f *testFont) Ascent() float32     { return 1 }
func (f *testFont) Descent() float32    { return 0 }
func (f *testFont) LineHeight() float32 { return 1 }
func (f *testFont) CreateShaper() Shaper {
	return &testShaper{}
}

type testShaper struct {
	glyphs []rune
}

func (s *testShaper) Shape(text string) {
	s.glyphs = []rune(text)
}

func (s *testShaper) GlyphCount() int { return len(s.glyphs) }

func (s *testShaper) GlyphIDsInto(ids []GlyphID) {
	for i, r := range s.glyphs {
		ids[i] = GlyphID(r)
	}
}

func (s *testShaper) GlyphOffsetsAdvancesInto(offsets, advances []Vec2) {
	for i := range s.glyphs {
		offsets[i] = Vec2{}
		advances[i] = Vec2{X: 1}
	}
}

// testCache is a single-layer 100x100 cache resolving every glyph of a
// single registered font to the same known rectangle.
type testCache struct {
	font  Font
	glyph CachedGlyph
}

func newTestCache(font Font) *testCache {
	return &testCache{
		font: font,
		glyph: CachedGlyph{
			Region: AtlasRegion{X: 2, Y: 3, Width: 10, Height: 20},
		},
	}
}

func (c *testCache) FindFont(font Font) (int, bool) {
	if font == c.font {
		return 0, true
	}
	return 0, false
}

func (c *testCache) FontCount() int { return 1 }

func (c *testCache) Glyph(fontIndex int, id GlyphID) CachedGlyph { return c.glyph }

func (c *testCache) Size() (int, int, int) { return 100, 100, 1 }

// expectPanic fails the test unless the function panics.
func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestRenderLineGlyphPositionsInto(t *testing.T) {
	font := newTestFont()

	offsets := []Vec2{{}, {}}
	advances := []Vec2{{X: 1}, {X: 1}}
	positions := make([]Vec2, 2)
	cursor := Vec2{}

	rect := RenderLineGlyphPositionsInto(font, 1, LayoutDirectionHorizontalTopToBottom,
		offsets, advances, &cursor, positions)

	if positions[0] != (Vec2{X: 0, Y: 0}) || positions[1] != (Vec2{X: 1, Y: 0}) {
		t.Errorf("expected positions (0,0) and (1,0), got %v and %v", positions[0], positions[1])
	}
	if cursor != (Vec2{X: 2, Y: 0}) {
		t.Errorf("expected cursor (2,0), got %v", cursor)
	}
	if rect != (Rect{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 2, Y: 1}}) {
		t.Errorf("unexpected line rectangle %+v", rect)
	}
}

// TestRenderLineGlyphPositionsInto_Empty verifies the rectangle keeps
// the full ascent/descent extent even with no glyphs.
func TestRenderLineGlyphPositionsInto_Empty(t *testing.T) {
	font := &metricsFont{size: 2, ascent: 3, descent: -1, lineHeight: 5}

	cursor := Vec2{X: 10, Y: 20}
	rect := RenderLineGlyphPositionsInto(font, 4, LayoutDirectionHorizontalTopToBottom,
		nil, nil, &cursor, nil)

	// scale = 4/2 = 2, so the Y extent is [20 + -1*2, 20 + 3*2].
	want := Rect{Min: Vec2{X: 10, Y: 18}, Max: Vec2{X: 10, Y: 26}}
	if rect != want {
		t.Errorf("expected rectangle %+v, got %+v", want, rect)
	}
	if cursor != (Vec2{X: 10, Y: 20}) {
		t.Errorf("cursor moved with no glyphs: %v", cursor)
	}
}

// metricsFont is a testFont variant with configurable metrics.
type metricsFont struct {
	size, ascent, descent, lineHeight float32
}

func (f *metricsFont) IsOpened() bool       { return true }
func (f *metricsFont) Size() float32        { return f.size }
func (f *metricsFont) Ascent() float32      { return f.ascent }
func (f *metricsFont) Descent() float32     { return f.descent }
func (f *metricsFont) LineHeight() float32  { return f.lineHeight }
func (f *metricsFont) CreateShaper() Shaper { return &testShaper{} }

// TestRenderLineGlyphPositionsInto_Aliased verifies that positions may
// share backing storage with the offsets.
func TestRenderLineGlyphPositionsInto_Aliased(t *testing.T) {
	font := newTestFont()

	offsets := []Vec2{{X: 0.5, Y: 0.25}, {X: -0.5, Y: 0}, {}}
	advances := []Vec2{{X: 1}, {X: 2}, {X: 3}}

	separate := make([]Vec2, 3)
	cursorA := Vec2{X: 1, Y: 1}
	rectA := RenderLineGlyphPositionsInto(font, 1, LayoutDirectionHorizontalTopToBottom,
		offsets, advances, &cursorA, separate)

	aliased := []Vec2{{X: 0.5, Y: 0.25}, {X: -0.5, Y: 0}, {}}
	cursorB := Vec2{X: 1, Y: 1}
	rectB := RenderLineGlyphPositionsInto(font, 1, LayoutDirectionHorizontalTopToBottom,
		aliased, advances, &cursorB, aliased)

	for i := range separate {
		if separate[i] != aliased[i] {
			t.Errorf("position %d differs: separate %v, aliased %v", i, separate[i], aliased[i])
		}
	}
	if cursorA != cursorB {
		t.Errorf("cursor differs: separate %v, aliased %v", cursorA, cursorB)
	}
	if rectA != rectB {
		t.Errorf("rectangle differs: separate %+v, aliased %+v", rectA, rectB)
	}
}

func TestRenderLineGlyphPositionsInto_Panics(t *testing.T) {
	font := newTestFont()
	cursor := Vec2{}

	expectPanic(t, "mismatched lengths", func() {
		RenderLineGlyphPositionsInto(font, 1, LayoutDirectionHorizontalTopToBottom,
			make([]Vec2, 2), make([]Vec2, 3), &cursor, make([]Vec2, 2))
	})
	expectPanic(t, "unsupported direction", func() {
		RenderLineGlyphPositionsInto(font, 1, LayoutDirectionVerticalLeftToRight,
			nil, nil, &cursor, nil)
	})
	expectPanic(t, "unopened font", func() {
		RenderLineGlyphPositionsInto(&testFont{}, 1, LayoutDirectionHorizontalTopToBottom,
			nil, nil, &cursor, nil)
	})
}

// TestRenderGlyphQuadsInto_TextureCoordinates pins the exact texture
// coordinates for a known cache rectangle in the defined vertex order.
func TestRenderGlyphQuadsInto_TextureCoordinates(t *testing.T) {
	font := newTestFont()
	cache := newTestCache(font)

	glyphPositions := []Vec2{{}}
	glyphIDs := []GlyphID{'A'}
	vertexPositions := make([]Vec2, 4)
	vertexTextureCoordinates := make([]Vec2, 4)

	RenderGlyphQuadsInto(font, 1, cache, glyphPositions, glyphIDs,
		vertexPositions, vertexTextureCoordinates)

	// Cache rectangle (2,3) sized 10x20 in a 100x100 atlas, in
	// bottom-left, bottom-right, top-left, top-right order.
	want := []Vec2{
		{X: 0.02, Y: 0.03},
		{X: 0.12, Y: 0.03},
		{X: 0.02, Y: 0.23},
		{X: 0.12, Y: 0.23},
	}
	for i, w := range want {
		if vertexTextureCoordinates[i] != w {
			t.Errorf("texture coordinate %d: expected %v, got %v", i, w, vertexTextureCoordinates[i])
		}
	}

	// Quad corners follow the same order in position space.
	wantPositions := []Vec2{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 0, Y: 20},
		{X: 10, Y: 20},
	}
	for i, w := range wantPositions {
		if vertexPositions[i] != w {
			t.Errorf("vertex position %d: expected %v, got %v", i, w, vertexPositions[i])
		}
	}
}

func TestRenderGlyphQuadsInto_OffsetAndScale(t *testing.T) {
	font := &metricsFont{size: 2, ascent: 1, descent: 0, lineHeight: 1}
	cache := newTestCache(font)
	cache.glyph.OffsetX = 4
	cache.glyph.OffsetY = -6

	glyphPositions := []Vec2{{X: 100, Y: 50}}
	glyphIDs := []GlyphID{'x'}
	vertexPositions := make([]Vec2, 4)
	vertexTextureCoordinates := make([]Vec2, 4)

	// scale = 1/2: the bitmap offset and the 10x20 region both halve.
	rect := RenderGlyphQuadsInto(font, 1, cache, glyphPositions, glyphIDs,
		vertexPositions, vertexTextureCoordinates)

	wantMin := Vec2{X: 102, Y: 47}
	wantMax := Vec2{X: 107, Y: 57}
	if vertexPositions[0] != wantMin {
		t.Errorf("expected bottom-left vertex %v, got %v", wantMin, vertexPositions[0])
	}
	if vertexPositions[3] != wantMax {
		t.Errorf("expected top-right vertex %v, got %v", wantMax, vertexPositions[3])
	}
	if rect != (Rect{Min: wantMin, Max: wantMax}) {
		t.Errorf("unexpected quad rectangle %+v", rect)
	}
}

func TestRenderGlyphQuadsInto3D_Layers(t *testing.T) {
	font := newTestFont()
	cache := &layeredCache{font: font, layers: 3}

	glyphPositions := []Vec2{{}, {X: 5}}
	glyphIDs := []GlyphID{'a', 'b'}
	vertexPositions := make([]Vec2, 8)
	vertexTextureCoordinates := make([]Vec2, 8)
	vertexTextureLayers := make([]float32, 8)

	RenderGlyphQuadsInto3D(font, 1, cache, glyphPositions, glyphIDs,
		vertexPositions, vertexTextureCoordinates, vertexTextureLayers)

	for i, layer := range vertexTextureLayers {
		want := float32(2)
		if layer != want {
			t.Errorf("vertex %d: expected layer %v, got %v", i, want, layer)
		}
	}
}

// layeredCache resolves every glyph into layer 2 of a layered atlas.
type layeredCache struct {
	font   Font
	layers int
}

func (c *layeredCache) FindFont(font Font) (int, bool) { return 0, font == c.font }
func (c *layeredCache) FontCount() int                 { return 1 }
func (c *layeredCache) Glyph(int, GlyphID) CachedGlyph {
	return CachedGlyph{Layer: 2, Region: AtlasRegion{X: 0, Y: 0, Width: 8, Height: 8}}
}
func (c *layeredCache) Size() (int, int, int) { return 64, 64, c.layers }

func TestRenderGlyphQuadsInto_Panics(t *testing.T) {
	font := newTestFont()
	cache := newTestCache(font)

	expectPanic(t, "layered cache in 2D overload", func() {
		layered := &layeredCache{font: font, layers: 2}
		RenderGlyphQuadsInto(font, 1, layered, nil, nil, nil, nil)
	})
	expectPanic(t, "font not in cache", func() {
		other := newTestFont()
		RenderGlyphQuadsInto(other, 1, cache, nil, nil, nil, nil)
	})
	expectPanic(t, "mismatched ID and position lengths", func() {
		RenderGlyphQuadsInto(font, 1, cache,
			make([]Vec2, 1), make([]GlyphID, 2), make([]Vec2, 8), make([]Vec2, 8))
	})
	expectPanic(t, "short vertex slices", func() {
		RenderGlyphQuadsInto(font, 1, cache,
			make([]Vec2, 2), make([]GlyphID, 2), make([]Vec2, 7), make([]Vec2, 8))
	})
}

// TestRenderGlyphQuadsInto_FontNotFoundMessage verifies the panic for
// an unregistered font reports how many fonts the cache does hold.
func TestRenderGlyphQuadsInto_FontNotFoundMessage(t *testing.T) {
	font := newTestFont()
	cache := newTestCache(font)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for a font missing from the cache")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "among 1 fonts") {
			t.Errorf("expected the panic message to name the font count, got %v", r)
		}
	}()
	RenderGlyphQuadsInto(newTestFont(), 1, cache, nil, nil, nil, nil)
}

func TestAlignLine(t *testing.T) {
	tests := []struct {
		name       string
		alignment  Alignment
		rect       Rect
		wantOffset float32
	}{
		{"none", Alignment{}, Rect{Min: Vec2{X: 2}, Max: Vec2{X: 6}}, 0},
		{"left", Alignment{Horizontal: HorizontalAlignmentLeft}, Rect{Min: Vec2{X: 2}, Max: Vec2{X: 6}}, -2},
		{"center", Alignment{Horizontal: HorizontalAlignmentCenter}, Rect{Min: Vec2{X: 2}, Max: Vec2{X: 6}}, -4},
		{"center integral", Alignment{Horizontal: HorizontalAlignmentCenter, Integral: true},
			Rect{Min: Vec2{X: 0}, Max: Vec2{X: 4.6}}, -2},
		{"right", Alignment{Horizontal: HorizontalAlignmentRight}, Rect{Min: Vec2{X: 2}, Max: Vec2{X: 6}}, -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := []Vec2{{X: 3, Y: 7}}
			aligned := AlignLine(tt.rect, LayoutDirectionHorizontalTopToBottom, tt.alignment, positions)

			if got := positions[0].X - 3; got != tt.wantOffset {
				t.Errorf("expected offset %v, got %v", tt.wantOffset, got)
			}
			if positions[0].Y != 7 {
				t.Errorf("line alignment touched Y: %v", positions[0].Y)
			}
			if aligned != tt.rect.Translated(Vec2{X: tt.wantOffset}) {
				t.Errorf("unexpected aligned rectangle %+v", aligned)
			}
		})
	}
}

// TestAlignLine_Idempotent verifies aligning an already-aligned
// rectangle is a no-op.
func TestAlignLine_Idempotent(t *testing.T) {
	alignment := Alignment{Horizontal: HorizontalAlignmentLeft}
	rect := Rect{Min: Vec2{X: 2}, Max: Vec2{X: 6}}
	positions := []Vec2{{X: 3}}

	aligned := AlignLine(rect, LayoutDirectionHorizontalTopToBottom, alignment, positions)
	again := AlignLine(aligned, LayoutDirectionHorizontalTopToBottom, alignment, positions)

	if again != aligned {
		t.Errorf("second alignment moved the rectangle: %+v vs %+v", again, aligned)
	}
	if positions[0].X != 1 {
		t.Errorf("second alignment moved the positions: %v", positions[0])
	}
}

func TestAlignBlock(t *testing.T) {
	tests := []struct {
		name       string
		alignment  Alignment
		rect       Rect
		wantOffset float32
	}{
		{"none", Alignment{}, Rect{Min: Vec2{Y: -4}, Max: Vec2{Y: 2}}, 0},
		{"top", Alignment{Vertical: VerticalAlignmentTop}, Rect{Min: Vec2{Y: -4}, Max: Vec2{Y: 2}}, -2},
		{"middle", Alignment{Vertical: VerticalAlignmentMiddle}, Rect{Min: Vec2{Y: -4}, Max: Vec2{Y: 2}}, 1},
		{"middle integral", Alignment{Vertical: VerticalAlignmentMiddle, Integral: true},
			Rect{Min: Vec2{Y: 0}, Max: Vec2{Y: 4.6}}, -2},
		{"bottom", Alignment{Vertical: VerticalAlignmentBottom}, Rect{Min: Vec2{Y: -4}, Max: Vec2{Y: 2}}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := []Vec2{{X: 3, Y: 7}}
			aligned := AlignBlock(tt.rect, LayoutDirectionHorizontalTopToBottom, tt.alignment, positions)

			if got := positions[0].Y - 7; got != tt.wantOffset {
				t.Errorf("expected offset %v, got %v", tt.wantOffset, got)
			}
			if positions[0].X != 3 {
				t.Errorf("block alignment touched X: %v", positions[0].X)
			}
			if aligned != tt.rect.Translated(Vec2{Y: tt.wantOffset}) {
				t.Errorf("unexpected aligned rectangle %+v", aligned)
			}
		})
	}
}

func TestAlign_UnsupportedDirection(t *testing.T) {
	expectPanic(t, "AlignLine with vertical direction", func() {
		AlignLine(Rect{}, LayoutDirectionVerticalRightToLeft, Alignment{}, nil)
	})
	expectPanic(t, "AlignBlock with vertical direction", func() {
		AlignBlock(Rect{}, LayoutDirectionHorizontalBottomToTop, Alignment{}, nil)
	})
}
