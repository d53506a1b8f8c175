package textmesh

import "fmt"

// HorizontalAlignment selects how a laid-out line is shifted along X.
type HorizontalAlignment int

const (
	// HorizontalAlignmentNone leaves line positions where layout put them.
	HorizontalAlignmentNone HorizontalAlignment = iota
	// HorizontalAlignmentLeft shifts the line so its left edge is at X=0.
	HorizontalAlignmentLeft
	// HorizontalAlignmentCenter shifts the line so its center is at X=0.
	HorizontalAlignmentCenter
	// HorizontalAlignmentRight shifts the line so its right edge is at X=0.
	HorizontalAlignmentRight
)

// String returns the string representation of HorizontalAlignment.
func (a HorizontalAlignment) String() string {
	switch a {
	case HorizontalAlignmentNone:
		return "None"
	case HorizontalAlignmentLeft:
		return "Left"
	case HorizontalAlignmentCenter:
		return "Center"
	case HorizontalAlignmentRight:
		return "Right"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// VerticalAlignment selects how a whole text block is shifted along Y.
type VerticalAlignment int

const (
	// VerticalAlignmentNone leaves the block on the first line's baseline.
	VerticalAlignmentNone VerticalAlignment = iota
	// VerticalAlignmentTop shifts the block so its top edge is at Y=0.
	VerticalAlignmentTop
	// VerticalAlignmentMiddle shifts the block so its center is at Y=0.
	VerticalAlignmentMiddle
	// VerticalAlignmentBottom shifts the block so its bottom edge is at Y=0.
	VerticalAlignmentBottom
)

// String returns the string representation of VerticalAlignment.
func (a VerticalAlignment) String() string {
	switch a {
	case VerticalAlignmentNone:
		return "None"
	case VerticalAlignmentTop:
		return "Top"
	case VerticalAlignmentMiddle:
		return "Middle"
	case VerticalAlignmentBottom:
		return "Bottom"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// Alignment describes where a rendered text block is anchored relative
// to the origin. The two axes are independent; an unset axis means no
// shift on that axis. The zero value is a full no-op.
type Alignment struct {
	// Horizontal is applied per line.
	Horizontal HorizontalAlignment

	// Vertical is applied once to the whole block.
	Vertical VerticalAlignment

	// Integral rounds Center/Middle offsets to whole units, keeping
	// glyphs on pixel boundaries when rendering at 1:1 scale.
	Integral bool

	// GlyphBounds aligns lines against the rectangle of the actual glyph
	// quads instead of the cursor-advance rectangle. The advance
	// rectangle includes trailing whitespace and the full ascent/descent
	// band; the glyph rectangle hugs the ink.
	GlyphBounds bool
}

// Common alignment presets.
var (
	// AlignmentLineLeft anchors the first line's baseline start at the
	// origin, the default for single-line labels.
	AlignmentLineLeft = Alignment{Horizontal: HorizontalAlignmentLeft}

	// AlignmentTopLeft anchors the block's top-left corner at the origin.
	AlignmentTopLeft = Alignment{Horizontal: HorizontalAlignmentLeft, Vertical: VerticalAlignmentTop}

	// AlignmentMiddleCenter centers the block on the origin.
	AlignmentMiddleCenter = Alignment{Horizontal: HorizontalAlignmentCenter, Vertical: VerticalAlignmentMiddle}

	// AlignmentMiddleCenterIntegral centers the block on the origin with
	// offsets rounded to whole units.
	AlignmentMiddleCenterIntegral = Alignment{
		Horizontal: HorizontalAlignmentCenter,
		Vertical:   VerticalAlignmentMiddle,
		Integral:   true,
	}

	// AlignmentBottomRight anchors the block's bottom-right corner at
	// the origin.
	AlignmentBottomRight = Alignment{Horizontal: HorizontalAlignmentRight, Vertical: VerticalAlignmentBottom}
)

// LayoutDirection is the overall progression of lines and glyphs.
// Only horizontal text with lines stacking top to bottom is supported;
// the other values are reserved.
type LayoutDirection int

const (
	// LayoutDirectionHorizontalTopToBottom is left-to-right glyph flow
	// with lines advancing downward.
	LayoutDirectionHorizontalTopToBottom LayoutDirection = iota
	// LayoutDirectionHorizontalBottomToTop is reserved.
	LayoutDirectionHorizontalBottomToTop
	// LayoutDirectionVerticalLeftToRight is reserved.
	LayoutDirectionVerticalLeftToRight
	// LayoutDirectionVerticalRightToLeft is reserved.
	LayoutDirectionVerticalRightToLeft
)

// String returns the string representation of LayoutDirection.
func (d LayoutDirection) String() string {
	switch d {
	case LayoutDirectionHorizontalTopToBottom:
		return "HorizontalTopToBottom"
	case LayoutDirectionHorizontalBottomToTop:
		return "HorizontalBottomToTop"
	case LayoutDirectionVerticalLeftToRight:
		return "VerticalLeftToRight"
	case LayoutDirectionVerticalRightToLeft:
		return "VerticalRightToLeft"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}
