package rain

import "math"

const (
	// Target one column per ~90px of width, clamped to a readable glyph size.
	fontDivisor = 90
	minFontSize = 14
	maxFontSize = 22

	minPixelDensity = 1.0
	maxPixelDensity = 2.0
)

// Grid describes the column layout derived from the drawable area. It is
// recomputed on every (debounced) resize and never persisted directly.
type Grid struct {
	ColumnCount  int
	FontSize     int
	DrawWidth    int
	DrawHeight   int
	PixelDensity float64
}

// ComputeGrid derives the font size and column grid for a drawable area of
// the given logical pixel size. deviceScale is the host's device scale
// factor; it is clamped to [1, 2] so ultra-dense displays don't quadruple
// the backing store. The caller applies PixelDensity to the backing store
// size and draw transform; all Grid fields stay in logical pixels.
func ComputeGrid(drawableWidthPx, drawableHeightPx int, deviceScale float64) Grid {
	if drawableWidthPx < 0 {
		drawableWidthPx = 0
	}
	if drawableHeightPx < 0 {
		drawableHeightPx = 0
	}

	density := deviceScale
	if density < minPixelDensity || math.IsNaN(density) {
		density = minPixelDensity
	}
	if density > maxPixelDensity {
		density = maxPixelDensity
	}

	fontSize := int(math.Round(float64(drawableWidthPx) / fontDivisor))
	if fontSize < minFontSize {
		fontSize = minFontSize
	}
	if fontSize > maxFontSize {
		fontSize = maxFontSize
	}

	columns := 0
	if drawableWidthPx > 0 {
		columns = (drawableWidthPx + fontSize - 1) / fontSize
	}

	return Grid{
		ColumnCount:  columns,
		FontSize:     fontSize,
		DrawWidth:    drawableWidthPx,
		DrawHeight:   drawableHeightPx,
		PixelDensity: density,
	}
}
