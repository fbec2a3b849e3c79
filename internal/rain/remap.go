package rain

import (
	"math"
	"math/rand"
)

// Seed range for a column entering from above the visible area, in rows.
const seedRange = 40

func seedDrop(rng *rand.Rand) float64 {
	return -float64(rng.Intn(seedRange) + 1)
}

// SeedDrops returns n independent drop positions, each a uniform integer in
// [-40, 0). Columns seeded this way enter the visible area staggered instead
// of as a single wall of glyphs. n <= 0 yields an empty slice.
func SeedDrops(n int, rng *rand.Rand) []float64 {
	if n <= 0 {
		return []float64{}
	}
	drops := make([]float64, n)
	for i := range drops {
		drops[i] = seedDrop(rng)
	}
	return drops
}

// Remap stretches or shrinks an existing per-column state onto a new column
// count using nearest-lower-neighbor sampling: target column i reads source
// column floor(i*prevCols/nextCols). Shrinking is many-to-one and growing is
// one-to-many, which is accepted lossy behavior. Degenerate inputs (no prior
// drops, non-positive counts) fall back to a fresh seed; non-finite source
// entries are reseeded individually. The operation is total and never fails.
//
// When prevCols does not evenly divide nextCols the index formula has a
// slight downward bias. That matches the long-standing behavior and only
// affects cosmetic continuity on resize, so it is kept as is.
func Remap(prevDrops []float64, prevCols, nextCols int, rng *rand.Rand) []float64 {
	if len(prevDrops) == 0 || prevCols <= 0 || nextCols <= 0 {
		return SeedDrops(nextCols, rng)
	}

	out := make([]float64, nextCols)
	for i := range out {
		src := i * prevCols / nextCols
		v := math.NaN()
		if src < len(prevDrops) {
			v = prevDrops[src]
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = seedDrop(rng)
		}
		out[i] = v
	}
	return out
}

// RescaleDrops scales every drop by prevFont/nextFont so that a column's
// remembered pixel position (drop * fontSize) survives a font-size change.
// Callers run this before Remap when the font size differs. Non-positive
// font sizes leave the values untouched.
func RescaleDrops(drops []float64, prevFont, nextFont int) []float64 {
	out := make([]float64, len(drops))
	ratio := 1.0
	if prevFont > 0 && nextFont > 0 {
		ratio = float64(prevFont) / float64(nextFont)
	}
	for i, d := range drops {
		out[i] = d * ratio
	}
	return out
}
