package rain

import "math/rand"

// glyphSet is the fixed character pool, half-width katakana plus digits.
var glyphSet = []rune("ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789")

// resetChance is the per-tick probability that a column past the bottom edge
// restarts from a fresh negative seed instead of running on.
const resetChance = 0.025

// Engine owns the animation state for one draw surface: the current grid and
// one drop position per column, in units of fontSize rows. All access happens
// on the frame loop, so there is no locking. Construct one per surface;
// nothing here is package-global.
type Engine struct {
	grid  Grid
	drops []float64
	style Style
	rng   *rand.Rand
	frame uint64
}

func NewEngine(style Style, rng *rand.Rand) *Engine {
	return &Engine{style: style, rng: rng}
}

func (e *Engine) Grid() Grid       { return e.grid }
func (e *Engine) Drops() []float64 { return e.drops }
func (e *Engine) Frame() uint64    { return e.frame }
func (e *Engine) Style() Style     { return e.style }

// Start initializes the engine for a freshly computed grid, restoring prior
// continuity state from the store when a fresh snapshot exists and seeding
// from scratch otherwise. The restore rescales the remembered drops onto the
// current font size before remapping onto the current column count. Returns
// the load outcome for the caller's log line.
func (e *Engine) Start(store *Store, g Grid) RestoreResult {
	e.grid = g

	snap, res := store.Load()
	if res != Restored {
		e.drops = SeedDrops(g.ColumnCount, e.rng)
		return res
	}

	scaled := RescaleDrops(snap.Drops, snap.FontSize, g.FontSize)
	e.drops = Remap(scaled, snap.ColumnCount, g.ColumnCount, e.rng)
	// Guard against rounding drift between the rescale and the target grid.
	e.grid.ColumnCount = len(e.drops)
	return res
}

// Resize remaps the current state onto a new grid, rescaling for any font
// size change first so columns keep their approximate pixel positions.
func (e *Engine) Resize(g Grid) {
	scaled := e.drops
	if g.FontSize != e.grid.FontSize {
		scaled = RescaleDrops(e.drops, e.grid.FontSize, g.FontSize)
	}
	e.drops = Remap(scaled, e.grid.ColumnCount, g.ColumnCount, e.rng)
	e.grid = g
	e.grid.ColumnCount = len(e.drops)
}

// Advance moves every column down one row. A column that has passed the
// bottom edge restarts from a fresh negative seed with a small fixed
// probability, staggering re-entry.
func (e *Engine) Advance() {
	e.frame++
	bottomRows := float64(e.grid.DrawHeight) / float64(e.grid.FontSize)
	for i, d := range e.drops {
		if d > bottomRows && e.rng.Float64() < resetChance {
			e.drops[i] = seedDrop(e.rng)
			continue
		}
		e.drops[i] = d + 1
	}
}

// Glyph returns a random rune from the fixed character pool.
func (e *Engine) Glyph() rune {
	return glyphSet[e.rng.Intn(len(glyphSet))]
}

// SaveTo snapshots the current state for the next startup. Best effort.
func (e *Engine) SaveTo(store *Store, viewportW, viewportH int) {
	store.Save(Snapshot{
		ColumnCount:    e.grid.ColumnCount,
		FontSize:       e.grid.FontSize,
		Drops:          e.drops,
		ViewportWidth:  viewportW,
		ViewportHeight: viewportH,
	})
}
