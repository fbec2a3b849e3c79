package rain

import (
	"math"
	"testing"
	"time"
)

func TestEngineStartWithoutSnapshotSeeds(t *testing.T) {
	e := NewEngine(PulseStyle{}, testRNG())
	g := ComputeGrid(900, 600, 1)

	res := e.Start(testStore(t), g)
	if res != Absent {
		t.Fatalf("Start result = %v, want absent", res)
	}
	if len(e.Drops()) != g.ColumnCount {
		t.Fatalf("len(drops) = %d, want %d", len(e.Drops()), g.ColumnCount)
	}
	for i, d := range e.Drops() {
		if d < -40 || d >= 0 {
			t.Errorf("drops[%d] = %v, want seed in [-40, 0)", i, d)
		}
	}
}

func TestEngineStartRestoresAndRescales(t *testing.T) {
	store := testStore(t)
	store.Save(Snapshot{
		ColumnCount: 40,
		FontSize:    22,
		Drops:       []float64{0, 11, 22, 33},
	})

	// Snapshot claims 40 columns but only carries 4 drops; the missing
	// sources must be reseeded, the present ones rescaled by 22/14.
	e := NewEngine(PulseStyle{}, testRNG())
	g := ComputeGrid(900, 600, 1) // font 14, 65 columns

	res := e.Start(store, g)
	if res != Restored {
		t.Fatalf("Start result = %v, want restored", res)
	}
	if len(e.Drops()) != e.Grid().ColumnCount {
		t.Fatalf("len(drops) = %d but ColumnCount = %d", len(e.Drops()), e.Grid().ColumnCount)
	}
	if e.Drops()[0] != 0 {
		t.Errorf("drops[0] = %v, want 0", e.Drops()[0])
	}
	// Target 1 reads source floor(1*40/65) = 0 as well.
	if e.Drops()[1] != 0 {
		t.Errorf("drops[1] = %v, want 0", e.Drops()[1])
	}
	// Target 2 reads source floor(2*40/65) = 1, rescaled 11*22/14.
	want := 11 * 22.0 / 14.0
	if math.Abs(e.Drops()[2]-want) > 1e-9 {
		t.Errorf("drops[2] = %v, want %v", e.Drops()[2], want)
	}
}

func TestEngineStartIgnoresStaleSnapshot(t *testing.T) {
	store := testStore(t)
	base := time.Now()
	store.now = func() time.Time { return base }
	store.Save(Snapshot{ColumnCount: 40, FontSize: 14, Drops: []float64{5, 5, 5}})
	store.now = func() time.Time { return base.Add(20 * time.Second) }

	e := NewEngine(PulseStyle{}, testRNG())
	res := e.Start(store, ComputeGrid(900, 600, 1))
	if res != Stale {
		t.Fatalf("Start result = %v, want stale", res)
	}
	for i, d := range e.Drops() {
		if d < -40 || d >= 0 {
			t.Errorf("drops[%d] = %v, want fresh seed", i, d)
		}
	}
}

func TestEngineResizeKeepsInvariant(t *testing.T) {
	e := NewEngine(PulseStyle{}, testRNG())
	e.Start(testStore(t), ComputeGrid(900, 600, 1))

	for _, w := range []int{300, 1980, 900, 1, 0, 2400} {
		g := ComputeGrid(w, 600, 1)
		e.Resize(g)
		if len(e.Drops()) != e.Grid().ColumnCount {
			t.Fatalf("after resize to %dpx: len(drops) = %d, ColumnCount = %d",
				w, len(e.Drops()), e.Grid().ColumnCount)
		}
	}
}

func TestEngineAdvance(t *testing.T) {
	e := NewEngine(PulseStyle{}, testRNG())
	e.Start(testStore(t), ComputeGrid(900, 600, 1))

	before := append([]float64(nil), e.Drops()...)
	e.Advance()
	for i, d := range e.Drops() {
		if d != before[i]+1 {
			t.Fatalf("drops[%d] = %v, want %v (all seeds are above the bottom)", i, d, before[i]+1)
		}
	}

	// Run long enough for every column to pass the bottom and restart.
	rows := float64(e.Grid().DrawHeight) / float64(e.Grid().FontSize)
	for i := 0; i < 10000; i++ {
		e.Advance()
	}
	reset := 0
	for _, d := range e.Drops() {
		if d <= rows {
			reset++
		}
	}
	if reset == 0 {
		t.Error("no column ever restarted from the bottom edge")
	}
}

func TestEngineSaveToRoundTrip(t *testing.T) {
	store := testStore(t)
	e := NewEngine(PulseStyle{}, testRNG())
	g := ComputeGrid(900, 600, 1)
	e.Start(store, g)
	e.SaveTo(store, 900, 600)

	snap, res := store.Load()
	if res != Restored {
		t.Fatalf("Load result = %v, want restored", res)
	}
	if snap.ColumnCount != g.ColumnCount || snap.FontSize != g.FontSize {
		t.Errorf("saved grid mismatch: %+v", snap)
	}
	if len(snap.Drops) != len(e.Drops()) {
		t.Errorf("saved %d drops, engine has %d", len(snap.Drops), len(e.Drops()))
	}
}

func TestEngineGlyphFromFixedSet(t *testing.T) {
	e := NewEngine(PulseStyle{}, testRNG())
	set := map[rune]bool{}
	for _, r := range glyphSet {
		set[r] = true
	}
	for i := 0; i < 200; i++ {
		if r := e.Glyph(); !set[r] {
			t.Fatalf("glyph %q not in the fixed set", r)
		}
	}
}
