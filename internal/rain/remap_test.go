package rain

import (
	"math"
	"math/rand"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestSeedDropsRange(t *testing.T) {
	drops := SeedDrops(500, testRNG())
	if len(drops) != 500 {
		t.Fatalf("len = %d, want 500", len(drops))
	}
	for i, d := range drops {
		if d < -40 || d >= 0 {
			t.Errorf("drops[%d] = %v, want in [-40, 0)", i, d)
		}
		if d != math.Trunc(d) {
			t.Errorf("drops[%d] = %v, want an integer value", i, d)
		}
	}
}

func TestSeedDropsDegenerateCount(t *testing.T) {
	if got := SeedDrops(0, testRNG()); len(got) != 0 {
		t.Errorf("SeedDrops(0) len = %d, want 0", len(got))
	}
	if got := SeedDrops(-3, testRNG()); len(got) != 0 {
		t.Errorf("SeedDrops(-3) len = %d, want 0", len(got))
	}
}

func TestRemapLengthAndFiniteness(t *testing.T) {
	rng := testRNG()
	prev := SeedDrops(40, rng)
	for _, next := range []int{1, 7, 20, 40, 41, 113} {
		out := Remap(prev, 40, next, rng)
		if len(out) != next {
			t.Fatalf("Remap to %d columns: len = %d", next, len(out))
		}
		for i, d := range out {
			if math.IsNaN(d) || math.IsInf(d, 0) {
				t.Fatalf("Remap to %d columns: out[%d] = %v", next, i, d)
			}
		}
	}
}

func TestRemapDegenerateInputsReseed(t *testing.T) {
	cases := []struct {
		name     string
		prev     []float64
		prevCols int
	}{
		{"nil drops", nil, 10},
		{"empty drops", []float64{}, 10},
		{"zero prev count", []float64{1, 2, 3}, 0},
		{"negative prev count", []float64{1, 2, 3}, -4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Remap(tc.prev, tc.prevCols, 30, testRNG())
			if len(out) != 30 {
				t.Fatalf("len = %d, want 30", len(out))
			}
			for i, d := range out {
				if d < -40 || d >= 0 {
					t.Errorf("out[%d] = %v, want seed in [-40, 0)", i, d)
				}
			}
		})
	}
}

func TestRemapShrinkPicksLowerNeighbor(t *testing.T) {
	prev := make([]float64, 40)
	for i := range prev {
		prev[i] = float64(i)
	}
	out := Remap(prev, 40, 20, testRNG())
	if len(out) != 20 {
		t.Fatalf("len = %d, want 20", len(out))
	}
	for i, d := range out {
		if want := prev[2*i]; d != want {
			t.Errorf("out[%d] = %v, want %v", i, d, want)
		}
	}
}

func TestRemapDeterministicWithoutGaps(t *testing.T) {
	prev := []float64{-3, 0, 5.5, 12, 40}
	a := Remap(prev, 5, 9, testRNG())
	b := Remap(prev, 5, 9, testRNG())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("run mismatch at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRemapReseedsNonFiniteEntries(t *testing.T) {
	prev := []float64{1, math.NaN(), math.Inf(1), 4}
	out := Remap(prev, 4, 4, testRNG())
	if out[0] != 1 || out[3] != 4 {
		t.Errorf("finite entries not preserved: %v", out)
	}
	for _, i := range []int{1, 2} {
		if out[i] < -40 || out[i] >= 0 {
			t.Errorf("out[%d] = %v, want seed in [-40, 0)", i, out[i])
		}
	}
}

func TestRemapShrinkThenGrow(t *testing.T) {
	rng := testRNG()
	orig := SeedDrops(64, rng)
	small := Remap(orig, 64, 17, rng)
	back := Remap(small, 17, 64, rng)
	if len(back) != 64 {
		t.Fatalf("round trip len = %d, want 64", len(back))
	}
	// Lossy by design: values may differ, but all must remain finite.
	for i, d := range back {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Fatalf("back[%d] = %v", i, d)
		}
	}
}

func TestRescaleDrops(t *testing.T) {
	in := []float64{-14, 0, 7, 28}
	out := RescaleDrops(in, 14, 28)
	want := []float64{-7, 0, 3.5, 14}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if in[0] != -14 {
		t.Error("input mutated")
	}
}

func TestRescaleDropsBadFontSizes(t *testing.T) {
	in := []float64{1, 2}
	out := RescaleDrops(in, 0, 14)
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("non-positive font size should leave values untouched, got %v", out)
	}
}
