package galaxy

import (
	"math"
	"math/rand"
	"testing"
)

func TestDefaultsFollowTags(t *testing.T) {
	field := Defaults()
	if field.Count != 50000 {
		t.Fatalf("Count default mismatch: %d", field.Count)
	}
	if field.Branches != 3 {
		t.Fatalf("Branches default mismatch: %d", field.Branches)
	}
	if field.Radius != 5 {
		t.Fatalf("Radius default mismatch: %g", field.Radius)
	}
	if field.RandomnessPower != 3 {
		t.Fatalf("RandomnessPower default mismatch: %g", field.RandomnessPower)
	}
	if field.InsideColor.R < 0.99 || field.InsideColor.B > 0.2 {
		t.Fatalf("InsideColor not parsed from %s: %+v", defaultInsideColor, field.InsideColor)
	}
	if field.OutsideColor.B < 0.5 || field.OutsideColor.R > 0.11 {
		t.Fatalf("OutsideColor not parsed from %s: %+v", defaultOutsideColor, field.OutsideColor)
	}
}

func TestSliderConfigFollowsTags(t *testing.T) {
	init, from, upto, step := SliderConfig("count")
	if init != 50000 || from != 100 || upto != 1000000 || step != 1 {
		t.Fatalf("count slider mismatch: %g %g %g %g", init, from, upto, step)
	}
	init, from, upto, step = SliderConfig("spin")
	if init != 1 || from != -5 || upto != 5 || step != 0.001 {
		t.Fatalf("spin slider mismatch: %g %g %g %g", init, from, upto, step)
	}
	var found bool
	for _, name := range Sliders() {
		if name == "randomness_power" {
			found = true
		}
	}
	if !found {
		t.Fatal("randomness_power missing from sliders")
	}
}

func TestSetClampsIntoRange(t *testing.T) {
	field := Defaults()
	field.Set("radius", 999)
	if field.Radius != 20 {
		t.Fatalf("radius not clamped: %g", field.Radius)
	}
	field.Set("randomness", -3)
	if field.Randomness != 0 {
		t.Fatalf("randomness not clamped: %g", field.Randomness)
	}
	field.Set("branches", 7.9)
	if field.Branches != 7 {
		t.Fatalf("branches not truncated to whole units: %d", field.Branches)
	}
	if got := field.Get("branches"); got != 7 {
		t.Fatalf("Get mismatch: %g", got)
	}
}

func TestBufferLengths(t *testing.T) {
	for _, count := range []int{1, 100, 4096} {
		field := Defaults()
		field.Count = count
		positions, colors := field.Buffers()
		if len(positions) != 3*count || len(colors) != 3*count {
			t.Fatalf("count %d: buffer lengths %d, %d", count, len(positions), len(colors))
		}
	}
}

// With zero randomness every particle must sit exactly on its branch
// curve, flat in the galactic plane.
func TestNoiselessSpiral(t *testing.T) {
	field := Defaults()
	field.Count = 3000
	field.Randomness = 0
	positions, _ := field.Buffers()
	for i := range field.Count {
		x := float64(positions[3*i+0])
		y := float64(positions[3*i+1])
		z := float64(positions[3*i+2])
		if y != 0 {
			t.Fatalf("particle %d off the plane: y=%g", i, y)
		}
		r := math.Hypot(x, z)
		if r > field.Radius {
			t.Fatalf("particle %d outside the galaxy: r=%g", i, r)
		}
		branch := float64(i%field.Branches) / float64(field.Branches) * 2 * math.Pi
		angle := branch + r*field.Spin
		if math.Abs(x-math.Cos(angle)*r) > 1e-3 || math.Abs(z-math.Sin(angle)*r) > 1e-3 {
			t.Fatalf("particle %d off its branch curve: (%g, %g) r=%g", i, x, z, r)
		}
	}
}

func TestBranchAssignmentByIndexResidue(t *testing.T) {
	field := Defaults()
	field.Branches = 5
	stub := func() float64 { return 0.37 }
	for i := range 20 {
		same, _ := field.Particle(i, stub)
		next, _ := field.Particle(i+field.Branches, stub)
		if same != next {
			t.Fatalf("indices %d and %d diverge: %v vs %v", i, i+field.Branches, same, next)
		}
	}
	first, _ := field.Particle(0, stub)
	other, _ := field.Particle(1, stub)
	if first == other {
		t.Fatal("adjacent indices landed on the same branch")
	}
}

func TestColorBetweenEndpoints(t *testing.T) {
	field := Defaults()
	field.Count = 2000
	random := rand.New(rand.NewSource(int64(field.Seed))).Float64
	between := func(v, a, b float64) bool {
		return v >= math.Min(a, b)-1e-9 && v <= math.Max(a, b)+1e-9
	}
	for i := range field.Count {
		_, color := field.Particle(i, random)
		if !between(color.R, field.InsideColor.R, field.OutsideColor.R) ||
			!between(color.G, field.InsideColor.G, field.OutsideColor.G) ||
			!between(color.B, field.InsideColor.B, field.OutsideColor.B) {
			t.Fatalf("particle %d color outside endpoints: %+v", i, color)
		}
	}
}

func TestDeterministicForEqualSeeds(t *testing.T) {
	field := Defaults()
	field.Count = 500
	a, ac := field.Buffers()
	b, bc := field.Buffers()
	for i := range a {
		if a[i] != b[i] || ac[i] != bc[i] {
			t.Fatalf("buffers diverge at slot %d", i)
		}
	}
	field.Seed++
	c, _ := field.Buffers()
	var same = true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical buffers")
	}
}

// Raising the randomness power concentrates scatter near the branch
// centerline.
func TestRandomnessPowerTightensScatter(t *testing.T) {
	mean := func(power float64) float64 {
		field := Defaults()
		field.Randomness = 1
		field.RandomnessPower = power
		random := rand.New(rand.NewSource(1)).Float64
		var total float64
		const samples = 5000
		for i := range samples {
			position, _ := field.Particle(i, random)
			total += math.Abs(position[1])
		}
		return total / samples
	}
	loose, tight := mean(1), mean(6)
	if tight >= loose {
		t.Fatalf("power 6 scatter (%g) not tighter than power 1 (%g)", tight, loose)
	}
}

func TestHundredParticleScenario(t *testing.T) {
	field := Defaults()
	field.Count = 100
	field.Radius = 5
	field.Branches = 3
	field.Spin = 1
	field.Randomness = 0
	field.RandomnessPower = 3
	positions, colors := field.Buffers()
	if len(positions) != 300 || len(colors) != 300 {
		t.Fatalf("buffer lengths %d, %d", len(positions), len(colors))
	}
	for i := range colors {
		if colors[i] < 0 || colors[i] > 1 {
			t.Fatalf("color slot %d out of range: %g", i, colors[i])
		}
	}
	field.Set("branches", 5)
	positions, colors = field.Buffers()
	if len(positions) != 300 || len(colors) != 300 {
		t.Fatalf("buffer lengths changed with branch count: %d, %d", len(positions), len(colors))
	}
}
