package physics

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// DefaultSpread is the side of the square new nodes are scattered over.
const DefaultSpread = 100.0

// Placer picks the initial position of a node from its key.
type Placer interface {
	Place(key uint64) Vector2
}

// RandomPlacer scatters nodes uniformly over [-Spread/2, Spread/2]².
type RandomPlacer struct {
	rng    *rand.Rand
	Spread float64
}

// NewRandomPlacer creates a RandomPlacer drawing from rng.
func NewRandomPlacer(rng *rand.Rand) *RandomPlacer {
	return &RandomPlacer{rng: rng, Spread: DefaultSpread}
}

// Place ignores the key.
func (p *RandomPlacer) Place(uint64) Vector2 {
	return Vector2{
		X: p.Spread*p.rng.Float64() - p.Spread/2,
		Y: p.Spread*p.rng.Float64() - p.Spread/2,
	}
}

// NoisePlacer derives positions from simplex noise sampled at coordinates
// taken from the node key, so the same ids always land on the same spots.
type NoisePlacer struct {
	noise  opensimplex.Noise
	Spread float64
	Scale  float64
}

// NewNoisePlacer creates a NoisePlacer for the given seed.
func NewNoisePlacer(seed int64) *NoisePlacer {
	return &NoisePlacer{
		noise:  opensimplex.New(seed),
		Spread: DefaultSpread,
		Scale:  0.37,
	}
}

// Place samples two decorrelated noise fields.
func (p *NoisePlacer) Place(key uint64) Vector2 {
	a := float64(key&0xfff) * p.Scale
	b := float64((key>>12)&0xfff) * p.Scale
	c := float64((key>>24)&0xfff) * p.Scale

	half := p.Spread / 2
	return Vector2{
		X: p.noise.Eval3(a, b, c) * half,
		Y: p.noise.Eval3(b+101.3, c+57.1, a+13.7) * half,
	}
}
