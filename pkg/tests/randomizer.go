package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	Intn    func(n int) int
}

func NewRandomizer() Randomizer {
	return NewSeededRandomizer(time.Now().Unix())
}

func NewSeededRandomizer(seed int64) Randomizer {
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Intn:    random.Intn,
	}
}

// Choice returns one of options.
func (r Randomizer) Choice(options ...string) string {
	return options[r.Intn(len(options))]
}

// Between returns a value in [lo, hi).
func (r Randomizer) Between(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
