// Package lander binds control chromosomes to simulated flights and scores them
package lander

import (
	"math/rand/v2"

	"github.com/lixenwraith/lander/genetic"
	"github.com/lixenwraith/lander/physics"
)

// Gene is one tick of raw control deltas
// Values outside the per-tick limits are legal; accumulation clamps them
type Gene struct {
	Rotate int `json:"rotate" msgpack:"r"`
	Power  int `json:"power" msgpack:"p"`
}

// Chromosome is a fixed-length control sequence
type Chromosome []Gene

// RandomGene draws a gene uniformly from the legal per-tick delta range
func RandomGene(l physics.Limits) func(rng *rand.Rand) Gene {
	return func(rng *rand.Rand) Gene {
		return Gene{
			Rotate: rng.IntN(2*l.Rotate.MaxDelta+1) - l.Rotate.MaxDelta,
			Power:  rng.IntN(2*l.Power.MaxDelta+1) - l.Power.MaxDelta,
		}
	}
}

// RandomChromosome builds an initializer for chromosomes of the given length
func RandomChromosome(length int, l physics.Limits) genetic.InitializerFunc[Chromosome] {
	sample := RandomGene(l)
	return func(rng *rand.Rand) Chromosome {
		c := make(Chromosome, length)
		for i := range c {
			c[i] = sample(rng)
		}
		return c
	}
}

// Angles and Thrusts split a chromosome into per-control series
func (c Chromosome) Angles() []int {
	out := make([]int, len(c))
	for i, g := range c {
		out[i] = g.Rotate
	}
	return out
}

func (c Chromosome) Thrusts() []int {
	out := make([]int, len(c))
	for i, g := range c {
		out[i] = g.Power
	}
	return out
}
