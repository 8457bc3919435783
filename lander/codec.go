package lander

import "github.com/lixenwraith/lander/physics"

// Codec decodes delta chromosomes into absolute command plans
type Codec struct {
	Limits  physics.Limits
	Initial physics.Command
}

// Decode accumulates genes into legal absolute commands
func (c Codec) Decode(ch Chromosome) []physics.Command {
	cmds := make([]physics.Command, len(ch))
	prev := c.Initial
	for i, g := range ch {
		prev = c.Limits.Accumulate(prev, g.Rotate, g.Power)
		cmds[i] = prev
	}
	return cmds
}
