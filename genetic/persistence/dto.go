package persistence

import (
	"time"

	"github.com/lixenwraith/lander/genetic"
)

// PopulationDTO is the serializable population state
type PopulationDTO[S any] struct {
	RunID      string            `msgpack:"run_id"`
	Generation int               `msgpack:"generation"`
	Seed       uint64            `msgpack:"seed"`
	SavedAt    time.Time         `msgpack:"saved_at"`
	Candidates []CandidateDTO[S] `msgpack:"candidates"`
}

// CandidateDTO is a serializable candidate
type CandidateDTO[S any] struct {
	Genes S       `msgpack:"genes"`
	Score float64 `msgpack:"score"`
	// Label is a caller-defined tag such as the flight outcome
	Label string `msgpack:"label,omitempty"`
}

// FromPool converts an evaluated pool to a DTO
// label may be nil
func FromPool[S genetic.Solution, F genetic.Numeric](pool *genetic.Pool[S, F], label func(index int) string) PopulationDTO[S] {
	if pool == nil {
		return PopulationDTO[S]{}
	}

	dto := PopulationDTO[S]{
		Generation: pool.Generation,
		Candidates: make([]CandidateDTO[S], len(pool.Members)),
	}

	for i, m := range pool.Members {
		dto.Candidates[i] = CandidateDTO[S]{
			Genes: m.Data,
			Score: float64(m.Score),
		}
		if label != nil {
			dto.Candidates[i].Label = label(i)
		}
	}

	return dto
}

// Best returns the highest scoring candidate, lowest index on ties
func (dto PopulationDTO[S]) Best() (CandidateDTO[S], bool) {
	if len(dto.Candidates) == 0 {
		return CandidateDTO[S]{}, false
	}
	best := dto.Candidates[0]
	for _, c := range dto.Candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, true
}
