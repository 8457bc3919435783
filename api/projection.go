package api

import (
	"github.com/lixenwraith/lander/lander"
	"github.com/lixenwraith/lander/physics"
	"github.com/lixenwraith/lander/solver"
	"github.com/lixenwraith/lander/terrain"
	"github.com/lixenwraith/lander/vmath"
)

// ZoneView is the landing zone as served to clients
type ZoneView struct {
	X0 float64 `json:"x0" msgpack:"x0"`
	X1 float64 `json:"x1" msgpack:"x1"`
	Y  float64 `json:"y" msgpack:"y"`
}

type TerrainView struct {
	Points      [][2]float64 `json:"points" msgpack:"points"`
	LandingZone ZoneView     `json:"landingZone" msgpack:"landingZone"`
	Ceiling     float64      `json:"ceiling" msgpack:"ceiling"`
}

// Commands splits a command series into per-control columns
type Commands struct {
	Angles  []int `json:"angles" msgpack:"angles"`
	Thrusts []int `json:"thrusts" msgpack:"thrusts"`
}

// Telemetry holds one column per state component, initial state first
type Telemetry struct {
	VX    []float64 `json:"vx" msgpack:"vx"`
	VY    []float64 `json:"vy" msgpack:"vy"`
	Fuel  []float64 `json:"fuel" msgpack:"fuel"`
	Angle []int     `json:"angle" msgpack:"angle"`
	Power []int     `json:"power" msgpack:"power"`
}

type RouteView struct {
	Positions           [][2]float64 `json:"positions" msgpack:"positions"`
	FlightOutcome       string       `json:"flightOutcome" msgpack:"flightOutcome"`
	Reason              string       `json:"reason,omitempty" msgpack:"reason,omitempty"`
	Commands            Commands     `json:"commands" msgpack:"commands"`
	AccumulatedCommands Commands     `json:"accumulatedCommands" msgpack:"accumulatedCommands"`
}

type PopulationView struct {
	GenerationID int         `json:"generationId" msgpack:"generationId"`
	RunID        string      `json:"runId" msgpack:"runId"`
	State        string      `json:"state" msgpack:"state"`
	Routes       []RouteView `json:"routes" msgpack:"routes"`
	Fitness      []float64   `json:"fitness" msgpack:"fitness"`
	BestIndex    int         `json:"bestIndex" msgpack:"bestIndex"`
	SolvedIndex  int         `json:"solvedIndex" msgpack:"solvedIndex"`
}

// RouteDetail is the full projection of one route
type RouteDetail struct {
	GenerationID int                `json:"generationId" msgpack:"generationId"`
	Index        int                `json:"index" msgpack:"index"`
	Fitness      float64            `json:"fitness" msgpack:"fitness"`
	Ticks        int                `json:"ticks" msgpack:"ticks"`
	Telemetry    Telemetry          `json:"telemetry" msgpack:"telemetry"`
	Summary      map[string]float64 `json:"summary" msgpack:"summary"`
	RouteView
}

type NextView struct {
	Solved       bool   `json:"solved"`
	GenerationID int    `json:"generationId"`
	State        string `json:"state"`
}

func newTerrainView(t *terrain.Terrain) TerrainView {
	z := t.LandingZone()
	return TerrainView{
		Points:      pairs(t.Points()),
		LandingZone: ZoneView{X0: z.X0, X1: z.X1, Y: z.Y},
		Ceiling:     t.Ceiling(),
	}
}

func newPopulationView(pop *solver.Population, state solver.State) PopulationView {
	v := PopulationView{
		GenerationID: pop.Generation,
		RunID:        pop.RunID,
		State:        state.String(),
		Routes:       make([]RouteView, len(pop.Routes)),
		Fitness:      pop.Fitness,
		BestIndex:    pop.BestIndex,
		SolvedIndex:  pop.SolvedIndex,
	}
	for i, r := range pop.Routes {
		v.Routes[i] = newRouteView(r)
	}
	return v
}

func newRouteView(r *lander.Route) RouteView {
	return RouteView{
		Positions:           pairs(r.Positions()),
		FlightOutcome:       r.Outcome.String(),
		Reason:              r.Reason.String(),
		Commands:            Commands{Angles: r.Chromosome.Angles(), Thrusts: r.Chromosome.Thrusts()},
		AccumulatedCommands: columns(r.Accumulated),
	}
}

func newRouteDetail(generation, index int, r *lander.Route) RouteDetail {
	tm := Telemetry{
		VX:    make([]float64, len(r.States)),
		VY:    make([]float64, len(r.States)),
		Fuel:  make([]float64, len(r.States)),
		Angle: make([]int, len(r.States)),
		Power: make([]int, len(r.States)),
	}
	for i, s := range r.States {
		tm.VX[i], tm.VY[i], tm.Fuel[i] = s.VX, s.VY, s.Fuel
		tm.Angle[i], tm.Power[i] = s.Rotate, s.Power
	}

	return RouteDetail{
		GenerationID: generation,
		Index:        index,
		Fitness:      r.Fitness,
		Ticks:        r.Ticks(),
		Telemetry:    tm,
		Summary:      r.Summary.Clone(),
		RouteView:    newRouteView(r),
	}
}

func pairs(pts []vmath.Vec2) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func columns(cmds []physics.Command) Commands {
	c := Commands{Angles: make([]int, len(cmds)), Thrusts: make([]int, len(cmds))}
	for i, cmd := range cmds {
		c.Angles[i], c.Thrusts[i] = cmd.Rotate, cmd.Power
	}
	return c
}
