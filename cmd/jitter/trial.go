package main

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/input"
	"github.com/pthm-cable/tilestep/sim"
)

// trialConfig describes one randomized run.
type trialConfig struct {
	Seed     uint64
	Moves    int
	DtMin    float64
	DtMax    float64
	MaxTicks int64 // safety cap so a broken build cannot spin forever
}

// trialResult holds the outcome of one run.
type trialResult struct {
	Seed             uint64  `csv:"seed"`
	Moves            int     `csv:"moves"`
	Ticks            int64   `csv:"ticks"`
	Completed        bool    `csv:"completed"`
	DriftX           float64 `csv:"drift_x"`
	DriftZ           float64 `csv:"drift_z"`
	HeadingErr       float64 `csv:"heading_err"`
	TicksPerMoveMean float64 `csv:"ticks_per_move_mean"`
	TicksPerMoveStd  float64 `csv:"ticks_per_move_std"`
}

// MaxDrift returns the largest positional error of the run, in tiles.
func (r trialResult) MaxDrift() float64 {
	return math.Max(math.Abs(r.DriftX), math.Abs(r.DriftZ))
}

// randomHeadings draws n headings from rng.
func randomHeadings(rng *rand.Rand, n int) []components.Heading {
	hs := make([]components.Heading, n)
	for i := range hs {
		hs[i] = components.Heading(rng.IntN(components.HeadingCount))
	}
	return hs
}

// runTrial drives a fresh sim through a random script with jittered step sizes
// and compares where the actor ended up with where whole-tile moves should put it.
func runTrial(params sim.Params, tc trialConfig) trialResult {
	rng := rand.New(rand.NewPCG(tc.Seed, tc.Seed^0x9e3779b97f4a7c15))
	headings := randomHeadings(rng, tc.Moves)
	script := input.NewScript(headings...)

	s := sim.New(params)

	var ticksPerMove []float64
	var moveTicks int
	for s.Tick() < tc.MaxTicks {
		dt := float32(tc.DtMin + rng.Float64()*(tc.DtMax-tc.DtMin))
		ev := s.Step(dt, script.Current())
		if ev.MoveStarted {
			script.Advance()
			moveTicks = 0
		}
		moveTicks++
		if ev.MoveFinished {
			ticksPerMove = append(ticksPerMove, float64(moveTicks))
		}

		snap := s.Snapshot()
		if script.Done() && !snap.Moving && !snap.Turning {
			break
		}
	}

	snap := s.Snapshot()
	res := trialResult{
		Seed:      tc.Seed,
		Moves:     tc.Moves,
		Ticks:     s.Tick(),
		Completed: script.Done() && !snap.Moving && !snap.Turning,
	}

	var wantX, wantZ float64
	for _, h := range headings {
		switch h {
		case components.Right:
			wantX++
		case components.Left:
			wantX--
		case components.Down:
			wantZ++
		case components.Up:
			wantZ--
		}
	}
	res.DriftX = float64(snap.Offset.X) - wantX
	res.DriftZ = float64(snap.Offset.Z) - wantZ

	if len(headings) > 0 {
		last := headings[len(headings)-1]
		res.HeadingErr = math.Abs(float64(snap.Heading - last.Angle()))
	}

	if len(ticksPerMove) > 0 {
		res.TicksPerMoveMean, res.TicksPerMoveStd = stat.MeanStdDev(ticksPerMove, nil)
	}
	return res
}
