package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/config"
	"github.com/pthm-cable/tilestep/input"
	"github.com/pthm-cable/tilestep/telemetry"
)

const pi = float32(math.Pi)

func testParams() Params {
	return Params{
		TileDuration: 0.4,
		TurnRate:     1.5 * pi,
		Spawn: components.Spawn{
			Position: components.Position{X: -7.5, Y: 0.5, Z: 8.5},
			Heading:  components.Up.Angle(),
		},
	}
}

func approx(a, b, tol float32) bool {
	d := a - b
	return d <= tol && d >= -tol
}

func TestParamsFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p, err := ParamsFromConfig(cfg)
	if err != nil {
		t.Fatalf("building params: %v", err)
	}
	if p.TileDuration != float32(0.4) {
		t.Errorf("expected tile duration 0.4, got %f", p.TileDuration)
	}
	if p.Spawn.Heading != components.Up.Angle() {
		t.Errorf("expected spawn heading %f, got %f", components.Up.Angle(), p.Spawn.Heading)
	}
	if p.Spawn.Position != (components.Position{X: -7.5, Y: 0.5, Z: 8.5}) {
		t.Errorf("unexpected spawn position %+v", p.Spawn.Position)
	}
}

func TestSim_SpawnSnapshot(t *testing.T) {
	s := New(testParams())
	snap := s.Snapshot()

	if snap.Position != (components.Position{X: -7.5, Y: 0.5, Z: 8.5}) {
		t.Errorf("unexpected spawn position %+v", snap.Position)
	}
	if snap.Offset != (components.Position{}) {
		t.Errorf("expected zero offset at spawn, got %+v", snap.Offset)
	}
	if snap.Facing != components.Up {
		t.Errorf("expected facing up, got %v", snap.Facing)
	}
	if snap.Moving || snap.Turning {
		t.Error("expected idle actor at spawn")
	}
}

func TestSim_LeftScenario(t *testing.T) {
	s := New(testParams())

	ev := s.Step(10, input.State{Left: true})
	if !ev.MoveStarted || !ev.TurnStarted {
		t.Errorf("expected move and turn to start, got %+v", ev)
	}
	if !ev.MoveFinished || !ev.TurnFinished {
		t.Errorf("expected move and turn to finish within 10s, got %+v", ev)
	}
	if ev.Heading != components.Left {
		t.Errorf("expected left move, got %v", ev.Heading)
	}

	snap := s.Snapshot()
	if snap.Offset.X != -1 {
		t.Errorf("expected x offset -1, got %f", snap.Offset.X)
	}
	if snap.Heading != pi {
		t.Errorf("expected heading pi, got %f", snap.Heading)
	}
	if snap.Moving || snap.Turning {
		t.Error("expected both intents removed")
	}
}

func TestSim_FrameByFrame(t *testing.T) {
	s := New(testParams())

	// First frame resolves and partially applies the move
	ev := s.Step(1.0/120, input.State{Right: true})
	if !ev.MoveStarted {
		t.Fatal("expected move to start")
	}

	finished := false
	for i := 0; i < 200 && !finished; i++ {
		ev = s.Step(1.0/120, input.State{})
		finished = ev.MoveFinished
	}
	if !finished {
		t.Fatal("move never finished")
	}

	snap := s.Snapshot()
	if !approx(snap.Position.X, -6.5, 1e-5) {
		t.Errorf("expected x -6.5, got %f", snap.Position.X)
	}
	if snap.Position.Z != 8.5 {
		t.Errorf("expected z untouched, got %f", snap.Position.Z)
	}
	// Right is a quarter turn from up, 1/3 s at 1.5pi rad/s: finished before the move
	if snap.Turning || snap.Heading != 0 {
		t.Errorf("expected heading 0 with turn done, got %f (turning=%v)", snap.Heading, snap.Turning)
	}
}

func TestSim_IgnoredPressWhileMoving(t *testing.T) {
	s := New(testParams())

	s.Step(0.1, input.State{Up: true})
	ev := s.Step(0.1, input.State{Down: true})
	if !ev.IgnoredPress {
		t.Error("expected press during a move to be reported as ignored")
	}
	if ev.MoveStarted {
		t.Error("expected no new move while moving")
	}

	snap := s.Snapshot()
	if snap.MoveHeading != components.Up {
		t.Errorf("expected move heading to stay up, got %v", snap.MoveHeading)
	}
	if !approx(snap.Remaining, 0.5, 1e-6) {
		t.Errorf("expected 0.5 tiles remaining, got %f", snap.Remaining)
	}
}

func TestSim_NegativeDtClamped(t *testing.T) {
	s := New(testParams())
	s.Step(0.1, input.State{Up: true})
	before := s.Snapshot()

	s.Step(-1, input.State{})
	after := s.Snapshot()

	if after.Position != before.Position {
		t.Errorf("expected no movement for negative dt, got %+v -> %+v", before.Position, after.Position)
	}
	if after.Tick != before.Tick+1 {
		t.Errorf("expected tick to advance, got %d -> %d", before.Tick, after.Tick)
	}
}

func TestSim_Reset(t *testing.T) {
	s := New(testParams())
	s.Step(0.2, input.State{Down: true})

	snap := s.Snapshot()
	if !snap.Moving || !snap.Turning {
		t.Fatalf("expected move and half turn in flight, got %+v", snap)
	}

	s.Reset()
	snap = s.Snapshot()
	if snap.Moving || snap.Turning {
		t.Error("expected reset to cancel intents")
	}
	if snap.Offset != (components.Position{}) {
		t.Errorf("expected actor back on spawn, got offset %+v", snap.Offset)
	}
	if snap.Heading != components.Up.Angle() {
		t.Errorf("expected spawn heading, got %f", snap.Heading)
	}

	// The actor accepts input again
	if ev := s.Step(0.1, input.State{Left: true}); !ev.MoveStarted {
		t.Error("expected a move to start after reset")
	}
}

func TestSim_Selection(t *testing.T) {
	s := New(testParams())
	if s.Selected() {
		t.Fatal("expected actor unselected at spawn")
	}

	s.SetSelected(true)
	s.SetSelected(true)
	if !s.Selected() || !s.Snapshot().Selected {
		t.Error("expected actor selected")
	}

	s.SetSelected(false)
	if s.Selected() {
		t.Error("expected actor unselected")
	}
}

func TestSim_TelemetryRecording(t *testing.T) {
	s := New(testParams())
	collector := telemetry.NewCollector(100)
	perf := telemetry.NewPerfCollector(10)
	s.AttachTelemetry(collector, perf)

	// One full move of 4 steps, then a held press that is ignored until it lands
	s.Step(0.1, input.State{Left: true})
	s.Step(0.1, input.State{Left: true})
	s.Step(0.1, input.State{})
	s.Step(0.1, input.State{})

	stats := collector.Flush()
	if stats.Steps != 4 {
		t.Errorf("expected 4 steps, got %d", stats.Steps)
	}
	if stats.MovesStarted != 1 || stats.MovesFinished != 1 {
		t.Errorf("expected 1 move started and finished, got %d/%d", stats.MovesStarted, stats.MovesFinished)
	}
	if stats.TurnsStarted != 1 || stats.TurnsFinished != 1 {
		t.Errorf("expected 1 turn started and finished, got %d/%d", stats.TurnsStarted, stats.TurnsFinished)
	}
	if stats.IgnoredPresses != 1 {
		t.Errorf("expected 1 ignored press, got %d", stats.IgnoredPresses)
	}
	if stats.TicksPerMoveMean != 4 {
		t.Errorf("expected 4 ticks per move, got %f", stats.TicksPerMoveMean)
	}

	if _, ok := perf.Stats().PhaseAvg[telemetry.PhaseTranslation]; !ok {
		t.Error("expected translation phase to be timed")
	}
}

func TestSim_ScriptDrivesMoves(t *testing.T) {
	s := New(testParams())
	script, err := input.ParseScript("LLUR")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000 && !script.Done(); i++ {
		if ev := s.Step(0.05, script.Current()); ev.MoveStarted {
			script.Advance()
		}
	}
	for i := 0; i < 100 && s.Snapshot().Moving; i++ {
		s.Step(0.05, input.State{})
	}

	snap := s.Snapshot()
	if !approx(snap.Offset.X, -1, 1e-5) || !approx(snap.Offset.Z, -1, 1e-5) {
		t.Errorf("expected offset (-1, -1), got (%f, %f)", snap.Offset.X, snap.Offset.Z)
	}
}

func TestSnapshot_TraceRecord(t *testing.T) {
	s := New(testParams())
	s.Step(0.1, input.State{Down: true})

	rec := s.Snapshot().TraceRecord(0.1)
	if rec.Tick != 1 || rec.Dt != 0.1 {
		t.Errorf("unexpected tick/dt %d/%f", rec.Tick, rec.Dt)
	}
	if !rec.Moving || !rec.Turning {
		t.Errorf("expected moving and turning, got %+v", rec)
	}
	if rec.Target != components.Down.Angle() {
		t.Errorf("expected target %f, got %f", components.Down.Angle(), rec.Target)
	}
}

func TestSim_RestoreResumesMove(t *testing.T) {
	orig := New(testParams())
	orig.Step(0.1, input.State{Left: true})
	mid := orig.Snapshot()
	if !mid.Moving || !mid.Turning {
		t.Fatalf("expected move and turn in flight, got %+v", mid)
	}

	resumed := New(testParams())
	if err := resumed.Restore(mid.ActorState(), mid.Tick); err != nil {
		t.Fatalf("restoring: %v", err)
	}
	if got := resumed.Snapshot(); got != mid {
		t.Errorf("expected restored snapshot %+v, got %+v", mid, got)
	}

	orig.Step(10, input.State{})
	resumed.Step(10, input.State{})
	a, b := orig.Snapshot(), resumed.Snapshot()
	if a != b {
		t.Errorf("expected identical state after resume, got %+v vs %+v", a, b)
	}
	if b.Moving || b.Turning {
		t.Error("expected move and turn finished after resume")
	}
	if b.Heading != pi {
		t.Errorf("expected heading π, got %f", b.Heading)
	}
}

func TestSim_RestoreRejectsInvalidState(t *testing.T) {
	tests := []struct {
		name string
		st   telemetry.ActorState
	}{
		{name: "bad heading", st: telemetry.ActorState{Moving: true, MoveHeading: 7, Remaining: 0.5}},
		{name: "zero remaining", st: telemetry.ActorState{Moving: true, Remaining: 0}},
		{name: "remaining above one", st: telemetry.ActorState{Moving: true, Remaining: 1.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(testParams())
			if err := s.Restore(tc.st, 3); err == nil {
				t.Error("expected error, got nil")
			}
			if s.Tick() != 0 {
				t.Errorf("expected tick untouched on error, got %d", s.Tick())
			}
		})
	}
}

func TestSim_RestoreKeepsTelemetryOnSimClock(t *testing.T) {
	s := New(testParams())
	collector := telemetry.NewCollector(0.1)
	s.AttachTelemetry(collector, nil)

	if err := s.Restore(s.Snapshot().ActorState(), 1000); err != nil {
		t.Fatalf("restoring: %v", err)
	}
	for i := 0; i < 5; i++ {
		s.Step(0.025, input.State{})
	}

	stats := collector.Flush()
	if stats.WindowStartTick != 1000 {
		t.Errorf("expected window start tick 1000, got %d", stats.WindowStartTick)
	}
	if stats.WindowEndTick != s.Tick() {
		t.Errorf("expected window end tick %d, got %d", s.Tick(), stats.WindowEndTick)
	}
	if stats.Steps != 5 {
		t.Errorf("expected 5 steps in window, got %d", stats.Steps)
	}
}

func TestSim_AttachTelemetryAfterRestore(t *testing.T) {
	s := New(testParams())
	if err := s.Restore(s.Snapshot().ActorState(), 40); err != nil {
		t.Fatal(err)
	}
	collector := telemetry.NewCollector(1)
	s.AttachTelemetry(collector, nil)
	s.Step(0.1, input.State{})

	if collector.Tick() != s.Tick() {
		t.Errorf("expected collector tick %d, got %d", s.Tick(), collector.Tick())
	}
}
