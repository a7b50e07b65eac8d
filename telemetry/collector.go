// Package telemetry provides step statistics, performance timing and CSV output.
package telemetry

// Collector accumulates motion events within windows of simulated time and produces WindowStats.
// Windows are measured in seconds rather than ticks because graphical hosts step with a
// variable frame time.
type Collector struct {
	windowSec float64

	// Current window tracking
	windowStartTick int64
	windowStartTime float64
	simTime         float64
	tick            int64

	// Per-window samples
	elapsed      []float64 // dt of every step
	ticksPerMove []float64 // steps taken by each completed move

	// Move in progress
	moving    bool
	moveTicks int

	// Event counters for current window
	movesStarted   int
	movesFinished  int
	turnsStarted   int
	turnsFinished  int
	ignoredPresses int
}

// NewCollector creates a new stats collector.
// windowSec: how long each stats window lasts in simulated seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 5
	}
	return &Collector{windowSec: windowSec}
}

// RecordMoveStarted records that a tile step began this tick.
// Call it before RecordStep for the same tick.
func (c *Collector) RecordMoveStarted() {
	c.movesStarted++
	c.moving = true
	c.moveTicks = 0
}

// RecordStep records one simulation step of dt seconds.
func (c *Collector) RecordStep(dt float32) {
	c.tick++
	c.simTime += float64(dt)
	c.elapsed = append(c.elapsed, float64(dt))
	if c.moving {
		c.moveTicks++
	}
}

// RecordMoveFinished records that a tile step landed this tick.
// Call it after RecordStep for the same tick.
func (c *Collector) RecordMoveFinished() {
	c.movesFinished++
	if c.moving {
		c.ticksPerMove = append(c.ticksPerMove, float64(c.moveTicks))
	}
	c.moving = false
	c.moveTicks = 0
}

// RecordTurnStarted records that a turn began.
func (c *Collector) RecordTurnStarted() {
	c.turnsStarted++
}

// RecordTurnFinished records that a turn reached its target heading.
func (c *Collector) RecordTurnFinished() {
	c.turnsFinished++
}

// RecordIgnoredPress records a directional press dropped because a move was in progress.
func (c *Collector) RecordIgnoredPress() {
	c.ignoredPresses++
}

// ShouldFlush returns true if the current window covers enough simulated time.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStartTime >= c.windowSec
}

// Tick returns the number of steps recorded so far.
func (c *Collector) Tick() int64 {
	return c.tick
}

// SetTick moves the step counter to t, e.g. when the simulation resumes from a
// snapshot. The current window restarts at t.
func (c *Collector) SetTick(t int64) {
	c.tick = t
	c.windowStartTick = t
}

// WindowSteps returns the number of steps recorded since the last flush.
func (c *Collector) WindowSteps() int {
	return len(c.elapsed)
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush() WindowStats {
	dt := ComputeSampleStats(c.elapsed)
	perMove := ComputeSampleStats(c.ticksPerMove)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   c.tick,
		SimTimeSec:      c.simTime,
		Steps:           len(c.elapsed),

		MovesStarted:   c.movesStarted,
		MovesFinished:  c.movesFinished,
		TurnsStarted:   c.turnsStarted,
		TurnsFinished:  c.turnsFinished,
		IgnoredPresses: c.ignoredPresses,

		DtMean: dt.Mean,
		DtStd:  dt.Std,
		DtP50:  dt.P50,
		DtP90:  dt.P90,
		DtMax:  dt.Max,

		TicksPerMoveMean: perMove.Mean,
		TicksPerMoveStd:  perMove.Std,
	}

	// Reset for next window; a move in progress carries over
	c.windowStartTick = c.tick
	c.windowStartTime = c.simTime
	c.elapsed = c.elapsed[:0]
	c.ticksPerMove = c.ticksPerMove[:0]
	c.movesStarted = 0
	c.movesFinished = 0
	c.turnsStarted = 0
	c.turnsFinished = 0
	c.ignoredPresses = 0

	return stats
}
