package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
)

func TestCollector_FlushAfterWindow(t *testing.T) {
	c := NewCollector(1.0)

	for i := 0; i < 3; i++ {
		c.RecordStep(0.25)
	}
	if c.ShouldFlush() {
		t.Fatal("should not flush before a full second of sim time")
	}

	c.RecordStep(0.25)
	if !c.ShouldFlush() {
		t.Fatal("expected flush after a full second of sim time")
	}

	if c.WindowSteps() != 4 {
		t.Errorf("expected 4 pending steps, got %d", c.WindowSteps())
	}
	stats := c.Flush()
	if c.WindowSteps() != 0 {
		t.Errorf("expected no pending steps after flush, got %d", c.WindowSteps())
	}
	if stats.Steps != 4 {
		t.Errorf("expected 4 steps, got %d", stats.Steps)
	}
	if stats.DtMean != 0.25 {
		t.Errorf("expected mean dt 0.25, got %f", stats.DtMean)
	}
	if c.ShouldFlush() {
		t.Error("should not flush immediately after a flush")
	}
}

func TestCollector_TicksPerMove(t *testing.T) {
	c := NewCollector(10)

	// Move of 4 steps
	c.RecordMoveStarted()
	c.RecordStep(0.1)
	c.RecordStep(0.1)
	c.RecordStep(0.1)
	c.RecordStep(0.1)
	c.RecordMoveFinished()

	// Idle step, not counted towards any move
	c.RecordStep(0.1)

	// Move of 2 steps
	c.RecordMoveStarted()
	c.RecordStep(0.2)
	c.RecordStep(0.2)
	c.RecordMoveFinished()

	stats := c.Flush()
	if stats.MovesStarted != 2 || stats.MovesFinished != 2 {
		t.Errorf("expected 2 started and 2 finished, got %d and %d", stats.MovesStarted, stats.MovesFinished)
	}
	if stats.TicksPerMoveMean != 3 {
		t.Errorf("expected 3 ticks per move on average, got %f", stats.TicksPerMoveMean)
	}
	if stats.TicksPerMoveStd != 1 {
		t.Errorf("expected std 1, got %f", stats.TicksPerMoveStd)
	}
}

func TestCollector_MoveCarriesOverWindow(t *testing.T) {
	c := NewCollector(10)

	c.RecordMoveStarted()
	c.RecordStep(0.1)
	c.RecordStep(0.1)
	first := c.Flush()
	if first.MovesStarted != 1 || first.MovesFinished != 0 {
		t.Errorf("expected move in progress in first window, got %+v", first)
	}

	c.RecordStep(0.1)
	c.RecordMoveFinished()
	second := c.Flush()
	if second.MovesStarted != 0 || second.MovesFinished != 1 {
		t.Errorf("expected move to finish in second window, got %+v", second)
	}
	if second.TicksPerMoveMean != 3 {
		t.Errorf("expected the carried move to count 3 ticks, got %f", second.TicksPerMoveMean)
	}
}

func TestCollector_EventCountersReset(t *testing.T) {
	c := NewCollector(10)
	c.RecordTurnStarted()
	c.RecordTurnFinished()
	c.RecordIgnoredPress()
	c.RecordIgnoredPress()
	c.RecordStep(0.1)

	stats := c.Flush()
	if stats.TurnsStarted != 1 || stats.TurnsFinished != 1 {
		t.Errorf("expected 1 turn started and finished, got %d and %d", stats.TurnsStarted, stats.TurnsFinished)
	}
	if stats.IgnoredPresses != 2 {
		t.Errorf("expected 2 ignored presses, got %d", stats.IgnoredPresses)
	}

	c.RecordStep(0.1)
	stats = c.Flush()
	if stats.TurnsStarted != 0 || stats.IgnoredPresses != 0 {
		t.Errorf("expected counters to reset, got %+v", stats)
	}
	if stats.WindowStartTick != 1 || stats.WindowEndTick != 2 {
		t.Errorf("expected window [1, 2], got [%d, %d]", stats.WindowStartTick, stats.WindowEndTick)
	}
}

func TestComputeSampleStats(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   SampleStats
	}{
		{
			name:   "empty",
			values: nil,
			want:   SampleStats{},
		},
		{
			name:   "single",
			values: []float64{0.25},
			want:   SampleStats{Mean: 0.25, P50: 0.25, P90: 0.25, Max: 0.25},
		},
		{
			name:   "unsorted",
			values: []float64{4, 2, 1, 3},
			want:   SampleStats{Mean: 2.5, Std: math.Sqrt(1.25), P50: 2, P90: 4, Max: 4},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeSampleStats(tc.values)
			if math.Abs(got.Mean-tc.want.Mean) > 1e-12 {
				t.Errorf("mean: expected %f, got %f", tc.want.Mean, got.Mean)
			}
			if math.Abs(got.Std-tc.want.Std) > 1e-12 {
				t.Errorf("std: expected %f, got %f", tc.want.Std, got.Std)
			}
			if got.P50 != tc.want.P50 || got.P90 != tc.want.P90 || got.Max != tc.want.Max {
				t.Errorf("expected p50/p90/max %v/%v/%v, got %v/%v/%v",
					tc.want.P50, tc.want.P90, tc.want.Max, got.P50, got.P90, got.Max)
			}
		})
	}
}

func TestComputeSampleStats_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeSampleStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil output manager for empty dir")
	}
	// Methods on a nil manager are no-ops
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := om.WriteTrace(TraceRecord{}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir, got %q", om.Dir())
	}
	if om.Tracing() {
		t.Error("nil manager should not trace")
	}
	if err := om.Close(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, true)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}
	if om.Dir() != dir {
		t.Errorf("expected dir %q, got %q", dir, om.Dir())
	}

	for i := int64(1); i <= 3; i++ {
		if err := om.WriteTrace(TraceRecord{Tick: i, Dt: 0.1, Moving: true}); err != nil {
			t.Fatalf("writing trace: %v", err)
		}
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 3, Steps: 3}); err != nil {
		t.Fatalf("writing telemetry: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "trace.csv"))
	if err != nil {
		t.Fatalf("reading trace: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,dt,") {
		t.Errorf("unexpected header %q", lines[0])
	}

	var rows []TraceRecord
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing trace: %v", err)
	}
	if rows[2].Tick != 3 || !rows[2].Moving {
		t.Errorf("unexpected last row %+v", rows[2])
	}
}

func TestOutputManager_NoTraceFile(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, false)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}
	defer om.Close()

	if om.Tracing() {
		t.Error("expected tracing disabled")
	}
	if err := om.WriteTrace(TraceRecord{Tick: 1}); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "trace.csv")); !os.IsNotExist(err) {
		t.Errorf("expected no trace.csv, stat returned %v", err)
	}
}

func TestCollector_SetTick(t *testing.T) {
	c := NewCollector(1.0)
	c.SetTick(500)
	c.RecordStep(0.5)
	c.RecordStep(0.5)

	stats := c.Flush()
	if stats.WindowStartTick != 500 || stats.WindowEndTick != 502 {
		t.Errorf("expected window 500..502, got %d..%d", stats.WindowStartTick, stats.WindowEndTick)
	}
	if c.Tick() != 502 {
		t.Errorf("expected tick 502, got %d", c.Tick())
	}
}
