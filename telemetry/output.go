package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tilestep/config"
)

// TraceRecord is one row of the per-step trace.
type TraceRecord struct {
	Tick      int64   `csv:"tick"`
	Dt        float32 `csv:"dt"`
	X         float32 `csv:"x"`
	Y         float32 `csv:"y"`
	Z         float32 `csv:"z"`
	Heading   float32 `csv:"heading"`
	Moving    bool    `csv:"moving"`
	Turning   bool    `csv:"turning"`
	Remaining float32 `csv:"remaining"`
	Target    float32 `csv:"target"`
}

// csvFile is an output file that writes its header with the first record.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

// write marshals records, including headers only on the first write.
func write[T any](c *csvFile, records []T) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir           string
	telemetryFile *csvFile
	perfFile      *csvFile
	traceFile     *csvFile // nil unless tracing is enabled
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string, trace bool) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	var err error
	if om.telemetryFile, err = createCSV(dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perfFile, err = createCSV(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if trace {
		if om.traceFile, err = createCSV(dir, "trace.csv"); err != nil {
			om.Close()
			return nil, err
		}
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := write(om.telemetryFile, []WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := write(om.perfFile, []PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteTrace writes one step to trace.csv. It is a no-op when tracing is disabled.
func (om *OutputManager) WriteTrace(rec TraceRecord) error {
	if om == nil || om.traceFile == nil {
		return nil
	}
	if err := write(om.traceFile, []TraceRecord{rec}); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Tracing reports whether per-step trace output is enabled.
func (om *OutputManager) Tracing() bool {
	return om != nil && om.traceFile != nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.telemetryFile, om.perfFile, om.traceFile} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
