package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a sine burst with a linear attack and release so it does not click.
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
	ramp     int
	rate     beep.SampleRate
}

// NewTone returns a finite sine streamer of the given frequency and duration.
func NewTone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)
	ramp := rate.N(5 * time.Millisecond)
	if ramp*2 > n {
		ramp = n / 2
	}
	return &tone{
		freq:     freq,
		duration: n,
		ramp:     ramp,
		rate:     rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}

		val := 0.3 * t.envelope() * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope returns the gain in [0, 1] for the current sample.
func (t *tone) envelope() float64 {
	if t.ramp == 0 {
		return 1
	}
	if t.position < t.ramp {
		return float64(t.position) / float64(t.ramp)
	}
	if left := t.duration - t.position; left < t.ramp {
		return float64(left) / float64(t.ramp)
	}
	return 1
}
