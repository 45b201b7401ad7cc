package timeutil

import "time"

// Stopwatch measures elapsed time between Start and Stop. Readings taken
// from time.Now carry the monotonic clock, so wall-clock adjustments do not
// affect them. The zero value is ready to use.
type Stopwatch struct {
	// Clock overrides the time source; nil means Now.
	Clock func() time.Time

	running bool
	started time.Time
	elapsed time.Duration
}

// StartNew returns a running stopwatch.
func StartNew() *Stopwatch {
	sw := &Stopwatch{}
	sw.Start()
	return sw
}

func (sw *Stopwatch) now() time.Time {
	if sw.Clock != nil {
		return sw.Clock()
	}
	return Now()
}

// Start begins or resumes measuring. Starting a running stopwatch is a no-op.
func (sw *Stopwatch) Start() {
	if sw.running {
		return
	}
	sw.started = sw.now()
	sw.running = true
}

// Stop pauses measuring and folds the current interval into Elapsed.
func (sw *Stopwatch) Stop() {
	if !sw.running {
		return
	}
	sw.elapsed += sw.now().Sub(sw.started)
	sw.running = false
}

// Reset stops the stopwatch and zeroes the elapsed time.
func (sw *Stopwatch) Reset() {
	sw.running = false
	sw.elapsed = 0
	sw.started = time.Time{}
}

// Restart zeroes the elapsed time and starts measuring again.
func (sw *Stopwatch) Restart() {
	sw.Reset()
	sw.Start()
}

// Running reports whether the stopwatch is measuring.
func (sw *Stopwatch) Running() bool {
	return sw.running
}

// Elapsed returns the total measured time, including the current interval
// when running. It is never negative.
func (sw *Stopwatch) Elapsed() time.Duration {
	d := sw.elapsed
	if sw.running {
		d += sw.now().Sub(sw.started)
	}
	if d < 0 {
		return 0
	}
	return d
}

// ElapsedMilliseconds returns Elapsed in whole milliseconds.
func (sw *Stopwatch) ElapsedMilliseconds() int64 {
	return DurationToMillis(sw.Elapsed())
}
