package engine

const (
	frameWindowSize = 30
	minFPSSamples   = 5
	maxReportedFPS  = 144
)

// FrameTimer converts successive frame timestamps into a smoothed
// frames-per-second estimate over a sliding window of inter-frame deltas.
type FrameTimer struct {
	deltas []float64
	last   float64
}

// Record observes a frame timestamp in milliseconds on a monotonic
// clock. Deltas outside (0, 1000) ms are discarded so that a paused
// session or a clock hiccup does not pollute the average; the last
// timestamp is updated regardless.
func (t *FrameTimer) Record(timestamp float64) {
	if t.last > 0 {
		delta := timestamp - t.last
		if delta > 0 && delta < 1000 {
			if len(t.deltas) >= frameWindowSize {
				t.deltas = t.deltas[1:]
			}
			t.deltas = append(t.deltas, delta)
		}
	}
	t.last = timestamp
}

// FPS reports the smoothed frame rate. It returns 0 until at least 5
// deltas have been recorded, and never reports above 144 so that a
// near-zero average cannot produce an implausible instantaneous rate.
func (t *FrameTimer) FPS() float64 {
	if len(t.deltas) < minFPSSamples {
		return 0
	}
	sum := 0.0
	for _, d := range t.deltas {
		sum += d
	}
	avg := sum / float64(len(t.deltas))
	if avg <= 0 {
		return 0
	}
	fps := 1000 / avg
	if fps > maxReportedFPS {
		return maxReportedFPS
	}
	return fps
}
