package wave

import "time"

// frameStats keeps the most recent frame intervals in a fixed ring.
type frameStats struct {
	buf  []time.Duration
	w    int // write position
	len  int // current fill level
	last time.Time
}

func newFrameStats(size int) *frameStats {
	return &frameStats{buf: make([]time.Duration, size)}
}

// record notes a frame drawn at now.
func (s *frameStats) record(now time.Time) {
	if !s.last.IsZero() {
		s.buf[s.w] = now.Sub(s.last)
		s.w = (s.w + 1) % len(s.buf)
		if s.len < len(s.buf) {
			s.len++
		}
	}
	s.last = now
}

// fps is the average frame rate over the recorded window.
func (s *frameStats) fps() float64 {
	if s.len == 0 {
		return 0
	}
	var total time.Duration
	for i := range s.len {
		total += s.buf[i]
	}
	if total <= 0 {
		return 0
	}
	return float64(s.len) / total.Seconds()
}

func (s *frameStats) reset() {
	s.w = 0
	s.len = 0
	s.last = time.Time{}
}

// Stats summarises recent rendering.
type Stats struct {
	Frames uint64
	FPS    float64
}
