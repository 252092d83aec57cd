package audio

import "math/rand"

// ClickSource generates a stereo test signal: a unit click every period
// frames, alternating sides, followed by a short decaying noise burst.
type ClickSource struct {
	period int
	burst  int
	pos    int
	count  int
	rng    *rand.Rand
}

// NewClickSource returns a source clicking every period frames. A
// non-positive period falls back to one second at 48 kHz.
func NewClickSource(period int, seed int64) *ClickSource {
	if period <= 0 {
		period = 48000
	}
	return &ClickSource{
		period: period,
		burst:  min(period/8, 2048),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Fill writes the next len(left) frames. right must be at least as long.
func (s *ClickSource) Fill(left, right []float32) {
	for i := range left {
		var l, r float32
		switch {
		case s.pos == 0:
			l, r = 1, 0
			if s.count%2 == 1 {
				l, r = 0, 1
			}
		case s.pos < s.burst:
			env := 1 - float32(s.pos)/float32(s.burst)
			n := (s.rng.Float32()*2 - 1) * 0.25 * env * env
			l, r = n, n
		}
		left[i], right[i] = l, r

		s.pos++
		if s.pos >= s.period {
			s.pos = 0
			s.count++
		}
	}
}
