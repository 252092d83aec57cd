package reverb

import "math"

// lfoDepthSamples is the modulation swing in samples at depth 1.
const lfoDepthSamples = 128

// lfo is a sine oscillator whose phase advances by 3*speed samples per call.
// One cycle spans sampleRate phase units.
type lfo struct {
	phase      float32
	sampleRate float32
}

func (l *lfo) next(speed, depth float32) float32 {
	mod := float32(math.Sin(2*math.Pi*float64(l.phase/l.sampleRate))) * lfoDepthSamples * depth

	l.phase += 3 * speed
	if l.phase >= l.sampleRate {
		l.phase -= l.sampleRate
	} else if l.phase < 0 {
		l.phase += l.sampleRate
	}
	return mod
}

func (l *lfo) reset() { l.phase = 0 }
