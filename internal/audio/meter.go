package audio

import (
	"math"
	"sync/atomic"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/core"
)

// Meter publishes the peak level of the most recent block for readers on
// other goroutines.
type Meter struct {
	re, im, pow []float64
	peak        atomic.Uint64 // float64 bits of the peak power
}

// NewMeter preallocates scratch for blocks of up to frames samples.
func NewMeter(frames int) *Meter {
	m := &Meter{}
	m.grow(frames)
	return m
}

func (m *Meter) grow(n int) {
	if n <= len(m.re) {
		return
	}
	m.re = make([]float64, n)
	m.im = make([]float64, n)
	m.pow = make([]float64, n)
}

// Observe measures one stereo block. It allocates only if the block is
// longer than any seen before.
func (m *Meter) Observe(left, right []float32) {
	var peak float64
	for _, ch := range [2][]float32{left, right} {
		m.grow(len(ch))
		re := m.re[:len(ch)]
		for i, v := range ch {
			re[i] = float64(v)
		}
		pow := m.pow[:len(ch)]
		vecmath.Power(pow, re, m.im[:len(ch)])
		for _, p := range pow {
			if p > peak {
				peak = p
			}
		}
	}
	m.peak.Store(math.Float64bits(peak))
}

// Peak returns the last block's peak absolute sample value.
func (m *Meter) Peak() float64 {
	return math.Sqrt(math.Float64frombits(m.peak.Load()))
}

// PeakDB returns Peak in dBFS.
func (m *Meter) PeakDB() float64 {
	return core.PowerToDB(math.Float64frombits(m.peak.Load()))
}
