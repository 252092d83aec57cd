package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/delay"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/filter/allpass"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/filter/onepole"
)

var (
	// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("reverb: sample rate must be > 0 and finite")
	// ErrTapOverrun is returned when an output tap would read past its buffer.
	ErrTapOverrun = errors.New("reverb: output tap exceeds buffer")
)

const (
	// referenceRate is the rate the output tap table was measured at.
	referenceRate = 29761

	tapGain = 0.6

	modHeadroom = 128

	diffusion1BaseLeft  = 2 * 995
	diffusion1BaseRight = 2 * 1345
)

type tapKind int

const (
	tapLine tapKind = iota
	tapDiffuser
)

// outputTap reads one signed contribution from a tank buffer at
// 2*size*base*ratio samples behind its cursor.
type outputTap struct {
	label string
	kind  tapKind
	line  *delay.Line[float32]
	ap    *allpass.Diffuser[float32]
	base  float32
	gain  float32
}

func (o *outputTap) capacity() int {
	if o.kind == tapDiffuser {
		return o.ap.Len()
	}
	return o.line.Len()
}

func (o *outputTap) read(offset float32) float32 {
	if o.kind == tapDiffuser {
		return o.ap.Tap(offset)
	}
	return o.line.ReadOffset(offset)
}

// tankSide is one channel of the figure-eight loop.
type tankSide struct {
	modAP   *allpass.Diffuser[float32]
	modBase float32
	delay1  *delay.Line[float32]
	damping onepole.Filter[float32]
	decayAP *allpass.Diffuser[float32]
	delay2  *delay.Line[float32]
	taps    [7]outputTap
}

func newTankSide(modBase, decayAPLen, delay1Len, delay2Len int) (*tankSide, error) {
	modAP, err := allpass.NewWithGains[float32](modBase+modHeadroom, 0.7, -0.7)
	if err != nil {
		return nil, err
	}
	decayAP, err := allpass.NewWithGains[float32](decayAPLen, -0.5, 0.5)
	if err != nil {
		return nil, err
	}
	d1, err := delay.New[float32](delay1Len)
	if err != nil {
		return nil, err
	}
	d2, err := delay.New[float32](delay2Len)
	if err != nil {
		return nil, err
	}
	return &tankSide{
		modAP:   modAP,
		modBase: float32(modBase),
		delay1:  d1,
		decayAP: decayAP,
		delay2:  d2,
	}, nil
}

// process runs one side for one sample. cross is the other side's delay2.
func (s *tankSide) process(in, mod, size, decay, damping float32, cross *delay.Line[float32]) {
	x := s.modAP.Process(in, size*s.modBase-1+mod) +
		decay*cross.ReadOffset(size*float32(cross.Len())-1)
	s.delay1.Write(x)
	x = s.delay1.ReadOffset(size*float32(s.delay1.Len()) - 1)
	x = s.damping.Process(x, 1-damping, damping)
	x = s.decayAP.Process(x*decay, size*float32(s.decayAP.Len())-1)
	s.delay2.Write(x)
}

func (s *tankSide) output(size, ratio float32) float32 {
	var out float32
	for i := range s.taps {
		tp := &s.taps[i]
		out += tp.gain * tp.read(2*size*tp.base*ratio)
	}
	return out
}

func (s *tankSide) reset() {
	s.modAP.Reset()
	s.delay1.Reset()
	s.damping.Reset()
	s.decayAP.Reset()
	s.delay2.Reset()
}

// Tank is the recirculating core of the plate: both channels, their
// cross-feed and the modulation oscillator.
type Tank struct {
	left, right *tankSide
	mod         lfo
	sampleRate  float64
	ratio       float32
}

// NewTank allocates every tank buffer and calibrates for sampleRate.
func NewTank(sampleRate float64) (*Tank, error) {
	left, err := newTankSide(diffusion1BaseLeft, 2*2667, 2*6598, 2*5512)
	if err != nil {
		return nil, fmt.Errorf("reverb: left tank: %w", err)
	}
	right, err := newTankSide(diffusion1BaseRight, 2*3935, 2*6248, 2*4687)
	if err != nil {
		return nil, fmt.Errorf("reverb: right tank: %w", err)
	}

	l, r := left, right
	l.taps = [7]outputTap{
		lineTap("delay1R@266", r.delay1, 266, tapGain),
		lineTap("delay1R@2974", r.delay1, 2974, tapGain),
		diffuserTap("decayR@1913", r.decayAP, 1913, -tapGain),
		lineTap("delay2R@1996", r.delay2, 1996, tapGain),
		lineTap("delay1L@1990", l.delay1, 1990, -tapGain),
		diffuserTap("decayL@187", l.decayAP, 187, -tapGain),
		lineTap("delay2L@1066", l.delay2, 1066, -tapGain),
	}
	r.taps = [7]outputTap{
		lineTap("delay1L@353", l.delay1, 353, tapGain),
		lineTap("delay1L@3627", l.delay1, 3627, tapGain),
		diffuserTap("decayL@1228", l.decayAP, 1228, -tapGain),
		lineTap("delay2L@2673", l.delay2, 2673, tapGain),
		lineTap("delay2R@2111", r.delay2, 2111, -tapGain),
		diffuserTap("decayR@335", r.decayAP, 335, -tapGain),
		lineTap("delay2R@121", r.delay2, 121, -tapGain),
	}

	t := &Tank{left: left, right: right}
	if err := t.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return t, nil
}

func lineTap(label string, line *delay.Line[float32], base, gain float32) outputTap {
	return outputTap{label: label, kind: tapLine, line: line, base: base, gain: gain}
}

func diffuserTap(label string, ap *allpass.Diffuser[float32], base, gain float32) outputTap {
	return outputTap{label: label, kind: tapDiffuser, ap: ap, base: base, gain: gain}
}

// SetSampleRate recalibrates the LFO period and the output tap ratio.
// Buffer contents are kept.
func (t *Tank) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	t.sampleRate = sampleRate
	t.mod.sampleRate = float32(sampleRate)
	t.ratio = float32(sampleRate) / referenceRate
	return nil
}

// SampleRate returns the calibrated rate in Hz.
func (t *Tank) SampleRate() float64 { return t.sampleRate }

// Process runs one sample of diffused mono input through both channels and
// returns the stereo taps. size must already be smoothed by the caller.
func (t *Tank) Process(in, size, decay, damping, speed, depth float32) (outL, outR float32) {
	mod := t.mod.next(speed, depth)

	// The right side reads the left delay2 after it was written this tick.
	t.left.process(in, mod, size, decay, damping, t.right.delay2)
	t.right.process(in, mod, size, decay, damping, t.left.delay2)

	return t.left.output(size, t.ratio), t.right.output(size, t.ratio)
}

// CheckTapBounds reports ErrTapOverrun for the first output tap whose
// offset at the given size reaches past its buffer. Overrunning taps read
// unspecified content but never fault.
func (t *Tank) CheckTapBounds(size float32) error {
	for _, side := range [...]*tankSide{t.left, t.right} {
		for i := range side.taps {
			tp := &side.taps[i]
			off := 2 * size * tp.base * t.ratio
			if c := tp.capacity(); off >= float32(c) {
				return fmt.Errorf("%w: %s at %.0f Hz needs %.0f samples, has %d",
					ErrTapOverrun, tp.label, t.sampleRate, off, c)
			}
		}
	}
	return nil
}

// Reset clears every buffer, the damping filters and the LFO phase.
func (t *Tank) Reset() {
	t.left.reset()
	t.right.reset()
	t.mod.reset()
}
