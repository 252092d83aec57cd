package effects

import (
	"errors"
	"fmt"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/delay"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/smooth"
)

const (
	// DefaultDelayCapacity is the per-channel line length in samples.
	DefaultDelayCapacity = 1024 * 100

	defaultDelayTime = 0.5
)

// ErrInvalidDelayCapacity is returned for a non-positive line capacity.
var ErrInvalidDelayCapacity = errors.New("effects: delay capacity must be > 0")

// DelayOption mutates ping-pong delay construction parameters.
type DelayOption func(*delayConfig) error

type delayConfig struct {
	capacity    int
	interpolate bool
	rampStep    float32
}

func defaultDelayConfig() delayConfig {
	return delayConfig{
		capacity: DefaultDelayCapacity,
		rampStep: smooth.DefaultStep,
	}
}

// WithDelayCapacity sets the length of each channel's line in samples.
// The time control spans [0, capacity] samples.
func WithDelayCapacity(n int) DelayOption {
	return func(cfg *delayConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidDelayCapacity, n)
		}
		cfg.capacity = n
		return nil
	}
}

// WithInterpolation selects linear interpolation for fractional read
// offsets. The default truncates.
func WithInterpolation(enabled bool) DelayOption {
	return func(cfg *delayConfig) error {
		cfg.interpolate = enabled
		return nil
	}
}

// WithTimeRampStep sets the per-sample slew limit of the time control.
func WithTimeRampStep(step float32) DelayOption {
	return func(cfg *delayConfig) error {
		if !(step > 0) {
			return fmt.Errorf("effects: time ramp step must be > 0: %v", step)
		}
		cfg.rampStep = step
		return nil
	}
}

// PingPongDelay is a stereo delay whose feedback crosses channels: each
// line is fed by its own input plus the other line's delayed output.
//
// Time is a fraction of the line capacity, slewed per sample so a control
// change never jumps the read position. Mix, time and feedback are applied
// as given; callers clamp them.
type PingPongDelay struct {
	left, right *delay.Line[float32]
	capacity    float32
	interpolate bool
	time        smooth.Ramp[float32]
}

// NewPingPongDelay creates a delay with both lines zeroed and the time
// ramp settled at 0.5.
func NewPingPongDelay(opts ...DelayOption) (*PingPongDelay, error) {
	cfg := defaultDelayConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	left, err := delay.New[float32](cfg.capacity)
	if err != nil {
		return nil, fmt.Errorf("effects: left line: %w", err)
	}
	right, err := delay.New[float32](cfg.capacity)
	if err != nil {
		return nil, fmt.Errorf("effects: right line: %w", err)
	}

	return &PingPongDelay{
		left:        left,
		right:       right,
		capacity:    float32(cfg.capacity),
		interpolate: cfg.interpolate,
		time:        smooth.NewRamp(float32(defaultDelayTime), cfg.rampStep),
	}, nil
}

// Process runs one stereo sample.
func (d *PingPongDelay) Process(inL, inR, mix, time, feedback float32) (outL, outR float32) {
	offset := d.capacity*d.time.Next(time) - 1

	var dL, dR float32
	if d.interpolate {
		dL = d.left.ReadLinear(offset)
		dR = d.right.ReadLinear(offset)
	} else {
		dL = d.left.ReadOffset(offset)
		dR = d.right.ReadOffset(offset)
	}

	d.left.Write(inL + dR*feedback)
	d.right.Write(inR + dL*feedback)

	dry := 1 - mix
	return dL*mix + inL*dry, dR*mix + inR*dry
}

// ProcessBlock processes left and right in place. Extra samples in the
// longer slice are left untouched.
func (d *PingPongDelay) ProcessBlock(left, right []float32, mix, time, feedback float32) {
	n := min(len(left), len(right))
	left, right = left[:n], right[:n]
	for i := range left {
		left[i], right[i] = d.Process(left[i], right[i], mix, time, feedback)
	}
}

// Prime settles the time ramp at time so playback starts without a sweep.
func (d *PingPongDelay) Prime(time float32) {
	d.time.Snap(time)
}

// Reset clears both lines. The time ramp keeps its position.
func (d *PingPongDelay) Reset() {
	d.left.Reset()
	d.right.Reset()
}

// Time returns the current smoothed time fraction.
func (d *PingPongDelay) Time() float32 { return d.time.Value() }

// Capacity returns the per-channel line length in samples.
func (d *PingPongDelay) Capacity() int { return d.left.Len() }

// Interpolated reports whether fractional offsets are interpolated.
func (d *PingPongDelay) Interpolated() bool { return d.interpolate }
