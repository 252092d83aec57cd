package reverb

import (
	"fmt"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/delay"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/filter/allpass"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/filter/onepole"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/smooth"
)

const (
	predelayCapacity = 20001
	predelayMax      = 20000

	predelayLPGain     = 0.9995
	predelayLPFeedback = 1 - predelayLPGain
)

var inputDiffusion = [4]struct {
	size           int
	fbGain, ffGain float32
}{
	{2 * 210, -0.75, 0.75},
	{2 * 148, -0.75, 0.75},
	{2 * 561, -0.625, 0.625},
	{2 * 410, -0.625, 0.625},
}

// PlateParams are the per-block controls, each nominally in [0, 1].
type PlateParams struct {
	Mix      float32 // wet fraction
	Predelay float32 // fraction of 20000 samples
	Size     float32 // scales every line read; ramped
	Decay    float32 // tank recirculation gain
	Damping  float32 // tank low-pass feedback coefficient
	Speed    float32 // LFO rate
	Depth    float32 // LFO swing, 1 = 128 samples
}

// DefaultPlateParams returns the factory control values.
func DefaultPlateParams() PlateParams {
	return PlateParams{
		Mix:      0.3,
		Predelay: 0.01,
		Size:     0.5,
		Decay:    0.3,
		Damping:  0.05,
		Speed:    0.1,
		Depth:    0,
	}
}

// PlateOption mutates plate construction parameters.
type PlateOption func(*plateConfig) error

type plateConfig struct {
	rampStep float32
}

// WithSizeRampStep sets the per-sample slew limit of the size control.
func WithSizeRampStep(step float32) PlateOption {
	return func(cfg *plateConfig) error {
		if !(step > 0) {
			return fmt.Errorf("reverb: size ramp step must be > 0: %v", step)
		}
		cfg.rampStep = step
		return nil
	}
}

// Plate is the stereo plate reverb: input conditioning, diffusion and tank.
type Plate struct {
	predelay   *delay.Line[float32]
	predelayLP onepole.Filter[float32]
	diffusers  [4]*allpass.Diffuser[float32]
	size       smooth.Ramp[float32]
	tank       *Tank
}

// NewPlate allocates a plate calibrated for sampleRate with the size ramp
// settled at the default size.
func NewPlate(sampleRate float64, opts ...PlateOption) (*Plate, error) {
	cfg := plateConfig{rampStep: smooth.DefaultStep}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	tank, err := NewTank(sampleRate)
	if err != nil {
		return nil, err
	}
	pre, err := delay.New[float32](predelayCapacity)
	if err != nil {
		return nil, fmt.Errorf("reverb: predelay: %w", err)
	}

	p := &Plate{
		predelay: pre,
		size:     smooth.NewRamp(DefaultPlateParams().Size, cfg.rampStep),
		tank:     tank,
	}
	for i, d := range inputDiffusion {
		ap, err := allpass.NewWithGains(d.size, d.fbGain, d.ffGain)
		if err != nil {
			return nil, fmt.Errorf("reverb: input diffuser %d: %w", i, err)
		}
		p.diffusers[i] = ap
	}
	return p, nil
}

// SetSampleRate recalibrates the tank. See Tank.SetSampleRate.
func (p *Plate) SetSampleRate(sampleRate float64) error {
	return p.tank.SetSampleRate(sampleRate)
}

// SampleRate returns the calibrated rate in Hz.
func (p *Plate) SampleRate() float64 { return p.tank.SampleRate() }

// Prime settles the size ramp at size.
func (p *Plate) Prime(size float32) { p.size.Snap(size) }

// Size returns the current smoothed size.
func (p *Plate) Size() float32 { return p.size.Value() }

// CheckTapBounds runs Tank.CheckTapBounds at the given size.
func (p *Plate) CheckTapBounds(size float32) error {
	return p.tank.CheckTapBounds(size)
}

// PassSamples returns the length of one trip from input through the
// pre-delay, the diffusers and both tank sides at the given controls.
func (p *Plate) PassSamples(predelay, size float32) float64 {
	n := 0
	for _, ap := range p.diffusers {
		n += ap.Len()
	}
	for _, s := range [...]*tankSide{p.tank.left, p.tank.right} {
		n += s.modAP.Len() + s.delay1.Len() + s.decayAP.Len() + s.delay2.Len()
	}
	return float64(predelayMax*predelay) + float64(size)*float64(n)
}

// Process runs one stereo sample.
func (p *Plate) Process(inL, inR float32, params PlateParams) (outL, outR float32) {
	p.predelay.Write(0.5 * (inL + inR))
	x := p.predelay.ReadOffset(predelayMax * params.Predelay)
	x = p.predelayLP.Process(x, predelayLPGain, predelayLPFeedback)

	size := p.size.Next(params.Size)
	for _, ap := range p.diffusers {
		x = ap.Process(x, size*float32(ap.Len())-1)
	}

	wetL, wetR := p.tank.Process(x, size, params.Decay, params.Damping, params.Speed, params.Depth)

	dry := 1 - params.Mix
	return wetL*params.Mix + inL*dry, wetR*params.Mix + inR*dry
}

// ProcessBlock processes left and right in place.
func (p *Plate) ProcessBlock(left, right []float32, params PlateParams) {
	n := min(len(left), len(right))
	left, right = left[:n], right[:n]
	for i := range left {
		left[i], right[i] = p.Process(left[i], right[i], params)
	}
}

// Reset clears every buffer and filter. The size ramp keeps its position.
func (p *Plate) Reset() {
	p.predelay.Reset()
	p.predelayLP.Reset()
	for _, ap := range p.diffusers {
		ap.Reset()
	}
	p.tank.Reset()
}
