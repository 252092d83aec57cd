package plugin

import (
	"fmt"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/core"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/effects/reverb"
	"github.com/mnyrenius/awesome-audio-plugins/plugin/param"
)

// ReverbName is the registry name of the plate reverb.
const ReverbName = "reverb"

// Reverb control names.
const (
	ReverbMix      = "Mix"
	ReverbSize     = "Size"
	ReverbPredelay = "Predelay"
	ReverbFeedback = "Feedback"
	ReverbModRate  = "ModRate"
	ReverbModDepth = "ModDepth"
	ReverbDamping  = "Damping"
)

// Reverb is the plate reverb effect. It keeps no persistent state.
type Reverb struct {
	plate  *reverb.Plate
	params *param.Set

	mix, size, predelay, feedback *param.Param
	modRate, modDepth, damping    *param.Param
}

// NewReverb builds a reverb calibrated for the default stream rate.
func NewReverb(opts ...reverb.PlateOption) (*Reverb, error) {
	plate, err := reverb.NewPlate(core.DefaultProcessorConfig().SampleRate, opts...)
	if err != nil {
		return nil, err
	}

	def := reverb.DefaultPlateParams()
	r := &Reverb{
		plate:    plate,
		mix:      param.New(ReverbMix, def.Mix, 0, 1),
		size:     param.New(ReverbSize, def.Size, 0, 1),
		predelay: param.New(ReverbPredelay, def.Predelay, 0, 1),
		feedback: param.New(ReverbFeedback, def.Decay, 0, 1),
		modRate:  param.New(ReverbModRate, def.Speed, 0, 1),
		modDepth: param.New(ReverbModDepth, def.Depth, 0, 1),
		damping:  param.New(ReverbDamping, def.Damping, 0, 1),
	}
	r.params = param.NewSet(r.mix, r.size, r.predelay, r.feedback, r.modRate, r.modDepth, r.damping)
	return r, nil
}

// Name implements Effect.
func (r *Reverb) Name() string { return ReverbName }

// Params implements Effect.
func (r *Reverb) Params() *param.Set { return r.params }

// Prepare implements Effect. It recalibrates the modulation and output
// taps for sampleRate and settles the size ramp.
func (r *Reverb) Prepare(sampleRate float64, blockSize int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: blockSize}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("plugin: reverb: %w", err)
	}
	if err := r.plate.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("plugin: reverb: %w", err)
	}
	r.plate.Prime(r.size.Get())
	return nil
}

// CheckBounds implements BoundsChecker for the largest size setting.
func (r *Reverb) CheckBounds() error {
	return r.plate.CheckTapBounds(1)
}

// ProcessBlock implements Effect.
func (r *Reverb) ProcessBlock(left, right []float32) {
	r.plate.ProcessBlock(left, right, r.controls())
}

func (r *Reverb) controls() reverb.PlateParams {
	return reverb.PlateParams{
		Mix:      r.mix.Get(),
		Predelay: r.predelay.Get(),
		Size:     r.size.Get(),
		Decay:    r.feedback.Get(),
		Damping:  r.damping.Get(),
		Speed:    r.modRate.Get(),
		Depth:    r.modDepth.Get(),
	}
}

// Reset implements Effect.
func (r *Reverb) Reset() { r.plate.Reset() }

// TailSeconds implements Effect: one trip through the plate at the
// current predelay and size.
func (r *Reverb) TailSeconds() float64 {
	return r.plate.PassSamples(r.predelay.Get(), r.size.Get()) / r.plate.SampleRate()
}
