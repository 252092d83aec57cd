package audio

import (
	"github.com/mnyrenius/awesome-audio-plugins/dsp/buffer"
	"github.com/mnyrenius/awesome-audio-plugins/plugin"
)

// Processor runs an effect over interleaved device frames.
type Processor struct {
	effect  plugin.Effect
	block   *buffer.Stereo
	scratch []float32
	meter   *Meter
}

// NewProcessor preallocates for blocks of blockSize frames. The effect must
// already be prepared.
func NewProcessor(effect plugin.Effect, blockSize int) *Processor {
	return &Processor{
		effect:  effect,
		block:   buffer.NewStereo(blockSize),
		scratch: make([]float32, 2*blockSize),
		meter:   NewMeter(blockSize),
	}
}

// Effect returns the wrapped effect.
func (p *Processor) Effect() plugin.Effect { return p.effect }

// Meter returns the output level meter.
func (p *Processor) Meter() *Meter { return p.meter }

// ProcessBytes decodes frames of inCh-channel float32 input from in, runs
// the effect and encodes outCh-channel output into out. A nil in is
// treated as silence.
func (p *Processor) ProcessBytes(out, in []byte, frames, inCh, outCh int) {
	p.ensure(frames * max(inCh, outCh, 2))

	if in == nil || inCh <= 0 {
		p.block.Resize(frames)
		p.block.Zero()
	} else {
		src := p.scratch[:frames*inCh]
		decodeF32(src, in)
		p.block.Deinterleave(src, inCh)
	}

	p.run()

	dst := p.scratch[:frames*outCh]
	p.block.Interleave(dst, outCh)
	encodeF32(out, dst)
}

// ProcessStereo runs the effect in place on planar buffers.
func (p *Processor) ProcessStereo(left, right []float32) {
	p.effect.ProcessBlock(left, right)
	p.meter.Observe(left, right)
}

func (p *Processor) run() {
	p.ProcessStereo(p.block.Left, p.block.Right)
}

func (p *Processor) ensure(samples int) {
	if samples > len(p.scratch) {
		p.scratch = make([]float32, samples)
	}
}
