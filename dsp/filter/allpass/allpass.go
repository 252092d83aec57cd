package allpass

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/delay"
)

// Diffuser is a Schroeder all-pass section over a circular buffer.
// It is stateful and must be driven once per sample from a single goroutine.
type Diffuser[F constraints.Float] struct {
	line   *delay.Line[F]
	fbGain F
	ffGain F
}

// New returns a diffuser of the given capacity with feedback gain g and the
// matching feed-forward gain -g.
func New[F constraints.Float](size int, g F) (*Diffuser[F], error) {
	return NewWithGains(size, g, -g)
}

// NewWithGains returns a diffuser with an explicit gain pair. Only pairs with
// ffGain == -fbGain are lossless.
func NewWithGains[F constraints.Float](size int, fbGain, ffGain F) (*Diffuser[F], error) {
	line, err := delay.New[F](size)
	if err != nil {
		return nil, fmt.Errorf("allpass: %w", err)
	}
	return &Diffuser[F]{line: line, fbGain: fbGain, ffGain: ffGain}, nil
}

// MustNew is like New but panics on error.
func MustNew[F constraints.Float](size int, g F) *Diffuser[F] {
	d, err := New(size, g)
	if err != nil {
		panic(err)
	}
	return d
}

// Process diffuses one sample. delay is measured back from the write cursor
// and its fractional part is truncated.
func (a *Diffuser[F]) Process(input, delay F) F {
	y := a.line.ReadOffset(delay) + a.ffGain*input
	a.line.Write(input + a.fbGain*y)
	return y
}

// Tap reads the internal buffer offset samples behind the write cursor
// without touching state. The offset is truncated to a whole sample first.
func (a *Diffuser[F]) Tap(offset F) F {
	return a.line.ReadAt(int(offset))
}

// Len returns the capacity in samples.
func (a *Diffuser[F]) Len() int { return a.line.Len() }

// Gains returns the feedback and feed-forward gains.
func (a *Diffuser[F]) Gains() (fbGain, ffGain F) { return a.fbGain, a.ffGain }

// Reset clears the internal buffer.
func (a *Diffuser[F]) Reset() { a.line.Reset() }
