package delay

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/interp"
)

// ErrInvalidSize is returned when a line is created with a non-positive capacity.
var ErrInvalidSize = errors.New("delay: size must be > 0")

// Line is a fixed-capacity circular sample buffer.
//
// Read indexes back from the most recent write. ReadAt, ReadOffset and
// ReadLinear index back from the write cursor, which is the slot the next
// Write will overwrite; this is the form the effect engines use.
type Line[F constraints.Float] struct {
	buffer   []F
	writePos int
}

// New returns a zeroed line holding size samples.
func New[F constraints.Float](size int) (*Line[F], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Line[F]{buffer: make([]F, size)}, nil
}

// MustNew is like New but panics on error. Intended for fixed capacities.
func MustNew[F constraints.Float](size int) *Line[F] {
	l, err := New[F](size)
	if err != nil {
		panic(err)
	}
	return l
}

// Len returns the capacity in samples.
func (d *Line[F]) Len() int {
	return len(d.buffer)
}

// Write stores one sample and advances the cursor.
func (d *Line[F]) Write(sample F) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay steps before the most recent write.
// Read(0) is the newest sample. Valid for 0 <= delay < Len().
func (d *Line[F]) Read(delay int) F {
	return d.buffer[d.wrap(d.writePos-1-delay)]
}

// ReadOffset returns the sample offset steps behind the write cursor.
// The fractional part is truncated, not interpolated.
func (d *Line[F]) ReadOffset(offset F) F {
	return d.buffer[d.index(offset)]
}

// ReadAt returns the sample offset whole steps behind the write cursor.
func (d *Line[F]) ReadAt(offset int) F {
	return d.buffer[d.wrap(d.writePos-offset)]
}

// ReadLinear is ReadOffset with linear interpolation between the two
// neighbouring samples. Offsets are measured the same way.
func (d *Line[F]) ReadLinear(offset F) F {
	m := F(d.writePos) - offset
	n := F(len(d.buffer))
	if m < 0 {
		m += n
	}
	i := int(m)
	return interp.Linear2(m-F(i), d.buffer[d.wrap(i)], d.buffer[d.wrap(i+1)])
}

// Reset zeroes the buffer and rewinds the cursor.
func (d *Line[F]) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// index converts a cursor-relative offset to a buffer index. Offsets in
// [-1, Len()) need at most one correction in either direction; anything
// else is reduced modulo Len() so the lookup never leaves the buffer.
func (d *Line[F]) index(offset F) int {
	n := len(d.buffer)
	m := F(d.writePos) - offset
	if m < 0 {
		m += F(n)
	}
	i := int(m)
	if i >= n {
		i -= n
	}
	return d.wrap(i)
}

func (d *Line[F]) wrap(i int) int {
	n := len(d.buffer)
	if uint(i) < uint(n) {
		return i
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
