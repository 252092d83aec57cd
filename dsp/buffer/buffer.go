package buffer

// Stereo holds one block of planar float32 audio.
type Stereo struct {
	Left  []float32
	Right []float32
}

// NewStereo returns a zeroed block of the given number of frames.
func NewStereo(frames int) *Stereo {
	if frames < 0 {
		frames = 0
	}
	return &Stereo{
		Left:  make([]float32, frames),
		Right: make([]float32, frames),
	}
}

// Frames returns the current block length.
func (s *Stereo) Frames() int {
	return len(s.Left)
}

// Cap returns how many frames fit without reallocating.
func (s *Stereo) Cap() int {
	return min(cap(s.Left), cap(s.Right))
}

// Resize sets the block length to n, reusing capacity when possible.
// Frames beyond the previous length are zeroed.
func (s *Stereo) Resize(n int) {
	if n < 0 {
		n = 0
	}
	s.Left = resize(s.Left, n)
	s.Right = resize(s.Right, n)
}

func resize(buf []float32, n int) []float32 {
	old := len(buf)
	if n > cap(buf) {
		grown := make([]float32, n)
		copy(grown, buf)
		return grown
	}
	buf = buf[:n]
	for i := old; i < n; i++ {
		buf[i] = 0
	}
	return buf
}

// Zero clears both channels.
func (s *Stereo) Zero() {
	clear(s.Left)
	clear(s.Right)
}

// Deinterleave loads frames from src, which holds channels samples per
// frame. A mono source is copied to both sides; channels beyond the second
// are ignored. The block is resized to the number of frames in src and the
// frame count is returned.
func (s *Stereo) Deinterleave(src []float32, channels int) int {
	if channels <= 0 {
		s.Resize(0)
		return 0
	}
	frames := len(src) / channels
	s.Resize(frames)

	if channels == 1 {
		copy(s.Left, src[:frames])
		copy(s.Right, src[:frames])
		return frames
	}
	for i := range frames {
		s.Left[i] = src[i*channels]
		s.Right[i] = src[i*channels+1]
	}
	return frames
}

// Interleave writes the block into dst with channels samples per frame.
// A mono destination receives the mid signal 0.5*(L+R); extra destination
// channels are zeroed. It returns the number of frames written.
func (s *Stereo) Interleave(dst []float32, channels int) int {
	if channels <= 0 {
		return 0
	}
	frames := min(len(dst)/channels, s.Frames())

	if channels == 1 {
		for i := range frames {
			dst[i] = 0.5 * (s.Left[i] + s.Right[i])
		}
		return frames
	}
	for i := range frames {
		base := i * channels
		dst[base] = s.Left[i]
		dst[base+1] = s.Right[i]
		for c := 2; c < channels; c++ {
			dst[base+c] = 0
		}
	}
	return frames
}

// Copy returns a deep copy.
func (s *Stereo) Copy() *Stereo {
	c := NewStereo(s.Frames())
	copy(c.Left, s.Left)
	copy(c.Right, s.Right)
	return c
}
