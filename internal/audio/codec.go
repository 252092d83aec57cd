package audio

import (
	"encoding/binary"
	"math"
)

// bytesPerSample is the size of one little-endian float32 sample.
const bytesPerSample = 4

// decodeF32 fills dst from little-endian float32 bytes and returns the
// number of samples decoded.
func decodeF32(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/bytesPerSample)
	for i := range n {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*bytesPerSample:]))
	}
	return n
}

// encodeF32 writes src as little-endian float32 bytes into dst and returns
// the number of samples encoded.
func encodeF32(dst []byte, src []float32) int {
	n := min(len(src), len(dst)/bytesPerSample)
	for i := range n {
		binary.LittleEndian.PutUint32(dst[i*bytesPerSample:], math.Float32bits(src[i]))
	}
	return n
}
