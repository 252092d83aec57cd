// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// [Linear2] is generic over the float width so the same kernel serves the
// float32 audio path and float64 analysis code.
package interp
