// Package buffer provides the planar stereo block that sits between an
// audio device's interleaved frames and the effect engines, which take
// separate left and right slices.
package buffer
