// Package audio connects an effect to a sound device.
//
// Processor owns every buffer the device callback touches, so the
// callback path does not allocate once the first block has been seen. Two
// backends drive it: Duplex runs live input through the effect with malgo,
// and Playback feeds a generated test signal through the effect to an oto
// output stream.
package audio
