// Package reverb provides a plate-class reverberator after J. Dattorro,
// "Effect Design Part 1: Reverberator and Other Filters".
//
// A Plate sums its stereo input to mono, pre-delays and low-passes it,
// smears it through four input all-pass diffusers and feeds a Tank. The Tank
// holds two cross-coupled channels, each a modulated all-pass, a delay, a
// damping low-pass, a decay all-pass and a second delay. Seven signed taps
// per side form the stereo output.
//
// All line lengths are tuned for a 29761 Hz reference rate doubled; output
// tap offsets scale with the running sample rate.
package reverb
