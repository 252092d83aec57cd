// Package effects provides the stereo effect engines behind the plugins.
//
// Subpackages:
//   - github.com/mnyrenius/awesome-audio-plugins/dsp/effects/reverb
//
// Effects in this package:
//   - PingPongDelay: Two cross-fed delay lines with a smoothed time control.
//
// Engines process one stereo frame at a time or a block in place and do
// not allocate once constructed.
package effects
