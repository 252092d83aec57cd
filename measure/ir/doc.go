// Package ir analyzes impulse responses rendered by the reverb and delay
// engines.
//
// Metrics are derived from the Schroeder backward integration of the squared
// response:
//
//   - RT60: reverberation time, extrapolated from T30 or T20
//   - EDT: early decay time (0 to -10 dB)
//   - CenterTime: temporal energy centroid
//   - TailEnd: first sample after which the remaining energy stays below
//     a floor
//
// # Usage
//
//	a := ir.NewAnalyzer(48000)
//	m, err := a.Analyze(wetLeft)
//	fmt.Printf("RT60 = %.2f s\n", m.RT60)
package ir
