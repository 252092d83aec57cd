// Package response measures the frequency response of impulse responses
// captured from the effect engines.
//
// Magnitude zero-pads an impulse response to the requested FFT size and
// returns the non-negative-frequency magnitude bins. MaxDeviationDB reports
// the worst-case deviation of those bins from a reference level, which is
// how the all-pass diffusers are checked for a flat response.
package response
