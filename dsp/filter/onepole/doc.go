// Package onepole provides a single-coefficient recursive low-pass.
//
// The filter computes
//
//	y[n] = gain*x[n] + feedbackGain*y[n-1]
//
// and carries no buffer. Both coefficients are supplied per call so a caller
// can follow a control value without any setter on the hot path. With
// gain = 1-a and feedbackGain = a it is the usual damping smoother with unity
// DC gain; a reaching 1 freezes the output.
package onepole
