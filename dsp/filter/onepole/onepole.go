package onepole

import "golang.org/x/exp/constraints"

// Filter is a one-pole recursion holding its last output.
type Filter[F constraints.Float] struct {
	x1 F
}

// Process runs one sample and returns the new state.
func (f *Filter[F]) Process(input, gain, feedbackGain F) F {
	f.x1 = gain*input + feedbackGain*f.x1
	return f.x1
}

// State returns the last output.
func (f *Filter[F]) State() F { return f.x1 }

// Reset clears the state.
func (f *Filter[F]) Reset() { f.x1 = 0 }
