// Package smooth provides control-value smoothing for parameters that must
// not jump, such as delay lengths inside feedback loops.
package smooth

import "golang.org/x/exp/constraints"

// DefaultStep is the per-sample increment used for size and time controls.
const DefaultStep = 5e-6

// Ramp moves a value toward a target by at most a fixed step per sample.
// It never snaps to the target, so it settles into a one-step oscillation
// around values the step does not divide.
type Ramp[F constraints.Float] struct {
	current F
	step    F
}

// NewRamp returns a ramp starting at initial with the given step.
// A non-positive step falls back to DefaultStep.
func NewRamp[F constraints.Float](initial, step F) Ramp[F] {
	if !(step > 0) {
		step = DefaultStep
	}
	return Ramp[F]{current: initial, step: step}
}

// Next advances one sample toward target and returns the new value.
func (r *Ramp[F]) Next(target F) F {
	if r.current < target {
		r.current += r.step
	} else if r.current > target {
		r.current -= r.step
	}
	return r.current
}

// Snap sets the value immediately.
func (r *Ramp[F]) Snap(v F) { r.current = v }

// Value returns the current value.
func (r *Ramp[F]) Value() F { return r.current }

// Step returns the per-sample increment.
func (r *Ramp[F]) Step() F { return r.step }
