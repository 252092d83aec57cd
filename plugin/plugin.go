package plugin

import (
	"github.com/mnyrenius/awesome-audio-plugins/plugin/param"
)

// Effect is a stereo in-place audio processor with host controls.
type Effect interface {
	// Name returns the registry name of the effect.
	Name() string
	// Params returns the effect's controls. The set is fixed for the
	// lifetime of the effect.
	Params() *param.Set
	// Prepare configures the stream and settles smoothed controls at their
	// current values. It must not run concurrently with ProcessBlock.
	Prepare(sampleRate float64, blockSize int) error
	// ProcessBlock processes one block in place. It does not allocate.
	ProcessBlock(left, right []float32)
	// Reset clears all audio history.
	Reset()
	// TailSeconds reports how long output can continue after input stops
	// for a single pass through the effect.
	TailSeconds() float64
}

// Stater is implemented by effects that can persist their controls.
type Stater interface {
	State() ([]byte, error)
	SetState(data []byte) error
}

// BoundsChecker is implemented by effects whose configuration can be valid
// yet degraded at some stream settings. Hosts call CheckBounds after
// Prepare and report the result as a warning.
type BoundsChecker interface {
	CheckBounds() error
}

// SupportsLayout reports whether an effect accepts the given channel counts.
// Only stereo in and stereo out is supported; hosts with mono devices
// duplicate or fold the signal themselves.
func SupportsLayout(inputs, outputs int) bool {
	return inputs == 2 && outputs == 2
}
