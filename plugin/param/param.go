package param

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/core"
)

// ErrUnknown is returned by Set.Lookup for a name that is not registered.
var ErrUnknown = errors.New("param: unknown parameter")

// Param is one lock-free float32 control.
type Param struct {
	name     string
	def      float32
	min, max float32
	bits     atomic.Uint32
}

// New returns a parameter holding def, clamped to [min, max].
func New(name string, def, min, max float32) *Param {
	p := &Param{name: name, min: min, max: max}
	p.def = core.Clamp(def, min, max)
	p.bits.Store(math.Float32bits(p.def))
	return p
}

// Name returns the display name.
func (p *Param) Name() string { return p.name }

// Default returns the factory value.
func (p *Param) Default() float32 { return p.def }

// Range returns the inclusive bounds enforced by Set.
func (p *Param) Range() (min, max float32) { return p.min, p.max }

// Get loads the current value.
func (p *Param) Get() float32 {
	return math.Float32frombits(p.bits.Load())
}

// Set stores v clamped to the range and returns the stored value.
// NaN stores the lower bound.
func (p *Param) Set(v float32) float32 {
	v = core.Clamp(v, p.min, p.max)
	p.bits.Store(math.Float32bits(v))
	return v
}

// Add moves the value by delta, clamped, and returns the stored value.
func (p *Param) Add(delta float32) float32 {
	for {
		old := p.bits.Load()
		v := core.Clamp(math.Float32frombits(old)+delta, p.min, p.max)
		if p.bits.CompareAndSwap(old, math.Float32bits(v)) {
			return v
		}
	}
}

// Reset restores the default.
func (p *Param) Reset() { p.bits.Store(math.Float32bits(p.def)) }

// String formats the parameter as name=value.
func (p *Param) String() string {
	return fmt.Sprintf("%s=%.3f", p.name, p.Get())
}

// Set is an ordered, fixed collection of parameters.
type Set struct {
	params []*Param
	index  map[string]*Param
}

// NewSet collects params in order. Duplicate names panic; sets are built
// once by effect constructors.
func NewSet(params ...*Param) *Set {
	s := &Set{
		params: params,
		index:  make(map[string]*Param, len(params)),
	}
	for _, p := range params {
		if _, dup := s.index[p.name]; dup {
			panic("param: duplicate parameter " + p.name)
		}
		s.index[p.name] = p
	}
	return s
}

// Len returns the number of parameters.
func (s *Set) Len() int { return len(s.params) }

// At returns the i-th parameter in declaration order.
func (s *Set) At(i int) *Param { return s.params[i] }

// All returns the parameters in declaration order.
func (s *Set) All() []*Param { return s.params }

// Lookup finds a parameter by exact name.
func (s *Set) Lookup(name string) (*Param, error) {
	p, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return p, nil
}

// Names returns the parameter names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.name
	}
	return names
}

// Reset restores every parameter to its default.
func (s *Set) Reset() {
	for _, p := range s.params {
		p.Reset()
	}
}

// Values returns a name to value map of the current settings.
func (s *Set) Values() map[string]float32 {
	out := make(map[string]float32, len(s.params))
	for _, p := range s.params {
		out[p.name] = p.Get()
	}
	return out
}
