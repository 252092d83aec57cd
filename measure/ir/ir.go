package ir

import (
	"errors"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidRange      = errors.New("ir: invalid sample range")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// floorDB is the level assigned to Schroeder bins with no remaining energy.
const floorDB = -200

// Metrics holds impulse response analysis results.
type Metrics struct {
	RT60       float64 // seconds, from T30 or T20
	EDT        float64 // early decay time in seconds (0 to -10 dB)
	T20        float64 // RT from the -5 to -25 dB slope
	T30        float64 // RT from the -5 to -35 dB slope
	CenterTime float64 // energy centroid in seconds
	PeakIndex  int     // sample index of the absolute maximum
	TailEnd    int     // first index where the Schroeder curve falls below -60 dB
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all metrics. Decay metrics are measured from the peak,
// so leading pre-delay silence does not bias them.
func (a *Analyzer) Analyze(ir []float32) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}
	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	energy := squares(ir)
	peak := findPeak(ir)
	tail := energy[peak:]
	schroeder := schroederDB(tail)

	m := Metrics{
		PeakIndex:  peak,
		CenterTime: a.centerTime(tail),
		EDT:        a.reverbTime(schroeder, 0, -10),
		T20:        a.reverbTime(schroeder, -5, -25),
		T30:        a.reverbTime(schroeder, -5, -35),
		TailEnd:    peak + belowIndex(schroeder, -60),
	}
	if m.T30 > 0 {
		m.RT60 = m.T30
	} else {
		m.RT60 = m.T20
	}
	return m, nil
}

// SchroederIntegral returns the backward-integrated energy decay in dB,
// normalized to 0 dB at the first sample.
func (a *Analyzer) SchroederIntegral(ir []float32) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return schroederDB(squares(ir)), nil
}

// RT60 returns the reverberation time in seconds, preferring T30.
func (a *Analyzer) RT60(ir []float32) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}
	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	schroeder := schroederDB(squares(ir))
	if rt := a.reverbTime(schroeder, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := a.reverbTime(schroeder, -5, -25); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

// EnergyWithin returns the sum of squares of ir[from:to].
func EnergyWithin(ir []float32, from, to int) (float64, error) {
	if from < 0 || to > len(ir) || from > to {
		return 0, ErrInvalidRange
	}
	var e float64
	for _, v := range squares(ir[from:to]) {
		e += v
	}
	return e, nil
}

// squares returns ir[i]^2 as float64.
func squares(ir []float32) []float64 {
	re := make([]float64, len(ir))
	for i, v := range ir {
		re[i] = float64(v)
	}
	out := make([]float64, len(ir))
	vecmath.Power(out, re, make([]float64, len(ir)))
	return out
}

func findPeak(ir []float32) int {
	idx := 0
	var peak float32
	for i, v := range ir {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
			idx = i
		}
	}
	return idx
}

func schroederDB(energy []float64) []float64 {
	n := len(energy)
	out := make([]float64, n)

	var cum float64
	for i := n - 1; i >= 0; i-- {
		cum += energy[i]
		out[i] = cum
	}

	total := out[0]
	if total <= 0 {
		for i := range out {
			out[i] = floorDB
		}
		return out
	}

	for i, v := range out {
		if v <= 0 {
			out[i] = floorDB
			continue
		}
		out[i] = 10 * math.Log10(v/total)
	}
	return out
}

// belowIndex returns the first index at which curve drops below level, or
// len(curve) if it never does.
func belowIndex(curve []float64, level float64) int {
	for i, v := range curve {
		if v < level {
			return i
		}
	}
	return len(curve)
}

// reverbTime fits a line to the Schroeder curve between startDB and endDB
// and extrapolates it to -60 dB.
func (a *Analyzer) reverbTime(schroeder []float64, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range schroeder {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := schroeder[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(end - start + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom // dB per sample
	if slope >= 0 {
		return 0
	}
	return -60 / (slope * a.SampleRate)
}

func (a *Analyzer) centerTime(energy []float64) float64 {
	var num, den float64
	for i, e := range energy {
		num += float64(i) / a.SampleRate * e
		den += e
	}
	if den <= 0 {
		return 0
	}
	return num / den
}
