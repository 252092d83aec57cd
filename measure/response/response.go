package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidFFTSize is returned for a non-positive FFT size.
	ErrInvalidFFTSize = errors.New("response: fft size must be > 0")
	// ErrTooLong is returned when the impulse response does not fit the FFT.
	ErrTooLong = errors.New("response: impulse response longer than fft size")
)

// Magnitude returns |H[k]| for k in [0, fftSize/2] of the zero-padded
// impulse response ir.
func Magnitude(ir []float32, fftSize int) ([]float64, error) {
	re, im, err := spectrum(ir, fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(re))
	vecmath.Magnitude(out, re, im)
	return out, nil
}

// Power returns |H[k]|^2 for k in [0, fftSize/2].
func Power(ir []float32, fftSize int) ([]float64, error) {
	re, im, err := spectrum(ir, fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(re))
	vecmath.Power(out, re, im)
	return out, nil
}

// MaxDeviationDB returns the largest |20*log10(mag[k]/ref)| over all bins.
// A zero bin yields +Inf.
func MaxDeviationDB(mag []float64, ref float64) float64 {
	var worst float64
	for _, m := range mag {
		d := math.Abs(20 * math.Log10(m/ref))
		if d > worst || math.IsNaN(d) {
			worst = d
		}
	}
	return worst
}

func spectrum(ir []float32, fftSize int) (re, im []float64, err error) {
	if fftSize <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	if len(ir) > fftSize {
		return nil, nil, fmt.Errorf("%w: %d > %d", ErrTooLong, len(ir), fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(float64(v), 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re = make([]float64, bins)
	im = make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	return re, im, nil
}
