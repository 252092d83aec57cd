package ir

import (
	"errors"
	"math"
	"testing"
)

// exponentialDecay generates h(t) = exp(-6.9078*t/rt60), which is -60 dB
// in energy at rt60.
func exponentialDecay(sampleRate, rt60, seconds float64) []float32 {
	out := make([]float32, int(sampleRate*seconds))
	rate := 6.9078 / rt60
	for i := range out {
		out[i] = float32(math.Exp(-rate * float64(i) / sampleRate))
	}
	return out
}

func TestAnalyzeExponential(t *testing.T) {
	tests := []struct {
		name string
		rt60 float64
	}{
		{"short", 0.3},
		{"medium", 1.0},
		{"long", 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(48000)
			m, err := a.Analyze(exponentialDecay(48000, tt.rt60, 3*tt.rt60))
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(m.RT60-tt.rt60) > 0.05*tt.rt60 {
				t.Fatalf("RT60 = %.3f, want %.3f", m.RT60, tt.rt60)
			}
			if m.PeakIndex != 0 {
				t.Fatalf("PeakIndex = %d, want 0", m.PeakIndex)
			}
			if m.CenterTime <= 0 || m.CenterTime > tt.rt60 {
				t.Fatalf("CenterTime = %.3f out of range", m.CenterTime)
			}
			wantTail := int(tt.rt60 * 48000)
			if d := m.TailEnd - wantTail; d < -500 || d > 500 {
				t.Fatalf("TailEnd = %d, want about %d", m.TailEnd, wantTail)
			}
		})
	}
}

func TestAnalyzeSkipsLeadingSilence(t *testing.T) {
	decay := exponentialDecay(48000, 0.5, 1.5)
	padded := append(make([]float32, 4800), decay...)

	a := NewAnalyzer(48000)
	m, err := a.Analyze(padded)
	if err != nil {
		t.Fatal(err)
	}
	if m.PeakIndex != 4800 {
		t.Fatalf("PeakIndex = %d, want 4800", m.PeakIndex)
	}
	if math.Abs(m.RT60-0.5) > 0.025 {
		t.Fatalf("RT60 = %.3f, want 0.5", m.RT60)
	}
}

func TestSchroederStartsAtZeroDB(t *testing.T) {
	a := NewAnalyzer(48000)
	s, err := a.SchroederIntegral(exponentialDecay(48000, 0.5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s[0]) > 1e-9 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1] {
			t.Fatalf("curve rises at %d: %v > %v", i, s[i], s[i-1])
		}
	}
}

func TestSchroederSilence(t *testing.T) {
	a := NewAnalyzer(48000)
	s, err := a.SchroederIntegral(make([]float32, 8))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range s {
		if v != floorDB {
			t.Fatalf("s[%d] = %v, want floor", i, v)
		}
	}
}

func TestRT60NoDecay(t *testing.T) {
	// Two equal samples never fall 5 dB below the start.
	a := NewAnalyzer(48000)
	if _, err := a.RT60([]float32{1, 1}); !errors.Is(err, ErrNoDecay) {
		t.Fatalf("got %v, want ErrNoDecay", err)
	}
}

func TestErrors(t *testing.T) {
	a := NewAnalyzer(48000)
	if _, err := a.Analyze(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("Analyze(nil): %v", err)
	}
	if _, err := a.SchroederIntegral(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("SchroederIntegral(nil): %v", err)
	}
	bad := NewAnalyzer(0)
	if _, err := bad.Analyze([]float32{1}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("Analyze at fs=0: %v", err)
	}
	if _, err := bad.RT60([]float32{1}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("RT60 at fs=0: %v", err)
	}
}

func TestEnergyWithin(t *testing.T) {
	ir := []float32{1, -2, 3, 0.5}

	tests := []struct {
		from, to int
		want     float64
	}{
		{0, 4, 14.25},
		{1, 3, 13},
		{2, 2, 0},
	}
	for _, tt := range tests {
		got, err := EnergyWithin(ir, tt.from, tt.to)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("EnergyWithin(%d,%d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	for _, r := range [][2]int{{-1, 2}, {3, 2}, {0, 5}} {
		if _, err := EnergyWithin(ir, r[0], r[1]); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("EnergyWithin(%d,%d): got %v", r[0], r[1], err)
		}
	}
}

func BenchmarkAnalyze(b *testing.B) {
	ir := exponentialDecay(48000, 1, 2)
	a := NewAnalyzer(48000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := a.Analyze(ir); err != nil {
			b.Fatal(err)
		}
	}
}
