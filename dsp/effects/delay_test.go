package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/mnyrenius/awesome-audio-plugins/internal/testutil"
)

func newTestDelay(t *testing.T, opts ...DelayOption) *PingPongDelay {
	t.Helper()
	d, err := NewPingPongDelay(opts...)
	if err != nil {
		t.Fatalf("NewPingPongDelay: %v", err)
	}
	return d
}

func TestPingPongDelayDefaults(t *testing.T) {
	d := newTestDelay(t)
	if d.Capacity() != DefaultDelayCapacity {
		t.Fatalf("Capacity = %d, want %d", d.Capacity(), DefaultDelayCapacity)
	}
	if d.Time() != 0.5 {
		t.Fatalf("Time = %v, want 0.5", d.Time())
	}
	if d.Interpolated() {
		t.Fatal("interpolation should default to off")
	}
}

func TestPingPongDelayOptionErrors(t *testing.T) {
	if _, err := NewPingPongDelay(WithDelayCapacity(0)); !errors.Is(err, ErrInvalidDelayCapacity) {
		t.Fatalf("capacity 0: got %v", err)
	}
	if _, err := NewPingPongDelay(WithTimeRampStep(0)); err == nil {
		t.Fatal("expected error for zero ramp step")
	}
	if _, err := NewPingPongDelay(nil, WithDelayCapacity(8)); err != nil {
		t.Fatalf("nil option should be skipped: %v", err)
	}
}

func TestPingPongDelayImpulseScenario(t *testing.T) {
	d := newTestDelay(t, WithDelayCapacity(100))
	d.Prime(0.5)

	left := testutil.Impulse32(300, 0)
	right := make([]float32, 300)
	d.ProcessBlock(left, right, 1, 0.5, 0)

	for i, v := range left {
		want := float32(0)
		if i == 49 {
			want = 1
		}
		if v != want {
			t.Fatalf("left[%d] = %v, want %v", i, v, want)
		}
	}
	testutil.RequireAllZero(t, right)
}

func TestPingPongDelayImpulsePosition(t *testing.T) {
	const n = 100

	tests := []struct {
		name string
		time float32
	}{
		{"quarter", 0.25},
		{"three-eighths", 0.375},
		{"three-quarters", 0.75},
		{"full", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDelay(t, WithDelayCapacity(n))
			d.Prime(tt.time)

			left := testutil.Impulse32(3*n, 0)
			right := make([]float32, 3*n)
			d.ProcessBlock(left, right, 1, tt.time, 0)

			want := int(math.Round(n*float64(tt.time))) - 1
			for i, v := range left {
				if i == want {
					if v != 1 {
						t.Fatalf("left[%d] = %v, want 1", i, v)
					}
					continue
				}
				if v != 0 {
					t.Fatalf("left[%d] = %v, want 0 (impulse expected at %d)", i, v, want)
				}
			}
		})
	}
}

func TestPingPongDelayTimeZeroWraps(t *testing.T) {
	const n = 16
	d := newTestDelay(t, WithDelayCapacity(n))
	d.Prime(0)

	left := testutil.Impulse32(2*n, 0)
	right := make([]float32, 2*n)
	d.ProcessBlock(left, right, 1, 0, 0)

	// Offset -1 lands one slot past the cursor, which is n-1 samples old.
	for i, v := range left {
		want := float32(0)
		if i == n-1 {
			want = 1
		}
		if v != want {
			t.Fatalf("left[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestPingPongDelayCrossFeedback(t *testing.T) {
	const n = 10
	d := newTestDelay(t, WithDelayCapacity(n))
	d.Prime(1)

	left := testutil.Impulse32(40, 0)
	right := make([]float32, 40)
	d.ProcessBlock(left, right, 1, 1, 0.5)

	checks := []struct {
		ch   []float32
		name string
		i    int
		want float32
	}{
		{left, "left", 9, 1},
		{right, "right", 9, 0},
		{right, "right", 18, 0.5},
		{left, "left", 18, 0},
		{left, "left", 27, 0.25},
		{right, "right", 27, 0},
		{right, "right", 36, 0.125},
	}
	for _, c := range checks {
		if c.ch[c.i] != c.want {
			t.Fatalf("%s[%d] = %v, want %v", c.name, c.i, c.ch[c.i], c.want)
		}
	}
}

func TestPingPongDelaySilence(t *testing.T) {
	d := newTestDelay(t, WithDelayCapacity(512))
	left := make([]float32, 4096)
	right := make([]float32, 4096)

	d.ProcessBlock(left, right, 0.7, 0.3, 0.95)
	testutil.RequireAllZero(t, left)
	testutil.RequireAllZero(t, right)
}

func TestPingPongDelayDryPassthrough(t *testing.T) {
	d := newTestDelay(t, WithDelayCapacity(64))
	in := testutil.DeterministicNoise32(11, 0.8, 256)
	left, right := testutil.Stereo(in)

	d.ProcessBlock(left, right, 0, 0.5, 0.5)
	testutil.RequireSliceNearlyEqual(t, left, in, 0)
	testutil.RequireSliceNearlyEqual(t, right, in, 0)
}

func TestPingPongDelayTimeRampBound(t *testing.T) {
	d := newTestDelay(t, WithDelayCapacity(1000), WithTimeRampStep(1e-3))
	d.Prime(0.2)

	prev := d.Time()
	for i := 0; i < 2000; i++ {
		target := float32(0.8)
		if i >= 1000 {
			target = 0.1
		}
		d.Process(0.1, -0.1, 0.5, target, 0.3)

		if diff := math.Abs(float64(d.Time() - prev)); diff > 1e-3+1e-7 {
			t.Fatalf("sample %d: time moved %v, want <= 1e-3", i, diff)
		}
		prev = d.Time()
	}
}

func TestPingPongDelayBoundariesStayFinite(t *testing.T) {
	d := newTestDelay(t, WithDelayCapacity(128), WithTimeRampStep(0.01))
	in := testutil.DeterministicNoise32(5, 1, 1024)
	left, right := testutil.Stereo(in)

	// Sweep the time control across both extremes.
	for i := range left {
		time := float32(0)
		if (i/128)%2 == 1 {
			time = 1
		}
		left[i], right[i] = d.Process(left[i], right[i], 0.5, time, 0.5)
	}
	testutil.RequireFinite(t, left)
	testutil.RequireFinite(t, right)
}

func TestPingPongDelayInterpolation(t *testing.T) {
	const n = 100
	d := newTestDelay(t, WithDelayCapacity(n), WithInterpolation(true))
	d.Prime(0.375)

	left := testutil.Impulse32(2*n, 0)
	right := make([]float32, 2*n)
	d.ProcessBlock(left, right, 1, 0.375, 0)

	// Offset 36.5 splits the impulse across two neighbouring outputs.
	if left[36] != 0.5 || left[37] != 0.5 {
		t.Fatalf("left[36..37] = %v %v, want 0.5 0.5", left[36], left[37])
	}
	if e := testutil.Energy(left); math.Abs(e-0.5) > 1e-9 {
		t.Fatalf("energy = %v, want 0.5", e)
	}
}

func TestPingPongDelayReset(t *testing.T) {
	d := newTestDelay(t, WithDelayCapacity(32))
	d.Prime(0.5)

	left := testutil.DeterministicNoise32(1, 1, 64)
	right := testutil.DeterministicNoise32(2, 1, 64)
	d.ProcessBlock(left, right, 1, 0.5, 0.7)

	d.Reset()
	if d.Time() != 0.5 {
		t.Fatalf("Reset moved time to %v", d.Time())
	}

	left = make([]float32, 64)
	right = make([]float32, 64)
	d.ProcessBlock(left, right, 1, 0.5, 0.7)
	testutil.RequireAllZero(t, left)
	testutil.RequireAllZero(t, right)
}

func TestPingPongDelayMismatchedBlock(t *testing.T) {
	d := newTestDelay(t, WithDelayCapacity(8))
	left := []float32{1, 1, 1, 1}
	right := []float32{1, 1}

	d.ProcessBlock(left, right, 1, 0.5, 0)
	if left[2] != 1 || left[3] != 1 {
		t.Fatalf("samples past the shorter channel were touched: %v", left)
	}
}

func BenchmarkPingPongDelayProcessBlock(b *testing.B) {
	d, err := NewPingPongDelay()
	if err != nil {
		b.Fatal(err)
	}
	left := make([]float32, 512)
	right := make([]float32, 512)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.ProcessBlock(left, right, 0.3, 0.5, 0.3)
	}
}
