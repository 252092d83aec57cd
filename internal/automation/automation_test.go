package automation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mnyrenius/awesome-audio-plugins/plugin/param"
)

func newSet() *param.Set {
	return param.NewSet(
		param.New("Mix", 0.3, 0, 1),
		param.New("Time", 0.5, 0.01, 1),
	)
}

func TestSetAndGet(t *testing.T) {
	set := newSet()
	e := NewEngine(set, nil)

	src := `
		set("Mix", 0.75)
		set("Time", get("Mix") / 3)
	`
	if err := e.RunString(context.Background(), "inline", src); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if got := set.At(0).Get(); got != 0.75 {
		t.Fatalf("Mix: got %v want 0.75", got)
	}
	if got := set.At(1).Get(); got != 0.25 {
		t.Fatalf("Time: got %v want 0.25", got)
	}
}

func TestSetReturnsClampedValue(t *testing.T) {
	set := newSet()
	src := `
		local v = set("Time", 0)
		if v < 0.0099 or v > 0.0101 then error("got " .. v) end
	`
	if err := NewEngine(set, nil).RunString(context.Background(), "clamp", src); err != nil {
		t.Fatalf("RunString: %v", err)
	}
}

func TestParamsListsNamesInOrder(t *testing.T) {
	src := `
		local names = params()
		if #names ~= 2 or names[1] ~= "Mix" or names[2] ~= "Time" then
			error("unexpected params")
		end
	`
	if err := NewEngine(newSet(), nil).RunString(context.Background(), "params", src); err != nil {
		t.Fatalf("RunString: %v", err)
	}
}

func TestReset(t *testing.T) {
	set := newSet()
	e := NewEngine(set, nil)
	ctx := context.Background()

	if err := e.RunString(ctx, "one", `set("Mix", 1); set("Time", 1); reset("Mix")`); err != nil {
		t.Fatal(err)
	}
	if set.At(0).Get() != 0.3 || set.At(1).Get() != 1 {
		t.Fatalf("reset(name): got %v", set.Values())
	}

	if err := e.RunString(ctx, "all", `reset()`); err != nil {
		t.Fatal(err)
	}
	if set.At(1).Get() != 0.5 {
		t.Fatalf("reset(): Time got %v want 0.5", set.At(1).Get())
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown param", `set("Nope", 1)`, "Nope"},
		{"bad value", `set("Mix", "loud")`, "number"},
		{"syntax", `set("Mix",`, "syntax"},
		{"runtime", `error("boom")`, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEngine(newSet(), nil).RunString(context.Background(), tt.name, tt.src)
			if !errors.Is(err, ErrScript) {
				t.Fatalf("got %v, want ErrScript", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSleepWaits(t *testing.T) {
	start := time.Now()
	if err := NewEngine(newSet(), nil).RunString(context.Background(), "sleep", `sleep(20)`); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("sleep(20) returned after %v", elapsed)
	}
}

func TestCancelStopsScript(t *testing.T) {
	set := newSet()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	src := `
		local t = 0
		while true do
			set("Mix", 0.5 + 0.5 * math.sin(t))
			t = t + 0.1
			sleep(5)
		end
	`
	done := make(chan error, 1)
	go func() { done <- NewEngine(set, nil).RunString(ctx, "lfo", src) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled script: got %v want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("script did not stop after cancellation")
	}
}

func TestCancelInterruptsLongSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	if err := NewEngine(newSet(), nil).RunString(ctx, "nap", `sleep(60000)`); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("sleep ignored cancellation: %v", elapsed)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.lua")
	if err := os.WriteFile(path, []byte(`set("Time", 0.75)`), 0o644); err != nil {
		t.Fatal(err)
	}

	set := newSet()
	if err := NewEngine(set, nil).RunFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if got := set.At(1).Get(); got != 0.75 {
		t.Fatalf("Time: got %v want 0.75", got)
	}

	err := NewEngine(set, nil).RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	if !errors.Is(err, ErrScript) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v", err)
	}
}

func TestLogWritesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	if err := NewEngine(newSet(), logger).RunString(context.Background(), "log", `log("mix is", get("Mix"))`); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "mix is 0.3") {
		t.Fatalf("log output: %s", buf.String())
	}
}
