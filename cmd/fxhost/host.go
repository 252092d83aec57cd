package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/core"
	"github.com/mnyrenius/awesome-audio-plugins/internal/audio"
	"github.com/mnyrenius/awesome-audio-plugins/internal/automation"
	"github.com/mnyrenius/awesome-audio-plugins/internal/tui"
	"github.com/mnyrenius/awesome-audio-plugins/plugin"
	"github.com/mnyrenius/awesome-audio-plugins/plugin/param"
)

// backendFunc streams audio through proc until ctx is cancelled.
type backendFunc func(ctx context.Context, proc *audio.Processor, cfg core.ProcessorConfig, logger *slog.Logger) error

// host owns one effect and the goroutines that drive it.
type host struct {
	effect   plugin.Effect
	cfg      core.ProcessorConfig
	logger   *slog.Logger
	backend  backendFunc
	script   string
	state    string
	headless bool
	duration time.Duration
}

func runEffect(ctx context.Context, g *Globals, name string) error {
	headless := g.Headless || !stdoutIsTerminal()
	logger, closeLog, err := newLogger(g.LogFile, g.LogLevel, headless)
	if err != nil {
		return err
	}
	defer closeLog()

	effect, err := plugin.DefaultRegistry().New(name)
	if err != nil {
		return err
	}
	if err := applyParams(effect.Params(), g.Param); err != nil {
		return err
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(g.SampleRate),
		core.WithBlockSize(g.BlockSize),
	)

	h := &host{
		effect:   effect,
		cfg:      cfg,
		logger:   logger,
		backend:  selectBackend(g.Backend, g.ClickEvery),
		script:   g.Script,
		state:    g.State,
		headless: headless,
		duration: g.Duration,
	}
	return h.run(ctx)
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func selectBackend(name string, clickEvery time.Duration) backendFunc {
	if name == "playback" {
		return func(ctx context.Context, proc *audio.Processor, cfg core.ProcessorConfig, logger *slog.Logger) error {
			period := int(math.Round(clickEvery.Seconds() * cfg.SampleRate))
			return audio.Playback(ctx, proc, audio.NewClickSource(period, 1), cfg, logger)
		}
	}
	return audio.Duplex
}

// applyParams sets initial values given on the command line.
func applyParams(set *param.Set, values map[string]float32) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, err := set.Lookup(name)
		if err != nil {
			return fmt.Errorf("--param: %w (have %v)", err, set.Names())
		}
		p.Set(values[name])
	}
	return nil
}

func (h *host) run(ctx context.Context) error {
	if err := h.cfg.Validate(); err != nil {
		return err
	}
	if err := loadState(h.effect, h.state, h.logger); err != nil {
		return err
	}
	if err := h.effect.Prepare(h.cfg.SampleRate, h.cfg.BlockSize); err != nil {
		return fmt.Errorf("prepare %s: %w", h.effect.Name(), err)
	}

	var warning string
	if bc, ok := h.effect.(plugin.BoundsChecker); ok {
		if err := bc.CheckBounds(); err != nil {
			warning = err.Error()
			h.logger.Warn("effect degraded at this sample rate", "effect", h.effect.Name(), "err", err)
		}
	}

	h.logger.Info("starting effect",
		"effect", h.effect.Name(),
		"sample_rate", h.cfg.SampleRate,
		"block_size", h.cfg.BlockSize,
		"tail_seconds", h.effect.TailSeconds(),
		"params", h.effect.Params().Values())

	if h.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.duration)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	proc := audio.NewProcessor(h.effect, h.cfg.BlockSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return h.backend(gctx, proc, h.cfg, h.logger)
	})

	if h.script != "" {
		engine := automation.NewEngine(h.effect.Params(), h.logger)
		g.Go(func() error {
			return engine.RunFile(gctx, h.script)
		})
	}

	if !h.headless {
		g.Go(func() error {
			defer cancel()
			return h.runUI(gctx, proc, warning)
		})
	}

	err := g.Wait()
	if serr := saveState(h.effect, h.state, h.logger); serr != nil {
		err = errors.Join(err, serr)
	}
	return err
}

func (h *host) runUI(ctx context.Context, proc *audio.Processor, warning string) error {
	title := fmt.Sprintf("fxhost · %s · %.0f Hz", h.effect.Name(), h.cfg.SampleRate)
	model := tui.NewModel(title, h.effect.Params(), proc.Meter())
	if warning != "" {
		model.Status = "warning: " + warning
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
