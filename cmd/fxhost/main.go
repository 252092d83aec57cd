// Command fxhost runs the ping-pong delay or the plate reverb on a live
// audio device with a terminal control surface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// Globals are the flags shared by every effect subcommand.
type Globals struct {
	Version kong.VersionFlag `short:"v" help:"Show version information"`
	Config  kong.ConfigFlag  `short:"c" help:"Load flags from a JSON config file"`

	Backend    string        `enum:"duplex,playback" default:"duplex" env:"FXHOST_BACKEND" help:"Audio backend: duplex (capture to playback) or playback (generated clicks)"`
	SampleRate float64       `default:"48000" env:"FXHOST_SAMPLE_RATE" help:"Stream sample rate in Hz"`
	BlockSize  int           `default:"512" env:"FXHOST_BLOCK_SIZE" help:"Frames per processing block"`
	Script     string        `type:"existingfile" env:"FXHOST_SCRIPT" help:"Lua automation script"`
	Headless   bool          `env:"FXHOST_HEADLESS" help:"Run without the terminal UI"`
	Duration   time.Duration `env:"FXHOST_DURATION" help:"Stop after this long (0 runs until interrupted)"`
	State      string        `type:"path" env:"FXHOST_STATE" help:"Load effect state from this file at start and save it on exit"`
	LogFile    string        `type:"path" env:"FXHOST_LOG_FILE" help:"Write logs to this file"`
	LogLevel   string        `enum:"debug,info,warn,error" default:"info" env:"FXHOST_LOG_LEVEL" help:"Log level"`
	ClickEvery time.Duration `default:"1s" help:"Click period of the playback test signal"`

	Param map[string]float32 `short:"p" help:"Initial parameter value as Name=value (repeatable)"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Delay  DelayCmd  `cmd:"" help:"Stereo ping-pong delay"`
	Reverb ReverbCmd `cmd:"" help:"Dattorro plate reverb"`
}

// DelayCmd runs the ping-pong delay.
type DelayCmd struct{}

// Run starts the host with a delay.
func (c *DelayCmd) Run(ctx context.Context, g *Globals) error {
	return runEffect(ctx, g, "delay")
}

// ReverbCmd runs the plate reverb.
type ReverbCmd struct{}

// Run starts the host with a reverb.
func (c *ReverbCmd) Run(ctx context.Context, g *Globals) error {
	return runEffect(ctx, g, "reverb")
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("fxhost"),
		kong.Description("Real-time ping-pong delay and plate reverb host"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Configuration(kong.JSON, "~/.config/fxhost.json"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(&cli.Globals); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "fxhost: %v\n", err)
		os.Exit(1)
	}
}
