package audio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gen2brain/malgo"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/core"
)

// Duplex runs the default capture device through a Processor to the
// default playback device. It blocks until ctx is cancelled.
func Duplex(ctx context.Context, proc *Processor, cfg core.ProcessorConfig, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		logger.Debug("malgo", "msg", strings.TrimSpace(msg))
	})
	if err != nil {
		return fmt.Errorf("audio: init context: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	dcfg := malgo.DefaultDeviceConfig(malgo.Duplex)
	dcfg.Capture.Format = malgo.FormatF32
	dcfg.Capture.Channels = 2
	dcfg.Playback.Format = malgo.FormatF32
	dcfg.Playback.Channels = 2
	dcfg.SampleRate = uint32(cfg.SampleRate)
	dcfg.PeriodSizeInFrames = uint32(cfg.BlockSize)

	recv := func(out, in []byte, frames uint32) {
		if frames == 0 {
			return
		}
		proc.ProcessBytes(out, in, int(frames), 2, 2)
	}

	device, err := malgo.InitDevice(mctx.Context, dcfg, malgo.DeviceCallbacks{Data: recv})
	if err != nil {
		return fmt.Errorf("audio: init duplex device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("audio: start duplex device: %w", err)
	}
	logger.Info("duplex stream started",
		"sample_rate", cfg.SampleRate, "block_size", cfg.BlockSize, "effect", proc.Effect().Name())

	<-ctx.Done()

	if err := device.Stop(); err != nil {
		logger.Warn("stop duplex device", "err", err)
	}
	logger.Info("duplex stream stopped")
	return nil
}
