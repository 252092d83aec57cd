package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/mnyrenius/awesome-audio-plugins/dsp/buffer"
	"github.com/mnyrenius/awesome-audio-plugins/dsp/core"
)

// Generator produces planar stereo input for Playback.
type Generator interface {
	Fill(left, right []float32)
}

// effectReader is the io.Reader oto pulls from. Each Read generates a
// block, runs the effect and encodes interleaved float32 frames.
type effectReader struct {
	mu    sync.Mutex
	proc  *Processor
	gen   Generator
	block *buffer.Stereo
	inter []float32
}

func newEffectReader(proc *Processor, gen Generator, blockSize int) *effectReader {
	return &effectReader{
		proc:  proc,
		gen:   gen,
		block: buffer.NewStereo(blockSize),
		inter: make([]float32, 2*blockSize),
	}
}

func (r *effectReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / (2 * bytesPerSample)
	if frames == 0 {
		return 0, nil
	}
	r.block.Resize(frames)
	if len(r.inter) < 2*frames {
		r.inter = make([]float32, 2*frames)
	}

	r.gen.Fill(r.block.Left, r.block.Right)
	r.proc.ProcessStereo(r.block.Left, r.block.Right)

	inter := r.inter[:2*frames]
	r.block.Interleave(inter, 2)
	encodeF32(p, inter)
	return frames * 2 * bytesPerSample, nil
}

// Playback streams gen through the Processor to the default output device
// until ctx is cancelled.
func Playback(ctx context.Context, proc *Processor, gen Generator, cfg core.ProcessorConfig, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio: init output: %w", err)
	}
	select {
	case <-ready:
	case <-ctx.Done():
		return nil
	}

	player := otoCtx.NewPlayer(newEffectReader(proc, gen, cfg.BlockSize))
	player.Play()
	logger.Info("playback stream started",
		"sample_rate", cfg.SampleRate, "effect", proc.Effect().Name())

	<-ctx.Done()

	if err := player.Close(); err != nil {
		logger.Warn("close player", "err", err)
	}
	logger.Info("playback stream stopped")
	return nil
}
