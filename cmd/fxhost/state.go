package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mnyrenius/awesome-audio-plugins/plugin"
)

// loadState restores effect controls from path. A missing file is not an
// error; effects without state only log.
func loadState(effect plugin.Effect, path string, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	st, ok := effect.(plugin.Stater)
	if !ok {
		logger.Info("effect keeps no state", "effect", effect.Name(), "path", path)
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no saved state yet", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	if err := st.SetState(data); err != nil {
		return fmt.Errorf("load state %s: %w", path, err)
	}
	logger.Info("state loaded", "path", path, "params", effect.Params().Values())
	return nil
}

// saveState writes effect controls to path.
func saveState(effect plugin.Effect, path string, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	st, ok := effect.(plugin.Stater)
	if !ok {
		return nil
	}

	data, err := st.State()
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	logger.Info("state saved", "path", path)
	return nil
}
