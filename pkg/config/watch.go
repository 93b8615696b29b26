package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch reloads the global config whenever its file changes and invokes
// onReload with the fresh config. It blocks until stop is closed.
func Watch(logger zerolog.Logger, stop <-chan struct{}, onReload func(*Config)) error {
	cfg := Get()
	if cfg.FilePath() == "" {
		return fmt.Errorf("no config file path to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cfg.FilePath()); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", cfg.FilePath(), err)
	}

	logger.Info().Str("file", cfg.FilePath()).Msg("watching config for changes")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := Reload(); err != nil {
					logger.Warn().Err(err).Msg("config reload failed, keeping previous config")
					continue
				}
				logger.Info().Msg("config reloaded")
				if onReload != nil {
					onReload(Get())
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("config watcher error")
		case <-stop:
			return nil
		}
	}
}
