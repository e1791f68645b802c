package config

import (
	"context"
	"fmt"
	"path/filepath"

	"kassa/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it is written or replaced and
// passes the new configuration to onChange. Invalid edits are logged and
// skipped so a half-saved file never reaches the UI. Watch blocks until ctx
// is done.
// The parent directory is watched so saves that rename over the file are
// seen too.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsWatcher.Close()

	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.LogWithFields(log.F("path", path)).Debug("Watching config file")

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := LoadConfigFile(path)
			if err != nil {
				log.LogWithError(err).Warn("Ignoring invalid config change")
				continue
			}
			log.LogWithFields(log.F("path", path), log.F("op", event.Op.String())).Info("Config reloaded")
			onChange(cfg)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.LogWithError(err).Warn("Config watcher error")
		}
	}
}
