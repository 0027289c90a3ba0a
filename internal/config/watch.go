package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch delivers the configuration to onChange every time the store's file
// is written or replaced, until ctx is cancelled. Unparseable intermediate
// states are skipped; identical consecutive values are delivered once.
func (s *Store) Watch(ctx context.Context, onChange func(Configuration)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}

	// Editors and Save replace the file, so watch the directory.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()

		target := filepath.Clean(s.path)
		var last *Configuration

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := s.read()
				if err != nil {
					s.logger.Debugf("config: ignoring change: %v", err)
					continue
				}
				if last != nil && *last == cfg {
					continue
				}
				last = &cfg
				s.logger.Infof("config: reloaded %s", s.path)
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warnf("config: watcher error: %v", err)
			}
		}
	}()

	return nil
}
