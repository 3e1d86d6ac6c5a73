package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path    string
	logger  *slog.Logger
	updates chan Config
	fsw     *fsnotify.Watcher
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithWatchLogger sets the structured logger for watch diagnostics.
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(w *Watcher) { w.logger = logger }
}

// Watch loads the file once, then delivers a fresh Config on the Updates
// channel each time the file is rewritten. The parent directory is watched
// rather than the file itself so that editors that replace-and-rename are
// still observed. The watcher stops when ctx is cancelled.
func Watch(ctx context.Context, path string, opts ...WatchOption) (Config, *Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, nil, err
	}

	w := &Watcher{
		path:    path,
		logger:  slog.Default(),
		updates: make(chan Config, 1),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.fsw, err = fsnotify.NewWatcher()
	if err != nil {
		return cfg, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.fsw.Add(filepath.Dir(path)); err != nil {
		w.fsw.Close()
		return cfg, nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go w.run(ctx)
	return cfg, w, nil
}

// Updates returns the channel of reloaded configs. It is closed when the
// watcher stops.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.updates)
	defer w.fsw.Close()

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				// Keep the last good config; the file may be mid-write.
				w.logger.Warn("config reload failed",
					slog.String("path", w.path),
					slog.String("error", err.Error()))
				continue
			}
			w.logger.Debug("config reloaded", slog.String("path", w.path))
			select {
			case w.updates <- cfg:
			case <-ctx.Done():
				return
			default:
				// Drop the stale pending update and queue the newest.
				select {
				case <-w.updates:
				default:
				}
				w.updates <- cfg
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", slog.String("error", err.Error()))
		}
	}
}
