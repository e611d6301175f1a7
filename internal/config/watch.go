// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Reload is the result of re-reading a changed config file.
type Reload struct {
	Config *Config
	Err    error
}

// Watcher re-reads a config file whenever it changes on disk. The parent
// directory is watched so that atomic renames are seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	updates  chan Reload

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher watches path. The directory holding it must exist.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		watcher:  fw,
		debounce: debounce,
		updates:  make(chan Reload, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// Start begins processing file events in the background.
func (w *Watcher) Start() {
	go w.processEvents()
}

// Updates delivers one Reload per settled change. It is closed by Close.
func (w *Watcher) Updates() <-chan Reload {
	return w.updates
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		select {
		case <-w.done:
		case <-time.After(time.Second):
		}
	})
	return err
}

func (w *Watcher) processEvents() {
	defer close(w.done)
	defer close(w.updates)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := LoadFromPath(w.path)
			w.send(Reload{Config: cfg, Err: err})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(Reload{Err: fmt.Errorf("config watcher: %w", err)})
		}
	}
}

// send replaces an unread update so the consumer always sees the latest.
func (w *Watcher) send(r Reload) {
	for {
		select {
		case w.updates <- r:
			return
		case <-w.ctx.Done():
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
