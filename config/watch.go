// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Debounced change notifications for the config file.
// Usage: The host watches the system config and reloads it on every signal.

package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher signals edits to one file. Editors that replace the file by
// renaming are handled by watching the parent directory.
type Watcher struct {
	fs      *fsnotify.Watcher
	path    string
	changed chan struct{}
	stop    chan struct{}
	once    sync.Once
}

// Watch watches the system config file.
func Watch() (*Watcher, error) {
	path, err := systemConfigPath()
	if err != nil {
		return nil, err
	}
	return WatchPath(path)
}

// WatchPath watches path, which need not exist yet.
func WatchPath(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		fs:      fsw,
		path:    path,
		changed: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changed is signalled (coalesced) once edits settle.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	name := filepath.Base(w.path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case w.changed <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Config: watch %s: %v", w.path, err)
		}
	}
}
