// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchPathSignalsEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "texelbar.json")
	w, err := WatchPath(path)
	if err != nil {
		t.Fatalf("WatchPath: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changed():
		t.Fatalf("unrelated file triggered a change")
	case <-time.After(3 * watchDebounce):
	}

	// Several quick writes settle into one signal.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`{"theme":{}}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-w.Changed():
	case <-time.After(2 * time.Second):
		t.Fatalf("no change signal after writing %s", path)
	}
	select {
	case <-w.Changed():
		t.Errorf("writes were not coalesced")
	case <-time.After(3 * watchDebounce):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := WatchPath(filepath.Join(t.TempDir(), "texelbar.json"))
	if err != nil {
		t.Fatalf("WatchPath: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
