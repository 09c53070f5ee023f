// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package hostruntime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPanicLoggerRecoversAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panic.log")
	p := NewPanicLogger(path)
	exited := make(chan int, 1)
	p.exit = func(code int) { exited <- code }
	restored := false
	p.OnPanic(func() { restored = true })

	p.Go("worker", func() { panic("boom") })

	select {
	case code := <-exited:
		if code != 2 {
			t.Errorf("exit code = %d, want 2", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("panic was not recovered")
	}
	if !restored {
		t.Errorf("OnPanic hook not run")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read panic log: %v", err)
	}
	if !strings.Contains(string(data), "panic in worker: boom") {
		t.Errorf("panic log = %q, want the panic message", data)
	}
}

func TestPanicLoggerQuietWithoutPanic(t *testing.T) {
	p := NewPanicLogger("")
	p.exit = func(int) { t.Errorf("exit called without a panic") }
	done := make(chan struct{})
	p.Go("worker", func() { close(done) })
	<-done
}
