// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scrollback

import (
	"os"
	"path/filepath"
	"testing"
)

const goSource = "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"

func TestHighlightGo(t *testing.T) {
	lines, lang := Highlight("main.go", []byte(goSource), "")
	if lang != "Go" {
		t.Errorf("lang = %q, want Go", lang)
	}
	if len(lines) != 5 {
		t.Fatalf("len(lines) = %d, want 5: %+v", len(lines), lines)
	}
	if lines[0].Text != "package main" {
		t.Errorf("line 0 = %q", lines[0].Text)
	}
	if lines[1].Text != "" {
		t.Errorf("blank line = %q, want empty", lines[1].Text)
	}
	if lines[3].Text != "    println(\"hi\")" {
		t.Errorf("tab not expanded: %q", lines[3].Text)
	}
	if len(lines[0].Spans) == 0 {
		t.Errorf("keyword line has no spans")
	}
	for i, line := range lines {
		n := len([]rune(line.Text))
		for _, sp := range line.Spans {
			if sp.Start < 0 || sp.End > n || sp.Start >= sp.End {
				t.Errorf("line %d: span %+v out of range for %d runes", i, sp, n)
			}
		}
	}
}

func TestHighlightBinary(t *testing.T) {
	lines, lang := Highlight("blob.bin", []byte{0, 1, 2, 0, 0, 3}, "")
	if lang != "" || len(lines) != 1 {
		t.Errorf("binary: lang=%q lines=%d, want placeholder", lang, len(lines))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte(goSource), 0644); err != nil {
		t.Fatal(err)
	}
	lines, lang, err := LoadFile(path, "monokai")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if lang != "Go" || len(lines) != 5 {
		t.Errorf("LoadFile: lang=%q lines=%d", lang, len(lines))
	}
	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"), ""); err == nil {
		t.Errorf("LoadFile of missing file succeeded")
	}
}
