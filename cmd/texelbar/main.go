// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelbar/main.go
// Summary: Terminal pager with a fading overlay scrollbar.
// Usage: `texelbar -file main.go` pages a highlighted file; `texelbar -- make test`
//   pages the live output of a command run under a pty.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/texelbar/config"
	hostrt "github.com/framegrace/texelbar/internal/runtime/host"
	"github.com/framegrace/texelbar/internal/scrollback"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelbar", flag.ContinueOnError)
	file := fs.String("file", "", "File to page with syntax highlighting")
	logPath := fs.String("log", "", "Log file (default: <config dir>/texelbar/texelbar.log)")
	panicLog := fs.String("panic-log", "", "File to append panic stack traces")
	dumpConfig := fs.Bool("config-dump", false, "Print the effective configuration and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	argv := fs.Args()

	cfg := config.System()
	if err := config.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v (using defaults)\n", err)
	}
	if *dumpConfig {
		return config.Dump(os.Stdout)
	}

	if *file == "" && len(argv) == 0 {
		return errors.New("nothing to show: pass -file PATH or a command")
	}
	if *file != "" && len(argv) > 0 {
		return errors.New("-file and a command are mutually exclusive")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	logFile, err := setupLogging(*logPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	dbPath, err := config.ResolvePath(cfg.GetString("scrollback", "db_path", ""))
	if err != nil {
		return fmt.Errorf("resolve db_path: %w", err)
	}
	store, err := scrollback.Open(dbPath, cfg.GetInt("scrollback", "max_lines", 100000))
	if err != nil {
		return err
	}
	defer store.Close()

	panics := hostrt.NewPanicLogger(*panicLog)
	defer panics.Recover("main")

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	host := hostrt.New(screen, store, hostrt.OptionsFromConfig(cfg), panics)
	if w, err := config.Watch(); err != nil {
		log.Printf("Config: live reload disabled: %v", err)
	} else {
		defer w.Close()
		host.WatchConfig(w.Changed())
	}

	if *file != "" {
		lines, lang, err := scrollback.LoadFile(*file, cfg.GetString("scrollback", "style", ""))
		if err != nil {
			return err
		}
		if err := store.Append(lines...); err != nil {
			return err
		}
		host.Notify(fmt.Sprintf("%s · %s · %d lines", filepath.Base(*file), lang, len(lines)))
	} else {
		cols, rows := screen.Size()
		panics.Go("capture", func() {
			err := scrollback.Capture(ctx, store, argv, scrollback.CaptureOptions{Cols: cols, Rows: rows})
			if err != nil && ctx.Err() == nil {
				log.Printf("[SCROLLBACK] capture %q: %v", argv[0], err)
			}
		})
		host.Notify(fmt.Sprintf("running %s", argv[0]))
	}

	return host.Run(ctx)
}

func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(configDir, "texelbar")
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "texelbar.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
