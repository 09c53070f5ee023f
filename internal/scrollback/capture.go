// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/scrollback/capture.go
// Summary: Runs a command under a pty and streams its output into a Store.
// Notes: Escape sequences are stripped; the store keeps plain text only.

package scrollback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/creack/pty"
)

// CaptureOptions sizes the pty the command sees.
type CaptureOptions struct {
	Cols, Rows int
}

// Capture runs argv under a pty and appends every completed output line to
// store. It returns when the command exits or ctx is cancelled.
func Capture(ctx context.Context, store *Store, argv []string, opts CaptureOptions) error {
	if len(argv) == 0 {
		return errors.New("capture: empty command")
	}
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(),
		"TERM=dumb",
		"COLUMNS="+strconv.Itoa(opts.Cols),
		"LINES="+strconv.Itoa(opts.Rows),
	)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start %q under pty: %w", argv[0], err)
	}
	defer ptmx.Close()
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(opts.Rows), Cols: uint16(opts.Cols)}); err != nil {
		log.Printf("[SCROLLBACK] pty resize failed: %v", err)
	}

	go func() {
		<-ctx.Done()
		ptmx.Close()
	}()

	readErr := pump(ptmx, store)
	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if readErr != nil {
		return readErr
	}
	if waitErr != nil {
		return fmt.Errorf("%s: %w", argv[0], waitErr)
	}
	return nil
}

// pump reads r until EOF, appending complete lines to store as they arrive.
func pump(r io.Reader, store *Store) error {
	var (
		buf     = make([]byte, 4096)
		partial strings.Builder
		strip   ansiStripper
	)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			text := strip.Write(buf[:n])
			var batch []Line
			for {
				i := strings.IndexByte(text, '\n')
				if i < 0 {
					break
				}
				partial.WriteString(text[:i])
				batch = append(batch, Line{Text: cleanLine(partial.String())})
				partial.Reset()
				text = text[i+1:]
			}
			partial.WriteString(text)
			if err := store.Append(batch...); err != nil {
				return err
			}
		}
		if err != nil {
			if partial.Len() > 0 {
				if aerr := store.Append(Line{Text: cleanLine(partial.String())}); aerr != nil {
					return aerr
				}
			}
			// The pty master reports EIO once the child side is closed.
			if errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

// cleanLine drops carriage returns and expands tabs.
func cleanLine(s string) string {
	if i := strings.LastIndexByte(strings.TrimRight(s, "\r"), '\r'); i >= 0 {
		// A bare CR rewinds the line; keep what was written last.
		s = s[i+1:]
	}
	s = strings.TrimRight(s, "\r")
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}

// ansiStripper removes CSI and OSC sequences, carrying state across reads.
type ansiStripper struct {
	state int
}

const (
	stText = iota
	stEsc
	stCSI
	stOSC
	stOSCEsc
)

func (a *ansiStripper) Write(p []byte) string {
	var sb strings.Builder
	for _, b := range p {
		switch a.state {
		case stText:
			if b == 0x1b {
				a.state = stEsc
				continue
			}
			if b < 0x20 && b != '\n' && b != '\r' && b != '\t' {
				continue
			}
			sb.WriteByte(b)
		case stEsc:
			switch b {
			case '[':
				a.state = stCSI
			case ']':
				a.state = stOSC
			default:
				a.state = stText
			}
		case stCSI:
			if b >= 0x40 && b <= 0x7e {
				a.state = stText
			}
		case stOSC:
			switch b {
			case 0x07:
				a.state = stText
			case 0x1b:
				a.state = stOSCEsc
			}
		case stOSCEsc:
			a.state = stText
		}
	}
	return sb.String()
}
