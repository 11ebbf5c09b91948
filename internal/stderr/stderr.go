//go:build !windows

// Package stderr captures stderr output from C audio libraries (ALSA,
// PulseAudio) that write directly to file descriptor 2, bypassing Go's
// os.Stderr. This prevents raw error messages from corrupting the
// interactive prompt.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Capture holds a redirected stderr. Lines written to fd 2 after Start
// are delivered on the Lines channel instead of the terminal.
type Capture struct {
	orig      int
	pipeRead  *os.File
	pipeWrite *os.File
	lines     chan string
}

// Start begins capturing stderr output.
// Must be called early in main(), before any audio backend initialization.
// If capture cannot be set up the program can continue without it, errors
// will just go to the original stderr.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		orig:      orig,
		pipeRead:  r,
		pipeWrite: w,
		lines:     make(chan string, 100),
	}

	go func() {
		scanner := bufio.NewScanner(c.pipeRead)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case c.lines <- line:
			default:
				// channel full, drop rather than block the reader
			}
		}
	}()

	return c, nil
}

// Lines returns the channel delivering captured stderr lines.
// The channel is closed by Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must stay visible.
func (c *Capture) WriteOriginal(msg string) {
	if c.orig > 0 {
		_, _ = syscall.Write(c.orig, []byte(msg))
	}
}

// Stop restores the original stderr and closes the Lines channel.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)

	c.pipeWrite.Close()
	c.pipeRead.Close()
	close(c.lines)
}
