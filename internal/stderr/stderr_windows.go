//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio backends don't produce the same stderr noise as ALSA.
package stderr

import "os"

// Capture is a no-op on Windows.
type Capture struct {
	lines chan string
}

// Start returns an inert capture. Nothing is redirected.
func Start() (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

// Lines returns a channel that never delivers.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop closes the Lines channel.
func (c *Capture) Stop() {
	close(c.lines)
}
