package engine

import (
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// beepHandle is one decoded track queued on the shared speaker.
type beepHandle struct {
	mu sync.Mutex

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	level      float64
	started    bool
	closed     bool
	onFinished func(ok bool)
}

// Verify beepHandle implements Handle at compile time.
var _ Handle = (*beepHandle)(nil)

// Play starts or resumes playback. The first call queues the track on the
// speaker; later calls just unpause.
func (h *beepHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if h.started {
		speaker.Lock()
		h.ctrl.Paused = false
		speaker.Unlock()
		return
	}
	h.started = true
	// The callback fires under the speaker lock; hop to a fresh goroutine
	// before touching the handle mutex or anything re-entrant.
	speaker.Play(beep.Seq(h.volume, beep.Callback(func() {
		go h.finished()
	})))
}

// finished runs once the stream is exhausted, on its own goroutine.
func (h *beepHandle) finished() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	fn := h.onFinished
	h.started = false
	ok := h.streamer.Err() == nil
	h.mu.Unlock()

	if fn != nil {
		fn(ok)
	}
}

// Pause pauses playback, keeping the current position.
func (h *beepHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || !h.started {
		return
	}
	speaker.Lock()
	h.ctrl.Paused = true
	speaker.Unlock()
}

// Stop halts playback. The position is left where the stream stands; the
// caller decides whether to rewind.
func (h *beepHandle) Stop() {
	h.Pause()
}

// IsPlaying reports whether the track is queued and not paused.
func (h *beepHandle) IsPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || !h.started {
		return false
	}
	speaker.Lock()
	paused := h.ctrl.Paused
	speaker.Unlock()
	return !paused
}

// Position returns the current playback offset.
// Read without the speaker lock: may be one buffer stale, never deadlocks.
func (h *beepHandle) Position() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0
	}
	return h.format.SampleRate.D(h.streamer.Position())
}

// SetPosition seeks to pos, clamped to the stream bounds.
func (h *beepHandle) SetPosition(pos time.Duration) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	n := h.format.SampleRate.N(pos)
	if n < 0 {
		n = 0
	}
	if l := h.streamer.Len(); n > l {
		n = l
	}
	speaker.Lock()
	err := h.streamer.Seek(n)
	speaker.Unlock()
	return err
}

// Duration returns the total track length.
func (h *beepHandle) Duration() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0
	}
	return h.format.SampleRate.D(h.streamer.Len())
}

// Volume returns the last applied output level.
func (h *beepHandle) Volume() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level
}

// SetVolume applies an output level in [0,1]. Zero silences the stream;
// other levels map onto beep's base-2 logarithmic scale.
func (h *beepHandle) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.level = level
	speaker.Lock()
	if level <= 0 {
		h.volume.Silent = true
	} else {
		h.volume.Silent = false
		h.volume.Volume = math.Log2(level)
	}
	speaker.Unlock()
}

// PrepareToPlay forces the decoder to fill its first frame so Play starts
// without a stall.
func (h *beepHandle) PrepareToPlay() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.started {
		return nil
	}
	return h.streamer.Seek(h.streamer.Position())
}

// OnFinished registers the finish callback. Must be set before Play.
func (h *beepHandle) OnFinished(fn func(ok bool)) {
	h.mu.Lock()
	h.onFinished = fn
	h.mu.Unlock()
}

// Close removes the track from the speaker and releases the decoder and
// file. A closed handle never fires its finish callback.
func (h *beepHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	if h.started {
		speaker.Clear()
		h.started = false
	}
	err := h.streamer.Close()
	if cerr := h.file.Close(); err == nil {
		err = cerr
	}
	return err
}
