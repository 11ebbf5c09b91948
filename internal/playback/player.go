// Package playback is a thin state-tracking facade over the audio engine.
// It owns at most one loaded track, serializes every transport operation
// behind one mutex, and reports progress, finish and metadata events to a
// registered observer. It does no decoding or mixing of its own.
package playback

import (
	"maps"
	"sync"
	"time"

	"github.com/lberthelot/chime/internal/engine"
)

// DefaultProgressInterval is the progress notifier period.
const DefaultProgressInterval = time.Second

// Player is the playback facade. One Player per playback session; the
// loaded handle and the progress notifier are owned exclusively by it.
type Player struct {
	mu sync.Mutex

	engine engine.Engine
	handle engine.Handle
	source string
	meta   map[string]string

	state     State
	wasPaused bool
	muted     bool
	volume    float64
	interval  time.Duration

	observer   Observer
	notifyStop chan struct{}
}

// New creates a player on top of eng. Nothing is loaded yet; every
// transport operation is a no-op until Load succeeds.
func New(eng engine.Engine) *Player {
	return &Player{
		engine:   eng,
		state:    StateEmpty,
		volume:   1,
		interval: DefaultProgressInterval,
	}
}

// SetObserver registers the observer, replacing any prior one. Passing nil
// detaches.
func (p *Player) SetObserver(o Observer) {
	p.mu.Lock()
	p.observer = o
	p.mu.Unlock()
}

// SetProgressInterval changes the notifier period. Takes effect the next
// time the notifier starts. Non-positive values reset to the default.
func (p *Player) SetProgressInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultProgressInterval
	}
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
}

// Load opens source on the engine and makes it the current track. On
// success the prior handle is released wholesale, the output session is
// activated, and the observer receives MetadataUpdated if the source
// carried any recognized tags. On failure the player is left exactly as it
// was: a failed reload does not clobber a previously loaded track.
func (p *Player) Load(source string) error {
	h, err := p.engine.Open(source)
	if err != nil {
		return p.loadFailed(source, err)
	}
	if err := h.PrepareToPlay(); err != nil {
		h.Close()
		return p.loadFailed(source, err)
	}
	if err := p.engine.Session().Activate(); err != nil {
		h.Close()
		return p.loadFailed(source, err)
	}
	meta := p.engine.ReadCommonMetadata(source)

	p.mu.Lock()
	p.stopNotifierLocked()
	old := p.handle
	p.handle = h
	p.source = source
	p.meta = meta
	p.state = StateStopped
	h.SetVolume(p.effectiveVolumeLocked())
	// The callback captures h so a late event from a replaced handle is
	// recognized and dropped.
	h.OnFinished(func(ok bool) { p.engineFinished(h, ok) })
	obs := p.observer
	p.mu.Unlock()

	if old != nil {
		old.Close()
	}
	if obs != nil && len(meta) > 0 {
		obs.MetadataUpdated(p, maps.Clone(meta))
	}
	return nil
}

func (p *Player) loadFailed(source string, cause error) error {
	err := &LoadError{Source: source, Err: cause}
	p.mu.Lock()
	obs := p.observer
	p.mu.Unlock()
	if obs != nil {
		obs.LoadFailed(p, source, err)
	}
	return err
}

// engineFinished handles the engine's finish event. An abnormal end (ok
// false) stops the notifier but emits no Finished: the run did not
// complete.
func (p *Player) engineFinished(h engine.Handle, ok bool) {
	p.mu.Lock()
	if p.handle != h {
		p.mu.Unlock()
		return
	}
	p.stopNotifierLocked()
	if ok {
		p.state = StateFinished
	} else {
		p.state = StateStopped
	}
	obs := p.observer
	p.mu.Unlock()

	if ok && obs != nil {
		obs.Finished(p)
	}
}

// State returns the current facade state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Source returns the currently loaded source, or "" if nothing is loaded.
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Metadata returns a copy of the current track's tags, or nil.
func (p *Player) Metadata() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return maps.Clone(p.meta)
}

// WasPaused reports whether the most recent Pause call actually paused
// playback. False means Pause was called while not playing.
func (p *Player) WasPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.wasPaused
}

// Close releases the loaded handle and stops the notifier. The player
// returns to the empty state and can be reused with Load.
func (p *Player) Close() error {
	p.mu.Lock()
	p.stopNotifierLocked()
	old := p.handle
	p.handle = nil
	p.source = ""
	p.meta = nil
	p.state = StateEmpty
	p.mu.Unlock()

	if old != nil {
		return old.Close()
	}
	return nil
}
