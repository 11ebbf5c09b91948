package playback

import "time"

// Transport operations. Every one of them is a silent no-op while nothing
// is loaded, and all of them run under the player's single mutex so calls
// on the same player never interleave.

// Play begins or resumes playback from the current position and starts the
// progress notifier.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	p.handle.Play()
	p.state = StatePlaying
	p.startNotifierLocked()
}

// Pause pauses playback if playing, recording whether a real pause
// happened: wasPaused stays false when Pause is called while already
// paused or stopped. The notifier stops either way.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	if p.handle.IsPlaying() {
		p.handle.Pause()
		p.wasPaused = true
		p.state = StatePaused
	} else {
		p.wasPaused = false
	}
	p.stopNotifierLocked()
}

// Replay restarts the current track from position zero.
func (p *Player) Replay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	p.handle.Stop()
	_ = p.handle.SetPosition(0)
	p.handle.Play()
	p.state = StatePlaying
	p.startNotifierLocked()
}

// Stop halts playback and the notifier. The position stays wherever the
// engine leaves it; unlike Replay it is not reset to zero.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	p.handle.Stop()
	p.state = StateStopped
	p.stopNotifierLocked()
}

// Seek sets the playback position. The facade does not clamp; out-of-range
// values are passed through and the engine decides. If playback is active
// the notifier restarts so the next tick reflects the new position
// immediately.
func (p *Player) Seek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	_ = p.handle.SetPosition(pos)
	p.restartNotifierIfPlayingLocked()
}

// SkipBackward moves the position back by delta, clamped at zero.
func (p *Player) SkipBackward(delta time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	pos := p.handle.Position() - delta
	if pos < 0 {
		pos = 0
	}
	_ = p.handle.SetPosition(pos)
	p.restartNotifierIfPlayingLocked()
}

// SkipForward moves the position forward by delta, clamped at the track
// duration.
func (p *Player) SkipForward(delta time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	pos := p.handle.Position() + delta
	if d := p.handle.Duration(); pos > d {
		pos = d
	}
	_ = p.handle.SetPosition(pos)
	p.restartNotifierIfPlayingLocked()
}

// Position returns the current playback offset. ok is false when nothing
// is loaded.
func (p *Player) Position() (pos time.Duration, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return 0, false
	}
	return p.handle.Position(), true
}

// Duration returns the total track length. ok is false when nothing is
// loaded.
func (p *Player) Duration() (d time.Duration, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return 0, false
	}
	return p.handle.Duration(), true
}
