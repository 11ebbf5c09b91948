package playback

// SetVolume stores the volume level (0.0 to 1.0, clamped) and applies it
// to the engine unless muted. While muted only the stored level changes;
// unmuting restores it exactly.
func (p *Player) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = level
	if p.handle != nil && !p.muted {
		p.handle.SetVolume(level)
	}
}

// Volume returns the stored volume level. It is user intent, independent
// of mute: muting does not change it.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetMuted toggles mute. Muting forces the engine output level to zero;
// unmuting restores the stored volume without ever having changed it.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if p.handle != nil {
		p.handle.SetVolume(p.effectiveVolumeLocked())
	}
}

// Muted returns true if audio is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// OutputLevel returns the level actually applied at the engine: zero while
// muted or when nothing is loaded, the stored volume otherwise.
func (p *Player) OutputLevel() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return 0
	}
	return p.handle.Volume()
}

func (p *Player) effectiveVolumeLocked() float64 {
	if p.muted {
		return 0
	}
	return p.volume
}
