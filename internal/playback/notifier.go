package playback

import "time"

// The progress notifier is one goroutine with a ticker. At most one exists
// per player: startNotifierLocked always cancels the prior one first. Each
// tick re-enters the player mutex, so a tick never observes a handle
// mid-mutation.

func (p *Player) startNotifierLocked() {
	p.stopNotifierLocked()
	stop := make(chan struct{})
	p.notifyStop = stop
	go p.notifyLoop(stop, p.interval)
}

func (p *Player) stopNotifierLocked() {
	if p.notifyStop != nil {
		close(p.notifyStop)
		p.notifyStop = nil
	}
}

func (p *Player) restartNotifierIfPlayingLocked() {
	if p.handle != nil && p.handle.IsPlaying() {
		p.startNotifierLocked()
	}
}

func (p *Player) notifyLoop(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !p.tick(stop) {
				return
			}
		}
	}
}

// tick emits one Progress, or one Finished when the track has run out.
// Returns false when the loop should end. The observer is called outside
// the lock.
func (p *Player) tick(stop chan struct{}) bool {
	p.mu.Lock()
	// Stale loop: a newer notifier took over while this one was waiting.
	if p.notifyStop != stop || p.handle == nil {
		p.mu.Unlock()
		return false
	}
	pos := p.handle.Position()
	remaining := p.handle.Duration() - pos
	finished := remaining <= 0
	if finished {
		p.state = StateFinished
		p.stopNotifierLocked()
	}
	obs := p.observer
	p.mu.Unlock()

	if finished {
		if obs != nil {
			obs.Finished(p)
		}
		return false
	}
	if obs != nil {
		obs.Progress(p, pos, remaining)
	}
	return true
}
