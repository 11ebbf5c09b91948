package playback

import "time"

// Observer receives playback events. The player holds a non-owning
// reference: it never extends the observer's lifetime, and SetObserver(nil)
// detaches at any point. Callbacks are invoked outside the player's
// internal lock, so an observer may call back into the player.
//
// Finished can fire twice for one run when both the progress notifier and
// the engine's own finish event trigger; observers must be idempotent.
type Observer interface {
	// Progress fires at most once per notifier interval while playing.
	Progress(p *Player, position, remaining time.Duration)
	// Finished fires when a playback run completes.
	Finished(p *Player)
	// MetadataUpdated fires at most once per successful Load, and only
	// when the source carried at least one recognized tag.
	MetadataUpdated(p *Player, meta map[string]string)
	// LoadFailed fires when Load returns an error.
	LoadFailed(p *Player, source string, err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are no-ops.
type ObserverFuncs struct {
	OnProgress        func(p *Player, position, remaining time.Duration)
	OnFinished        func(p *Player)
	OnMetadataUpdated func(p *Player, meta map[string]string)
	OnLoadFailed      func(p *Player, source string, err error)
}

// Verify ObserverFuncs implements Observer at compile time.
var _ Observer = (*ObserverFuncs)(nil)

func (o *ObserverFuncs) Progress(p *Player, position, remaining time.Duration) {
	if o.OnProgress != nil {
		o.OnProgress(p, position, remaining)
	}
}

func (o *ObserverFuncs) Finished(p *Player) {
	if o.OnFinished != nil {
		o.OnFinished(p)
	}
}

func (o *ObserverFuncs) MetadataUpdated(p *Player, meta map[string]string) {
	if o.OnMetadataUpdated != nil {
		o.OnMetadataUpdated(p, meta)
	}
}

func (o *ObserverFuncs) LoadFailed(p *Player, source string, err error) {
	if o.OnLoadFailed != nil {
		o.OnLoadFailed(p, source, err)
	}
}
