// Package engine wraps the host audio facility behind a narrow contract.
// Decoding, mixing and output are delegated to gopxl/beep and the speaker
// device; nothing above this package touches beep directly.
package engine

import "time"

// Handle is one loaded, playable track. A handle is owned by exactly one
// player at a time and is released with Close when replaced.
type Handle interface {
	Play()
	Pause()
	Stop()
	IsPlaying() bool
	Position() time.Duration
	SetPosition(pos time.Duration) error
	Duration() time.Duration
	Volume() float64
	SetVolume(level float64)
	// PrepareToPlay primes the decoder so the first Play starts without a
	// decode stall.
	PrepareToPlay() error
	// OnFinished registers fn to be called once the track ends. ok is false
	// when playback ended because the stream reported an error. fn is
	// invoked on its own goroutine, never under the speaker lock.
	OnFinished(fn func(ok bool))
	Close() error
}

// Session is the process-wide shared audio output. Activate is idempotent
// and must succeed before a handle can produce sound.
type Session interface {
	Activate() error
}

// Engine opens audio sources and exposes the shared output session.
type Engine interface {
	Open(source string) (Handle, error)
	// ReadCommonMetadata returns whatever common textual tags the engine
	// recognizes in source. Absent tags are omitted; the result may be
	// empty or nil. Never fails: unreadable tags yield nil.
	ReadCommonMetadata(source string) map[string]string
	Session() Session
}
