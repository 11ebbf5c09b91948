// internal/playback/state.go
package playback

// State represents the facade's playback state.
//
// Valid transitions:
//   - Empty    → Stopped  (via Load success; "loaded" and "stopped" are the
//     same playable-but-halted state)
//   - Stopped  → Playing  (via Play or Replay)
//   - Playing  → Paused   (via Pause while playing)
//   - Playing  → Stopped  (via Stop)
//   - Playing  → Finished (notifier tick or engine finish event)
//   - Paused   → Playing  (via Play)
//   - Finished → Playing  (via Play; resumes from wherever the engine
//     left the position)
//
// Load is re-entrant from any state and moves to Stopped for the new
// track, discarding prior state. A failed Load changes nothing.
type State int

const (
	StateEmpty State = iota
	StateStopped
	StatePlaying
	StatePaused
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// IsLoaded returns true if a track is loaded.
func (s State) IsLoaded() bool {
	return s != StateEmpty
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
