// internal/playback/state_test.go
package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateEmpty, "Empty"},
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateFinished, "Finished"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsLoaded(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateEmpty, false},
		{StateStopped, true},
		{StatePlaying, true},
		{StatePaused, true},
		{StateFinished, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsLoaded(); got != tt.want {
			t.Errorf("%v.IsLoaded() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateEmpty, false},
		{StateStopped, false},
		{StatePlaying, true},
		{StatePaused, true},
		{StateFinished, false},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}
