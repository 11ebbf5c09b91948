package playback

import "fmt"

// LoadError is returned when a source could not be loaded: the engine
// rejected the source, priming failed, or the output session could not be
// activated. The player's prior loaded state is left untouched.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
