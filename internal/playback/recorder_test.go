package playback

import (
	"sync"
	"time"
)

// recorder is an Observer that records every event for assertions.
type recorder struct {
	mu        sync.Mutex
	progress  []progressEvent
	finished  int
	meta      []map[string]string
	loadFails []error
}

type progressEvent struct {
	position  time.Duration
	remaining time.Duration
}

func (r *recorder) Progress(_ *Player, position, remaining time.Duration) {
	r.mu.Lock()
	r.progress = append(r.progress, progressEvent{position, remaining})
	r.mu.Unlock()
}

func (r *recorder) Finished(_ *Player) {
	r.mu.Lock()
	r.finished++
	r.mu.Unlock()
}

func (r *recorder) MetadataUpdated(_ *Player, meta map[string]string) {
	r.mu.Lock()
	r.meta = append(r.meta, meta)
	r.mu.Unlock()
}

func (r *recorder) LoadFailed(_ *Player, _ string, err error) {
	r.mu.Lock()
	r.loadFails = append(r.loadFails, err)
	r.mu.Unlock()
}

func (r *recorder) progressEvents() []progressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]progressEvent(nil), r.progress...)
}

func (r *recorder) finishedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

func (r *recorder) metadataEvents() []map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]map[string]string(nil), r.meta...)
}

func (r *recorder) loadFailures() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.loadFails...)
}
