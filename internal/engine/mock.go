package engine

import (
	"sync"
	"time"
)

// Mock is a test double for the Engine contract.
type Mock struct {
	mu        sync.Mutex
	handles   map[string]*MockHandle
	meta      map[string]map[string]string
	openErr   error
	openCalls []string
	session   *MockSession
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		handles: map[string]*MockHandle{},
		meta:    map[string]map[string]string{},
		session: &MockSession{},
	}
}

// Handle returns the handle that Open will produce for source, creating it
// on first use. Configure duration and errors on it before loading.
func (m *Mock) Handle(source string) *MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handles[source]
	if !ok {
		h = &MockHandle{duration: 3 * time.Minute}
		m.handles[source] = h
	}
	return h
}

func (m *Mock) Open(source string) (Handle, error) {
	m.mu.Lock()
	m.openCalls = append(m.openCalls, source)
	err := m.openErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.Handle(source), nil
}

func (m *Mock) ReadCommonMetadata(source string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meta[source]
}

func (m *Mock) Session() Session { return m.session }

// Test helpers

func (m *Mock) SetOpenErr(err error) {
	m.mu.Lock()
	m.openErr = err
	m.mu.Unlock()
}

func (m *Mock) SetMetadata(source string, meta map[string]string) {
	m.mu.Lock()
	m.meta[source] = meta
	m.mu.Unlock()
}

func (m *Mock) OpenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.openCalls...)
}

// MockSession records activations and can be made to fail.
type MockSession struct {
	mu          sync.Mutex
	activateErr error
	activations int
}

func (s *MockSession) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activateErr != nil {
		return s.activateErr
	}
	s.activations++
	return nil
}

func (s *MockSession) SetActivateErr(err error) {
	s.mu.Lock()
	s.activateErr = err
	s.mu.Unlock()
}

func (s *MockSession) Activations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activations
}

// MockHandle simulates a loaded track. While playing, its position advances
// with the wall clock, so tests under testing/synctest control it exactly.
type MockHandle struct {
	mu        sync.Mutex
	duration  time.Duration
	base      time.Duration
	startedAt time.Time
	playing   bool
	closed    bool
	level     float64
	prepErr   error
	seekErr   error
	prepared  int
	seeks     []time.Duration
	onFin     func(ok bool)
}

// Verify mocks implement the contracts at compile time.
var (
	_ Engine  = (*Mock)(nil)
	_ Handle  = (*MockHandle)(nil)
	_ Session = (*MockSession)(nil)
)

func (h *MockHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.playing {
		return
	}
	h.playing = true
	h.startedAt = time.Now()
}

func (h *MockHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.freezeLocked()
}

func (h *MockHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.freezeLocked()
}

// freezeLocked folds elapsed play time into base and stops the clock.
func (h *MockHandle) freezeLocked() {
	if !h.playing {
		return
	}
	h.base = h.positionLocked()
	h.playing = false
}

func (h *MockHandle) IsPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

func (h *MockHandle) Position() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.positionLocked()
}

func (h *MockHandle) positionLocked() time.Duration {
	pos := h.base
	if h.playing {
		pos += time.Since(h.startedAt)
	}
	if pos > h.duration {
		pos = h.duration
	}
	return pos
}

func (h *MockHandle) SetPosition(pos time.Duration) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seeks = append(h.seeks, pos)
	if h.seekErr != nil {
		return h.seekErr
	}
	h.base = pos
	h.startedAt = time.Now()
	return nil
}

func (h *MockHandle) Duration() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.duration
}

func (h *MockHandle) Volume() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level
}

func (h *MockHandle) SetVolume(level float64) {
	h.mu.Lock()
	h.level = level
	h.mu.Unlock()
}

func (h *MockHandle) PrepareToPlay() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prepared++
	return h.prepErr
}

func (h *MockHandle) OnFinished(fn func(ok bool)) {
	h.mu.Lock()
	h.onFin = fn
	h.mu.Unlock()
}

func (h *MockHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.freezeLocked()
	h.closed = true
	return nil
}

// Test helpers

func (h *MockHandle) SetDuration(d time.Duration) {
	h.mu.Lock()
	h.duration = d
	h.mu.Unlock()
}

func (h *MockHandle) SetPrepareErr(err error) {
	h.mu.Lock()
	h.prepErr = err
	h.mu.Unlock()
}

func (h *MockHandle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (h *MockHandle) AppliedVolume() float64 { return h.Volume() }

func (h *MockHandle) Seeks() []time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]time.Duration(nil), h.seeks...)
}

func (h *MockHandle) PrepareCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prepared
}

// SimulateFinished fires the registered finish callback, as the engine does
// when a track ends. ok=false simulates an abnormal end.
func (h *MockHandle) SimulateFinished(ok bool) {
	h.mu.Lock()
	h.freezeLocked()
	fn := h.onFin
	h.mu.Unlock()
	if fn != nil {
		fn(ok)
	}
}
