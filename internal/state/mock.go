// internal/state/mock.go
package state

import "database/sql"

// Mock is a test double for Manager.
type Mock struct {
	session   *Session
	positions []Position
	volumes   []float64
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetSession() (*Session, error) {
	if m.session == nil {
		return &Session{Volume: 1.0}, nil
	}
	return m.session, nil
}

func (m *Mock) SaveVolume(volume float64, muted bool) error {
	m.volumes = append(m.volumes, volume)
	if m.session == nil {
		m.session = &Session{}
	}
	m.session.Volume = volume
	m.session.Muted = muted
	return nil
}

func (m *Mock) SavePosition(pos Position) {
	m.positions = append(m.positions, pos)
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSession(s *Session) { m.session = s }

func (m *Mock) SavedPositions() []Position { return m.positions }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
