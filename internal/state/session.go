package state

import (
	"database/sql"
	"time"

	"github.com/lberthelot/chime/internal/db"
)

// Session is the persisted playback session snapshot.
type Session struct {
	Volume       float64
	Muted        bool
	LastSource   string
	LastPosition time.Duration
}

// Position is the part of the session that changes during playback.
type Position struct {
	Source   string
	Position time.Duration
}

// GetSession returns the saved session, with defaults when none was saved.
func (m *Manager) GetSession() (*Session, error) {
	var volume float64
	var muted bool
	var source sql.NullString
	var positionNs int64

	row := m.db.QueryRow(`SELECT volume, muted, last_source, last_position FROM session_state WHERE id = 1`)
	err := row.Scan(&volume, &muted, &source, &positionNs)
	if err == sql.ErrNoRows {
		return &Session{Volume: 1.0}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Session{
		Volume:       volume,
		Muted:        muted,
		LastSource:   db.NullStringValue(source),
		LastPosition: time.Duration(positionNs),
	}, nil
}

// SaveVolume persists the volume level and mute flag immediately.
func (m *Manager) SaveVolume(volume float64, muted bool) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO session_state (id, volume, muted)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				volume = excluded.volume,
				muted = excluded.muted
		`, volume, muted)
		return err
	})
}

func savePosition(sdb *sql.DB, pos Position) error {
	return db.WithTx(sdb, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO session_state (id, last_source, last_position)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				last_source = excluded.last_source,
				last_position = excluded.last_position
		`, pos.Source, int64(pos.Position))
		return err
	})
}
