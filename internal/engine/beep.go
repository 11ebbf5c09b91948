package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
)

// sessionSampleRate is the fixed rate of the shared output session. Tracks
// with a different native rate are resampled on the way out.
const sessionSampleRate = beep.SampleRate(44100)

// Beep is the beep/speaker-backed Engine.
type Beep struct {
	session *beepSession
}

// Verify Beep implements Engine at compile time.
var _ Engine = (*Beep)(nil)

// NewBeep creates a beep-backed engine.
func NewBeep() *Beep {
	return &Beep{session: &beepSession{}}
}

// Session returns the shared output session.
func (e *Beep) Session() Session { return e.session }

// Open decodes source and returns a playable handle. The file stays open
// for the lifetime of the handle.
func (e *Beep) Open(source string) (Handle, error) {
	ext := strings.ToLower(filepath.Ext(source))
	switch ext {
	case extMP3, extFLAC, extWAV, extOGG, extOGA:
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case extMP3:
		streamer, format, err = decodeMP3(f)
	case extFLAC:
		// Some taggers prepend an ID3v2 block the FLAC decoder chokes on.
		if err = skipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
	case extWAV:
		streamer, format, err = wav.Decode(f)
	case extOGG, extOGA:
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	// Resample if the track's rate differs from the session's.
	var out beep.Streamer = streamer
	if format.SampleRate != sessionSampleRate {
		out = beep.Resample(4, format.SampleRate, sessionSampleRate, streamer)
	}

	ctrl := &beep.Ctrl{Streamer: out, Paused: false}
	h := &beepHandle{
		file:     f,
		streamer: streamer,
		format:   format,
		ctrl:     ctrl,
		volume:   &effects.Volume{Streamer: ctrl, Base: 2, Volume: 0, Silent: false},
		level:    1,
	}
	return h, nil
}

// beepSession activates the speaker device once per process.
type beepSession struct {
	mu     sync.Mutex
	active bool
}

func (s *beepSession) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return nil
	}
	err := speaker.Init(sessionSampleRate, sessionSampleRate.N(time.Second/10))
	if err != nil {
		return err
	}
	s.active = true
	return nil
}
