//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/lberthelot/chime/internal/playback"
)

// seekStep is how far the MPRIS Next/Previous actions move within the
// track. There is no queue behind the facade, so they act as coarse seeks.
const seekStep = 10 * time.Second

// Adapter exposes a playback.Player over D-Bus.
type Adapter struct {
	player *playback.Player
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(p *playback.Player) (*Adapter, error) {
	a := &Adapter{player: p}

	a.server = server.NewServer("chime", &rootAdapter{}, &playerAdapter{player: p})

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - the host app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Chime", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	player *playback.Player
}

func (p *playerAdapter) Next() error {
	p.player.SkipForward(seekStep)
	return nil
}

func (p *playerAdapter) Previous() error {
	p.player.SkipBackward(seekStep)
	return nil
}

func (p *playerAdapter) Pause() error {
	p.player.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.player.State() == playback.StatePlaying {
		p.player.Pause()
	} else {
		p.player.Play()
	}
	return nil
}

func (p *playerAdapter) Stop() error {
	p.player.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	p.player.Play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	d := time.Duration(offset) * time.Microsecond
	if d < 0 {
		p.player.SkipBackward(-d)
	} else {
		p.player.SkipForward(d)
	}
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.player.Seek(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.player.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	default:
		return types.PlaybackStatusStopped, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	source := p.player.Source()
	if source == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(source)),
	}
	if d, ok := p.player.Duration(); ok {
		meta.Length = types.Microseconds(d.Microseconds())
	}

	tags := p.player.Metadata()
	meta.Title = tags["title"]
	if artist := tags["artist"]; artist != "" {
		meta.Artist = []string{artist}
	}
	meta.Album = tags["album"]
	if track, err := strconv.Atoi(tags["track"]); err == nil {
		meta.TrackNumber = track
	}
	if artPath := FindAlbumArt(source); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.player.Volume(), nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.player.SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	pos, _ := p.player.Position()
	return pos.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.player.State().IsLoaded(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.player.State().IsLoaded(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.player.State().IsLoaded(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(source string) string {
	h := fnv.New64a()
	h.Write([]byte(source))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
