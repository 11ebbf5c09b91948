package playback

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lberthelot/chime/internal/engine"
)

func TestLoad_Success(t *testing.T) {
	eng := engine.NewMock()
	eng.Handle("/music/a.mp3").SetDuration(10 * time.Second)
	p := New(eng)

	require.NoError(t, p.Load("/music/a.mp3"))

	assert.Equal(t, StateStopped, p.State())
	assert.Equal(t, "/music/a.mp3", p.Source())
	d, ok := p.Duration()
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, d)
	assert.Equal(t, 1, eng.Session().(*engine.MockSession).Activations())
	assert.Equal(t, 1, eng.Handle("/music/a.mp3").PrepareCalls())
}

func TestLoad_NotifiesMetadataOnlyWhenPresent(t *testing.T) {
	eng := engine.NewMock()
	eng.SetMetadata("/music/tagged.mp3", map[string]string{
		"title":  "Song",
		"artist": "Band",
	})
	rec := &recorder{}
	p := New(eng)
	p.SetObserver(rec)

	require.NoError(t, p.Load("/music/untagged.wav"))
	assert.Empty(t, rec.metadataEvents(), "no tags, no notification")

	require.NoError(t, p.Load("/music/tagged.mp3"))
	events := rec.metadataEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "Song", events[0]["title"])
	assert.Equal(t, "Band", events[0]["artist"])
	assert.Equal(t, map[string]string{"title": "Song", "artist": "Band"}, p.Metadata())
}

func TestLoad_FailureReturnsLoadErrorAndNotifies(t *testing.T) {
	eng := engine.NewMock()
	cause := errors.New("unsupported codec")
	eng.SetOpenErr(cause)
	rec := &recorder{}
	p := New(eng)
	p.SetObserver(rec)

	err := p.Load("/music/broken.xyz")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "/music/broken.xyz", loadErr.Source)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, StateEmpty, p.State())
	require.Len(t, rec.loadFailures(), 1)
	assert.ErrorIs(t, rec.loadFailures()[0], cause)
}

func TestLoad_SessionActivationFailure(t *testing.T) {
	eng := engine.NewMock()
	eng.Session().(*engine.MockSession).SetActivateErr(errors.New("device busy"))
	p := New(eng)

	err := p.Load("/music/a.mp3")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, StateEmpty, p.State())
	assert.True(t, eng.Handle("/music/a.mp3").Closed(), "handle released on failed load")
}

func TestLoad_FailedReloadKeepsPriorTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		eng.Handle("/music/a.mp3").SetDuration(10 * time.Second)
		p := New(eng)
		require.NoError(t, p.Load("/music/a.mp3"))
		p.Play()
		time.Sleep(2 * time.Second)

		eng.SetOpenErr(errors.New("gone"))
		err := p.Load("/music/b.mp3")
		require.Error(t, err)

		// Load had no effect: the prior track keeps playing.
		assert.Equal(t, "/music/a.mp3", p.Source())
		assert.Equal(t, StatePlaying, p.State())
		pos, ok := p.Position()
		require.True(t, ok)
		assert.GreaterOrEqual(t, pos, 2*time.Second)

		p.Close()
	})
}

func TestLoad_ReplaceReleasesPriorHandle(t *testing.T) {
	eng := engine.NewMock()
	p := New(eng)
	require.NoError(t, p.Load("/music/a.mp3"))
	require.NoError(t, p.Load("/music/b.mp3"))

	assert.True(t, eng.Handle("/music/a.mp3").Closed())
	assert.False(t, eng.Handle("/music/b.mp3").Closed())
	assert.Equal(t, "/music/b.mp3", p.Source())
}

func TestTransportOps_NoOpWhenEmpty(t *testing.T) {
	p := New(engine.NewMock())

	// None of these may panic or change anything.
	p.Play()
	p.Pause()
	p.Replay()
	p.Stop()
	p.Seek(5 * time.Second)
	p.SkipForward(10 * time.Second)
	p.SkipBackward(10 * time.Second)
	p.SetVolume(0.4)
	p.SetMuted(true)

	if _, ok := p.Position(); ok {
		t.Error("Position() ok = true on empty player")
	}
	if _, ok := p.Duration(); ok {
		t.Error("Duration() ok = true on empty player")
	}
	assert.Equal(t, StateEmpty, p.State())
	assert.NoError(t, p.Close())
}

func TestClose_ReleasesAndResets(t *testing.T) {
	eng := engine.NewMock()
	p := New(eng)
	require.NoError(t, p.Load("/music/a.mp3"))
	require.NoError(t, p.Close())

	assert.True(t, eng.Handle("/music/a.mp3").Closed())
	assert.Equal(t, StateEmpty, p.State())
	assert.Empty(t, p.Source())

	// Reusable after Close.
	require.NoError(t, p.Load("/music/b.mp3"))
	assert.Equal(t, StateStopped, p.State())
}
