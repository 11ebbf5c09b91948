package playback

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/lberthelot/chime/internal/engine"
)

// Full run of a 10 second track: Progress near t=1..9, exactly one
// Finished at t=10, then silence.
func TestNotifier_FullPlaybackRun(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		eng.Handle("/music/a.mp3").SetDuration(10 * time.Second)
		rec := &recorder{}
		p := New(eng)
		p.SetObserver(rec)
		if err := p.Load("/music/a.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defer p.Close()

		p.Play()
		time.Sleep(11 * time.Second)
		synctest.Wait()

		events := rec.progressEvents()
		if len(events) != 9 {
			t.Fatalf("got %d progress events, want 9", len(events))
		}
		for i, e := range events {
			wantPos := time.Duration(i+1) * time.Second
			if e.position != wantPos {
				t.Errorf("event %d: position = %v, want %v", i, e.position, wantPos)
			}
			if e.remaining != 10*time.Second-wantPos {
				t.Errorf("event %d: remaining = %v, want %v", i, e.remaining, 10*time.Second-wantPos)
			}
		}
		if got := rec.finishedCount(); got != 1 {
			t.Errorf("finished count = %d, want exactly 1", got)
		}
		if p.State() != StateFinished {
			t.Errorf("State() = %v, want Finished", p.State())
		}

		// Notifier stopped: further virtual time produces nothing.
		time.Sleep(10 * time.Second)
		synctest.Wait()
		if got := len(rec.progressEvents()); got != 9 {
			t.Errorf("progress events after finish = %d, want still 9", got)
		}
		if got := rec.finishedCount(); got != 1 {
			t.Errorf("finished count after extra time = %d, want still 1", got)
		}
	})
}

// Seeking while playing restarts the notifier, so the next tick reflects
// the new position instead of a stale one.
func TestNotifier_SeekWhilePlayingRestartsTicks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		eng.Handle("/music/a.mp3").SetDuration(10 * time.Second)
		rec := &recorder{}
		p := New(eng)
		p.SetObserver(rec)
		if err := p.Load("/music/a.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defer p.Close()

		p.Play()
		time.Sleep(2500 * time.Millisecond)
		p.Seek(8 * time.Second)

		time.Sleep(time.Second)
		synctest.Wait()

		events := rec.progressEvents()
		if len(events) != 3 {
			t.Fatalf("got %d progress events, want 3", len(events))
		}
		last := events[len(events)-1]
		// Next tick is one interval after the seek: position 9s,
		// remaining 1s - reflecting the seek, not the stale ~7.5s left.
		if last.position != 9*time.Second {
			t.Errorf("position after seek = %v, want 9s", last.position)
		}
		if last.remaining != time.Second {
			t.Errorf("remaining after seek = %v, want 1s", last.remaining)
		}
	})
}

func TestNotifier_SeekWhilePausedDoesNotStartTicks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		eng.Handle("/music/a.mp3").SetDuration(time.Minute)
		rec := &recorder{}
		p := New(eng)
		p.SetObserver(rec)
		if err := p.Load("/music/a.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defer p.Close()

		p.Play()
		time.Sleep(time.Second)
		p.Pause()
		p.Seek(30 * time.Second)

		time.Sleep(5 * time.Second)
		synctest.Wait()
		if got := len(rec.progressEvents()); got != 1 {
			t.Errorf("progress events = %d, want 1 (no ticks while paused)", got)
		}
	})
}

// The engine's own finish event stops the notifier and reports Finished
// when the run completed normally.
func TestEngineFinish_Normal(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		h := eng.Handle("/music/a.mp3")
		h.SetDuration(time.Minute)
		rec := &recorder{}
		p := New(eng)
		p.SetObserver(rec)
		if err := p.Load("/music/a.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defer p.Close()

		p.Play()
		time.Sleep(3 * time.Second)
		h.SimulateFinished(true)
		synctest.Wait()

		if got := rec.finishedCount(); got != 1 {
			t.Errorf("finished count = %d, want 1", got)
		}
		if p.State() != StateFinished {
			t.Errorf("State() = %v, want Finished", p.State())
		}

		time.Sleep(5 * time.Second)
		synctest.Wait()
		if got := len(rec.progressEvents()); got != 3 {
			t.Errorf("notifier still ticking after engine finish: %d events", got)
		}
	})
}

// An abnormal engine finish emits no Finished but still halts the
// notifier, so it cannot keep racing against a defunct handle.
func TestEngineFinish_AbnormalStopsNotifierSilently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		h := eng.Handle("/music/a.mp3")
		h.SetDuration(time.Minute)
		rec := &recorder{}
		p := New(eng)
		p.SetObserver(rec)
		if err := p.Load("/music/a.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defer p.Close()

		p.Play()
		time.Sleep(2 * time.Second)
		h.SimulateFinished(false)
		synctest.Wait()

		if got := rec.finishedCount(); got != 0 {
			t.Errorf("finished count = %d, want 0 for abnormal end", got)
		}
		if p.State() != StateStopped {
			t.Errorf("State() = %v, want Stopped", p.State())
		}

		before := len(rec.progressEvents())
		time.Sleep(5 * time.Second)
		synctest.Wait()
		if got := len(rec.progressEvents()); got != before {
			t.Errorf("notifier still ticking after abnormal finish: %d -> %d", before, got)
		}
	})
}

// Both finish paths may fire for the same run. Dedup is deliberately the
// observer's job.
func TestFinish_DuplicateAcrossPathsTolerated(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		h := eng.Handle("/music/a.mp3")
		h.SetDuration(5 * time.Second)
		rec := &recorder{}
		p := New(eng)
		p.SetObserver(rec)
		if err := p.Load("/music/a.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defer p.Close()

		p.Play()
		time.Sleep(6 * time.Second) // notifier path fires Finished at t=5
		synctest.Wait()
		h.SimulateFinished(true) // engine path fires a second one
		synctest.Wait()

		if got := rec.finishedCount(); got != 2 {
			t.Errorf("finished count = %d, want 2 (one per path)", got)
		}
	})
}

// A finish event from a replaced handle is stale and must be dropped.
func TestEngineFinish_StaleHandleIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		old := eng.Handle("/music/a.mp3")
		old.SetDuration(time.Minute)
		eng.Handle("/music/b.mp3").SetDuration(time.Minute)
		rec := &recorder{}
		p := New(eng)
		p.SetObserver(rec)
		if err := p.Load("/music/a.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if err := p.Load("/music/b.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defer p.Close()

		p.Play()
		old.SimulateFinished(true)
		synctest.Wait()

		if got := rec.finishedCount(); got != 0 {
			t.Errorf("finished count = %d, want 0 for stale handle", got)
		}
		if p.State() != StatePlaying {
			t.Errorf("State() = %v, want Playing", p.State())
		}
	})
}

func TestNotifier_CustomInterval(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng := engine.NewMock()
		eng.Handle("/music/a.mp3").SetDuration(time.Minute)
		rec := &recorder{}
		p := New(eng)
		p.SetObserver(rec)
		p.SetProgressInterval(250 * time.Millisecond)
		if err := p.Load("/music/a.mp3"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		defer p.Close()

		p.Play()
		time.Sleep(time.Second)
		synctest.Wait()
		if got := len(rec.progressEvents()); got != 4 {
			t.Errorf("progress events = %d, want 4 at 250ms interval", got)
		}
	})
}
