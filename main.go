package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"

	"github.com/lberthelot/chime/internal/config"
	"github.com/lberthelot/chime/internal/engine"
	"github.com/lberthelot/chime/internal/errmsg"
	"github.com/lberthelot/chime/internal/mpris"
	"github.com/lberthelot/chime/internal/notify"
	"github.com/lberthelot/chime/internal/playback"
	"github.com/lberthelot/chime/internal/state"
	"github.com/lberthelot/chime/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chime: %v\n", err)
		os.Exit(1)
	}
}

// cli holds the interactive session state.
type cli struct {
	rl       *readline.Instance
	player   *playback.Player
	cfg      *config.Config
	stateMgr state.Interface
	saved    *state.Session

	notifier     notify.Notifier
	nowPlayingID uint32
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Capture fd 2 before the audio backend initializes, ALSA writes
	// straight to it and would corrupt the prompt.
	capture, captureErr := stderr.Start()

	player := playback.New(engine.NewBeep())
	defer player.Close()
	player.SetProgressInterval(cfg.GetProgressInterval())
	player.SetVolume(cfg.GetVolume())
	player.SetMuted(cfg.StartMuted)

	rl, err := readline.New("chime> ")
	if err != nil {
		if captureErr == nil {
			capture.Stop()
		}
		return err
	}
	defer rl.Close()

	c := &cli{rl: rl, player: player, cfg: cfg}

	if captureErr != nil {
		c.printf("%s\n", errmsg.Format(errmsg.OpStderrSetup, captureErr))
	} else {
		defer capture.Stop()
		go func() {
			for line := range capture.Lines() {
				c.printf("audio: %s\n", line)
			}
		}()
	}

	if cfg.RestoreSessionEnabled() {
		m, err := state.Open()
		if err != nil {
			c.printf("%s\n", errmsg.Format(errmsg.OpStateOpen, err))
		} else {
			c.stateMgr = m
			defer m.Close()
			if s, err := m.GetSession(); err != nil {
				c.printf("%s\n", errmsg.Format(errmsg.OpSessionLoad, err))
			} else {
				c.saved = s
				player.SetVolume(s.Volume)
				player.SetMuted(s.Muted)
			}
		}
	}

	player.SetObserver(&playback.ObserverFuncs{
		OnProgress: func(p *playback.Player, position, _ time.Duration) {
			if c.stateMgr != nil {
				c.stateMgr.SavePosition(state.Position{Source: p.Source(), Position: position})
			}
		},
		OnFinished: func(p *playback.Player) {
			c.printf("finished: %s\n", filepath.Base(p.Source()))
		},
		OnMetadataUpdated: func(_ *playback.Player, meta map[string]string) {
			if title, ok := meta[engine.MetaTitle]; ok {
				c.printf("now loaded: %s - %s\n", meta[engine.MetaArtist], title)
			}
		},
		OnLoadFailed: func(_ *playback.Player, source string, err error) {
			c.printf("%s\n", errmsg.FormatWith(errmsg.OpLoad, source, err))
		},
	})

	if cfg.MPRISEnabled() {
		if adapter, err := mpris.New(player); err != nil {
			c.printf("%s\n", errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	if cfg.NotificationsEnabled() {
		c.notifier, _ = notify.New()
	}

	if c.saved != nil && c.saved.LastSource != "" {
		c.printf("last session: %s at %s (type 'resume')\n",
			filepath.Base(c.saved.LastSource), formatDuration(c.saved.LastPosition))
	}

	c.repl()
	return nil
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.rl.Stdout(), format, args...)
}

func (c *cli) repl() {
	for {
		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "load":
			c.load(arg)
		case "resume":
			c.resume()
		case "play":
			c.player.Play()
		case "pause":
			c.player.Pause()
		case "replay":
			c.player.Replay()
		case "stop":
			c.player.Stop()
		case "seek":
			if d, err := time.ParseDuration(arg); err == nil {
				c.player.Seek(d)
			} else {
				c.printf("seek: bad duration %q\n", arg)
			}
		case "fwd":
			c.player.SkipForward(parseDurationOr(arg, 10*time.Second))
		case "back":
			c.player.SkipBackward(parseDurationOr(arg, 10*time.Second))
		case "vol":
			c.volume(arg)
		case "mute":
			c.player.SetMuted(true)
			c.saveVolume()
		case "unmute":
			c.player.SetMuted(false)
			c.saveVolume()
		case "status":
			c.status()
		case "quit", "exit":
			return
		default:
			c.printf("unknown command %q (load/resume/play/pause/replay/stop/seek/fwd/back/vol/mute/unmute/status/quit)\n", cmd)
		}
	}
}

func (c *cli) load(arg string) {
	if arg == "" {
		c.printf("load: missing path\n")
		return
	}
	source := arg
	if !filepath.IsAbs(source) && c.cfg.MusicFolder != "" {
		source = filepath.Join(c.cfg.MusicFolder, source)
	}
	if ext := filepath.Ext(source); !c.cfg.ExtensionAllowed(ext) {
		c.printf("load: extension %q excluded by config\n", ext)
		return
	}
	if err := c.player.Load(source); err != nil {
		return // already reported via the observer
	}
	if fi, err := os.Stat(source); err == nil {
		c.printf("loaded %s (%s)\n", filepath.Base(source), humanize.Bytes(uint64(fi.Size())))
	}
	c.player.Play()
	c.notifyNowPlaying(source)
}

func (c *cli) resume() {
	if c.saved == nil || c.saved.LastSource == "" {
		c.printf("no saved session\n")
		return
	}
	if err := c.player.Load(c.saved.LastSource); err != nil {
		return
	}
	c.player.Seek(c.saved.LastPosition)
	c.player.Play()
	c.notifyNowPlaying(c.saved.LastSource)
}

func (c *cli) volume(arg string) {
	if arg == "" {
		c.printf("volume: %.2f\n", c.player.Volume())
		return
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		c.printf("vol: bad level %q\n", arg)
		return
	}
	c.player.SetVolume(v)
	c.saveVolume()
}

func (c *cli) status() {
	st := c.player.State()
	c.printf("state: %s\n", st)
	if !st.IsLoaded() {
		return
	}
	pos, _ := c.player.Position()
	dur, _ := c.player.Duration()
	c.printf("track: %s [%s / %s]\n", filepath.Base(c.player.Source()), formatDuration(pos), formatDuration(dur))
	muted := ""
	if c.player.Muted() {
		muted = " (muted)"
	}
	c.printf("volume: %.2f%s\n", c.player.Volume(), muted)
}

func (c *cli) saveVolume() {
	if c.stateMgr == nil {
		return
	}
	if err := c.stateMgr.SaveVolume(c.player.Volume(), c.player.Muted()); err != nil {
		c.printf("%s\n", errmsg.Format(errmsg.OpVolumeSave, err))
	}
}

func (c *cli) notifyNowPlaying(source string) {
	if c.notifier == nil {
		return
	}
	n := notify.NowPlaying(source, c.player.Metadata(), c.nowPlayingID)
	if id, err := c.notifier.Notify(n); err == nil {
		c.nowPlayingID = id
	}
}

func parseDurationOr(arg string, fallback time.Duration) time.Duration {
	if arg == "" {
		return fallback
	}
	if d, err := time.ParseDuration(arg); err == nil {
		return d
	}
	return fallback
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
