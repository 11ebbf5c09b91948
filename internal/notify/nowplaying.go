package notify

import (
	"path/filepath"
	"strings"
)

// nowPlayingTimeout is how long a now-playing notification stays visible.
const nowPlayingTimeout = 5000

// NowPlaying builds the notification shown when a new track starts.
// Title falls back to the source filename when the track carries no tags.
// Body is "Artist · Album" with empty parts skipped.
func NowPlaying(source string, meta map[string]string, replacesID uint32) Notification {
	title := meta["title"]
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	var parts []string
	if artist := meta["artist"]; artist != "" {
		parts = append(parts, artist)
	}
	if album := meta["album"]; album != "" {
		parts = append(parts, album)
	}

	return Notification{
		Title:      title,
		Body:       strings.Join(parts, " · "),
		Icon:       FindAlbumArtPath(source),
		Timeout:    nowPlayingTimeout,
		ReplacesID: replacesID,
		Urgency:    UrgencyLow,
	}
}
