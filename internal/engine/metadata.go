package engine

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// Common metadata keys. Only keys with a non-empty value appear in the
// result of ReadCommonMetadata.
const (
	MetaTitle       = "title"
	MetaArtist      = "artist"
	MetaAlbum       = "album"
	MetaAlbumArtist = "album_artist"
	MetaComposer    = "composer"
	MetaGenre       = "genre"
	MetaYear        = "year"
	MetaTrack       = "track"
)

// ReadCommonMetadata extracts the common textual tags from source.
func (e *Beep) ReadCommonMetadata(source string) map[string]string {
	f, err := os.Open(source)
	if err != nil {
		return nil
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// dhowden/tag rejects some UTF-16 encoded ID3 frames; fall back
		// to a plain ID3v2 read for MP3s.
		if strings.ToLower(filepath.Ext(source)) == extMP3 {
			return readMP3Metadata(source)
		}
		return nil
	}

	meta := map[string]string{}
	put(meta, MetaTitle, m.Title())
	put(meta, MetaArtist, m.Artist())
	put(meta, MetaAlbum, m.Album())
	put(meta, MetaAlbumArtist, m.AlbumArtist())
	put(meta, MetaComposer, m.Composer())
	put(meta, MetaGenre, m.Genre())
	if year := m.Year(); year != 0 {
		meta[MetaYear] = strconv.Itoa(year)
	}
	if track, _ := m.Track(); track != 0 {
		meta[MetaTrack] = strconv.Itoa(track)
	}
	return meta
}

// readMP3Metadata reads ID3v2 frames directly with bogem/id3v2.
func readMP3Metadata(source string) map[string]string {
	t, err := id3v2.Open(source, id3v2.Options{Parse: true})
	if err != nil {
		return nil
	}
	defer t.Close()

	meta := map[string]string{}
	put(meta, MetaTitle, t.Title())
	put(meta, MetaArtist, t.Artist())
	put(meta, MetaAlbum, t.Album())
	put(meta, MetaGenre, t.Genre())
	put(meta, MetaYear, t.Year())
	return meta
}

func put(meta map[string]string, key, value string) {
	if value != "" {
		meta[key] = value
	}
}
