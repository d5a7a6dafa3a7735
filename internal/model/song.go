package model

import (
	"fmt"
	"strings"

	ioutils "github.com/handiism/music-catalog/internal/io"
)

// AlbumRef is the optional link from a song to the album containing it.
//
// The zero value means "not on any album". An album literally named ""
// is still a present reference, so use NoAlbum and InAlbum rather than
// comparing names against the empty string.
type AlbumRef struct {
	name    string
	present bool
}

// NoAlbum returns a reference to no album.
func NoAlbum() AlbumRef {
	return AlbumRef{}
}

// InAlbum returns a reference to the album with the given name.
func InAlbum(name string) AlbumRef {
	return AlbumRef{name: name, present: true}
}

// Get returns the album name and whether a reference is present.
func (r AlbumRef) Get() (string, bool) {
	return r.name, r.present
}

// IsPresent reports whether the reference names an album.
func (r AlbumRef) IsPresent() bool {
	return r.present
}

// Is reports whether the reference names exactly the given album.
func (r AlbumRef) Is(name string) bool {
	return r.present && r.name == name
}

func (r AlbumRef) String() string {
	if !r.present {
		return "<no album>"
	}
	return r.name
}

// Song represents a single song.
//
// Songs are values: two songs with the same Name, Album and Duration are the
// same catalog entry.
//
// Example:
//
//	song := NewSong("Come Together", InAlbum("Abbey Road"), 259.0)
//	// song.Album.Is("Abbey Road") == true
type Song struct {
	// Name is the song title.
	Name string

	// Album is the album the song belongs to, if any.
	Album AlbumRef

	// Duration is the song length in seconds.
	Duration float64
}

// NewSong creates a new Song.
func NewSong(name string, album AlbumRef, duration float64) Song {
	return Song{
		Name:     name,
		Album:    album,
		Duration: duration,
	}
}

// FileName computes a file name from a template.
//
// Supported placeholders:
//   - {title} - Song name
//   - {album} - Album name (empty when the song is on no album)
//
// The template must include the file extension. Invalid filename characters
// are replaced with underscores.
//
// Example:
//
//	NewSong("Airbag", InAlbum("OK Computer"), 284).FileName("{album} - {title}.mp3")
//	// "OK Computer - Airbag.mp3"
func (s Song) FileName(format string) string {
	album, _ := s.Album.Get()
	fileName := format
	fileName = strings.ReplaceAll(fileName, "{album}", album)
	fileName = strings.ReplaceAll(fileName, "{title}", s.Name)
	return ioutils.SanitizeFileName(fileName)
}

func (s Song) String() string {
	return fmt.Sprintf("%s [%s] %.1fs", s.Name, s.Album, s.Duration)
}
