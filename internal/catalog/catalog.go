package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/handiism/music-catalog/internal/model"
)

var (
	// ErrInvalidReference is returned by AddSong when the song refers to an
	// album that has not been registered.
	ErrInvalidReference = errors.New("invalid album reference")

	// ErrEmptyCollection is returned by LongestSong and LongestAlbum when
	// there is nothing to pick a maximum from.
	ErrEmptyCollection = errors.New("empty collection")
)

// songKey is the set key of a song. Durations are compared by bit pattern
// after folding -0 into +0 and every NaN into a single NaN, so adding a NaN
// song twice stores it once.
type songKey struct {
	name     string
	album    string
	inAlbum  bool
	duration uint64
}

func keyOf(s model.Song) songKey {
	album, inAlbum := s.Album.Get()
	d := s.Duration
	switch {
	case d == 0:
		d = 0
	case math.IsNaN(d):
		d = math.NaN()
	}
	return songKey{
		name:     s.Name,
		album:    album,
		inAlbum:  inAlbum,
		duration: math.Float64bits(d),
	}
}

// Catalog holds albums and songs and answers aggregate queries over them.
//
// A Catalog is meant to be populated once and then queried. It is not safe
// for concurrent use when any goroutine mutates it.
//
// Example:
//
//	c := catalog.New()
//	c.AddAlbum("Abbey Road", 1969)
//	if err := c.AddSong("Something", model.InAlbum("Abbey Road"), 182.5); err != nil {
//	    return err
//	}
//	name, err := c.LongestSong() // "Something"
type Catalog struct {
	albums map[string]int
	songs  map[songKey]model.Song
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{
		albums: make(map[string]int),
		songs:  make(map[songKey]model.Song),
	}
}

// AddAlbum registers an album, overwriting the year if the name is already known.
func (c *Catalog) AddAlbum(name string, year int) {
	c.albums[name] = year
}

// AddSong adds a song to the catalog.
//
// If album names an album that was never registered, AddSong returns an error
// wrapping ErrInvalidReference and leaves the catalog untouched. Adding a song
// equal to one already stored is a no-op.
func (c *Catalog) AddSong(name string, album model.AlbumRef, duration float64) error {
	if albumName, ok := album.Get(); ok {
		if _, exists := c.albums[albumName]; !exists {
			return fmt.Errorf("%w: %q", ErrInvalidReference, albumName)
		}
	}

	song := model.NewSong(name, album, duration)
	c.songs[keyOf(song)] = song
	return nil
}

// OrderedSongNames returns every song name in ascending order.
//
// Songs sharing a name but differing in album or duration each contribute an entry.
func (c *Catalog) OrderedSongNames() []string {
	names := make([]string, 0, len(c.songs))
	for _, s := range c.songs {
		names = append(names, s.Name)
	}
	slices.Sort(names)
	return names
}

// AlbumNames returns the names of all albums in no particular order.
func (c *Catalog) AlbumNames() []string {
	names := make([]string, 0, len(c.albums))
	for name := range c.albums {
		names = append(names, name)
	}
	return names
}

// AlbumInYear returns the names of albums released in year, in no particular order.
func (c *Catalog) AlbumInYear(year int) []string {
	var names []string
	for name, y := range c.albums {
		if y == year {
			names = append(names, name)
		}
	}
	return names
}

// CountSongs returns the number of songs on the named album.
// Unknown albums have zero songs.
func (c *Catalog) CountSongs(album string) int {
	count := 0
	for _, s := range c.songs {
		if s.Album.Is(album) {
			count++
		}
	}
	return count
}

// CountSongsInNoAlbum returns the number of songs that belong to no album.
func (c *Catalog) CountSongsInNoAlbum() int {
	count := 0
	for _, s := range c.songs {
		if !s.Album.IsPresent() {
			count++
		}
	}
	return count
}

// AverageDurationOfSongs returns the mean duration of the songs on the named
// album. The second result is false when the album has no songs.
func (c *Catalog) AverageDurationOfSongs(album string) (float64, bool) {
	var total float64
	count := 0
	for _, s := range c.songs {
		if s.Album.Is(album) {
			total += s.Duration
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

// LongestSong returns the name of the song with the greatest duration.
//
// Durations are ordered by cmp.Compare, so NaN ranks below every other
// duration, -Inf included. When several songs share the maximum duration,
// the one that comes first in song order (see compareSongs) wins. Returns
// ErrEmptyCollection if the catalog holds no songs.
func (c *Catalog) LongestSong() (string, error) {
	var best model.Song
	found := false
	for _, s := range c.songs {
		n := cmp.Compare(s.Duration, best.Duration)
		if !found || n > 0 || (n == 0 && compareSongs(s, best) < 0) {
			best = s
			found = true
		}
	}
	if !found {
		return "", fmt.Errorf("longest song: %w", ErrEmptyCollection)
	}
	return best.Name, nil
}

// LongestAlbum returns the name of the album whose songs add up to the
// greatest total duration.
//
// Totals are ordered like durations in LongestSong, with NaN lowest. Ties
// go to the lexicographically smallest album name. Returns
// ErrEmptyCollection if no song belongs to an album.
func (c *Catalog) LongestAlbum() (string, error) {
	var (
		best      string
		bestTotal float64
		found     bool
	)
	for name, total := range c.albumTotals() {
		n := cmp.Compare(total, bestTotal)
		if !found || n > 0 || (n == 0 && name < best) {
			best, bestTotal = name, total
			found = true
		}
	}
	if !found {
		return "", fmt.Errorf("longest album: %w", ErrEmptyCollection)
	}
	return best, nil
}

// albumTotals sums song durations per referenced album.
func (c *Catalog) albumTotals() map[string]float64 {
	totals := make(map[string]float64)
	for _, s := range c.songs {
		if name, ok := s.Album.Get(); ok {
			totals[name] += s.Duration
		}
	}
	return totals
}

// Year returns the release year of the named album.
func (c *Catalog) Year(album string) (int, bool) {
	year, ok := c.albums[album]
	return year, ok
}

// Albums returns all albums sorted by name.
func (c *Catalog) Albums() []model.Album {
	albums := make([]model.Album, 0, len(c.albums))
	for name, year := range c.albums {
		albums = append(albums, model.NewAlbum(name, year))
	}
	slices.SortFunc(albums, func(a, b model.Album) int {
		return strings.Compare(a.Name, b.Name)
	})
	return albums
}

// Songs returns all songs in song order.
func (c *Catalog) Songs() []model.Song {
	songs := make([]model.Song, 0, len(c.songs))
	for _, s := range c.songs {
		songs = append(songs, s)
	}
	slices.SortFunc(songs, compareSongs)
	return songs
}

// SongsInAlbum returns the songs on the named album in song order.
func (c *Catalog) SongsInAlbum(album string) []model.Song {
	var songs []model.Song
	for _, s := range c.songs {
		if s.Album.Is(album) {
			songs = append(songs, s)
		}
	}
	slices.SortFunc(songs, compareSongs)
	return songs
}

// SongsInNoAlbum returns the songs that belong to no album in song order.
func (c *Catalog) SongsInNoAlbum() []model.Song {
	var songs []model.Song
	for _, s := range c.songs {
		if !s.Album.IsPresent() {
			songs = append(songs, s)
		}
	}
	slices.SortFunc(songs, compareSongs)
	return songs
}

// Len returns the number of distinct songs.
func (c *Catalog) Len() int {
	return len(c.songs)
}

// compareSongs orders songs by name, then album (songs without an album
// first), then duration.
func compareSongs(a, b model.Song) int {
	if n := strings.Compare(a.Name, b.Name); n != 0 {
		return n
	}
	aName, aOK := a.Album.Get()
	bName, bOK := b.Album.Get()
	if aOK != bOK {
		if !aOK {
			return -1
		}
		return 1
	}
	if n := strings.Compare(aName, bName); n != 0 {
		return n
	}
	return cmp.Compare(a.Duration, b.Duration)
}
