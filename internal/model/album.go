package model

import (
	"fmt"
	"strconv"
	"strings"

	ioutils "github.com/handiism/music-catalog/internal/io"
)

// Album represents an album registered in a catalog.
//
// The album name is its identity: a catalog holds at most one album per name,
// and songs refer to their album by that name (see AlbumRef).
//
// Example:
//
//	album := NewAlbum("Abbey Road", 1969)
//	fmt.Println(album) // "Abbey Road" (1969)
type Album struct {
	// Name is the unique album name.
	Name string

	// Year is the release year. No range is enforced.
	Year int
}

// NewAlbum creates a new Album.
func NewAlbum(name string, year int) Album {
	return Album{
		Name: name,
		Year: year,
	}
}

// String returns the album name in quotes followed by its year.
func (a Album) String() string {
	return fmt.Sprintf("%q (%d)", a.Name, a.Year)
}

// FileName computes a file name (without extension) from a template.
//
// Supported placeholders:
//   - {album} - Album name
//   - {year} - Release year
//
// Invalid filename characters are replaced with underscores.
//
// Example:
//
//	NewAlbum("Kid A", 2000).FileName("{year} - {album}") // "2000 - Kid A"
func (a Album) FileName(format string) string {
	fileName := format
	fileName = strings.ReplaceAll(fileName, "{year}", strconv.Itoa(a.Year))
	fileName = strings.ReplaceAll(fileName, "{album}", a.Name)
	return ioutils.SanitizeFileName(fileName)
}
