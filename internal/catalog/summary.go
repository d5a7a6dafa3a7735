package catalog

import (
	"errors"

	"github.com/handiism/music-catalog/internal/model"
)

// AlbumStats holds the per-album aggregates shown in reports.
type AlbumStats struct {
	Album model.Album

	// Songs is the number of songs on the album.
	Songs int

	// Total is the summed duration in seconds.
	Total float64

	// Average is the mean song duration in seconds. Zero when Songs is zero.
	Average float64
}

// Summary is a snapshot of catalog-wide aggregates.
type Summary struct {
	Albums         int
	Songs          int
	SongsInNoAlbum int
	TotalDuration  float64

	// LongestSong and LongestAlbum are empty when the underlying
	// collection is empty.
	LongestSong  string
	LongestAlbum string
}

// AlbumStats returns aggregates for every album, sorted by album name.
func (c *Catalog) AlbumStats() []AlbumStats {
	albums := c.Albums()
	totals := c.albumTotals()
	stats := make([]AlbumStats, 0, len(albums))
	for _, album := range albums {
		st := AlbumStats{
			Album: album,
			Songs: c.CountSongs(album.Name),
			Total: totals[album.Name],
		}
		if avg, ok := c.AverageDurationOfSongs(album.Name); ok {
			st.Average = avg
		}
		stats = append(stats, st)
	}
	return stats
}

// Summary computes catalog-wide aggregates.
func (c *Catalog) Summary() (Summary, error) {
	s := Summary{
		Albums:         len(c.albums),
		Songs:          len(c.songs),
		SongsInNoAlbum: c.CountSongsInNoAlbum(),
	}
	for _, song := range c.songs {
		s.TotalDuration += song.Duration
	}

	var err error
	if s.LongestSong, err = c.LongestSong(); err != nil && !errors.Is(err, ErrEmptyCollection) {
		return s, err
	}
	if s.LongestAlbum, err = c.LongestAlbum(); err != nil && !errors.Is(err, ErrEmptyCollection) {
		return s, err
	}
	return s, nil
}
