// Package catalog implements the in-memory music catalog and its queries.
//
// # Populating
//
// Albums must be registered before songs that refer to them:
//
//	c := catalog.New()
//	c.AddAlbum("Abbey Road", 1969)
//	err := c.AddSong("Something", model.InAlbum("Abbey Road"), 182.5)
//	err = c.AddSong("Hey Jude", model.NoAlbum(), 431)
//
// Adding a song for an unknown album fails with ErrInvalidReference.
// Songs are values, so adding the same song twice stores it once.
//
// # Querying
//
//	c.OrderedSongNames()                    // ["Hey Jude", "Something"]
//	c.AlbumInYear(1969)                     // ["Abbey Road"]
//	c.CountSongs("Abbey Road")              // 1
//	avg, ok := c.AverageDurationOfSongs("Abbey Road")
//	name, err := c.LongestSong()            // "Hey Jude"
//	name, err = c.LongestAlbum()            // "Abbey Road"
//
// LongestSong and LongestAlbum return ErrEmptyCollection when there is
// nothing to choose from. Ties are broken deterministically: the first song
// in name/album/duration order, and the smallest album name.
//
// # Concurrency
//
// A Catalog has no internal locking. Populate it from one goroutine, then
// share it read-only.
package catalog
