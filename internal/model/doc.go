// Package model defines the value types stored in a music catalog.
//
// # Album
//
// Album is identified by its name and carries a release year:
//
//	album := model.NewAlbum("Abbey Road", 1969)
//
// # Song
//
// Song is a value made of a name, an optional album reference and a
// duration in seconds:
//
//	single := model.NewSong("Hey Jude", model.NoAlbum(), 431)
//	track := model.NewSong("Something", model.InAlbum("Abbey Road"), 182.5)
//
// # Album references
//
// AlbumRef distinguishes "no album" from an album named "":
//
//	name, ok := track.Album.Get() // "Abbey Road", true
//	_, ok = single.Album.Get()    // "", false
package model
