// Package store persists catalogs in a SQLite database using GORM.
//
// The schema has two tables:
//
//	albums(name PRIMARY KEY, year)
//	songs(id PRIMARY KEY, name, album_name NULL, duration)
//
// A NULL album_name marks a song that belongs to no album.
package store
