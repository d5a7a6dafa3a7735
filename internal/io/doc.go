// Package ioutils provides file system utilities.
//
// # File Operations
//
//	// Write data to file, creating parent directories
//	err := ioutils.WriteFile(ctx, "/path/to/playlist.m3u", []byte("content"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
package ioutils
