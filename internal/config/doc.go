// Package config provides configuration management for music-catalog.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to the playlist format used by the audio package
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Snapshot stored in ~/.music-catalog/catalog.db
//	// Playlists written to ~/Music/Playlists as extended M3U
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.PlaylistFormat = "pls"
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Snapshot database location and default sources
//   - Concurrency limits when importing
//   - Audio file extensions picked up by the tag scanner
//   - Playlist format and file naming
//   - HTTP timeout and User-Agent for remote manifests
package config
