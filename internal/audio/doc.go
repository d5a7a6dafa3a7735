// Package audio provides audio file services: tag scanning and playlist
// generation.
//
// # Tag Scanning
//
// Use the Scanner to read tags from a directory tree:
//
//	scanner := audio.NewScanner(audio.DefaultScanConfig())
//	tracks, err := scanner.Scan(ctx, "/music", nil)
//
// The scanner reads:
//   - Title, Album, Year from every supported format
//   - Duration from the ID3v2 TLEN frame of MP3 files
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	pl := audio.NewPlaylist("Abbey Road", songs, "{title}.mp3")
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(pl)
//	os.WriteFile("Abbey Road.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
