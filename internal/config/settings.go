package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/music-catalog/internal/audio"
)

// Settings holds all configuration options.
type Settings struct {
	// Storage
	DatabasePath string   `json:"database_path"`
	Sources      []string `json:"sources"`

	// Import settings
	MaxConcurrentSources int      `json:"max_concurrent_sources"`
	MaxConcurrentFiles   int      `json:"max_concurrent_files"`
	AudioExtensions      []string `json:"audio_extensions"`

	// Playlist settings
	PlaylistFormat         string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended            bool   `json:"m3u_extended"`
	PlaylistDirectory      string `json:"playlist_directory"`
	PlaylistFileNameFormat string `json:"playlist_file_name_format"`
	SongFileNameFormat     string `json:"song_file_name_format"`

	// HTTP settings
	HTTPTimeoutSeconds int     `json:"http_timeout_seconds"`
	UserAgent          string  `json:"user_agent"`
	FetchMaxRetries    int     `json:"fetch_max_retries"`
	RetryCooldown      float64 `json:"retry_cooldown"` // seconds
	RetryExponent      float64 `json:"retry_exponent"`
}

// DefaultPath returns the default settings file location,
// ~/.music-catalog/config.json.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".music-catalog", "config.json")
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DatabasePath: filepath.Join(homeDir, ".music-catalog", "catalog.db"),

		MaxConcurrentSources: 4,
		MaxConcurrentFiles:   8,
		AudioExtensions:      []string{".mp3", ".flac", ".m4a", ".ogg"},

		PlaylistFormat:         "m3u",
		M3UExtended:            true,
		PlaylistDirectory:      filepath.Join(homeDir, "Music", "Playlists"),
		PlaylistFileNameFormat: "{album}",
		SongFileNameFormat:     "{title}.mp3",

		HTTPTimeoutSeconds: 60,
		UserAgent:          "MusicCatalog",
		FetchMaxRetries:    3,
		RetryCooldown:      0.2,
		RetryExponent:      4.0,
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToPlaylistFormat converts the PlaylistFormat setting to an audio.PlaylistFormat.
// Unknown values fall back to M3U.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	switch s.PlaylistFormat {
	case "pls":
		return audio.FormatPLS
	case "wpl":
		return audio.FormatWPL
	case "zpl":
		return audio.FormatZPL
	default:
		return audio.FormatM3U
	}
}

// HTTPTimeout returns the HTTP timeout as a duration.
func (s *Settings) HTTPTimeout() time.Duration {
	if s.HTTPTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

// RetryDelay returns how long to wait before retry number tries (0-based).
// The delay grows as RetryCooldown * RetryExponent^tries.
func (s *Settings) RetryDelay(tries int) time.Duration {
	cooldown := s.RetryCooldown * math.Pow(s.RetryExponent, float64(tries))
	if cooldown <= 0 || math.IsNaN(cooldown) {
		return 0
	}
	return time.Duration(cooldown * float64(time.Second))
}
