package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handiism/music-catalog/internal/catalog"
	"github.com/handiism/music-catalog/internal/model"
)

// Format identifies the encoding of a manifest document.
type Format int

const (
	// FormatJSON is a JSON document.
	FormatJSON Format = iota
	// FormatYAML is a YAML document.
	FormatYAML
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// ParseFormat converts a format name ("json", "yaml", "yml") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, fmt.Errorf("unknown manifest format: %q", name)
	}
}

// FormatFromPath picks a Format from a file extension.
// Files ending in .yaml or .yml are YAML; everything else is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// IsManifestPath reports whether path has a manifest file extension.
func IsManifestPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Parse decodes and validates a manifest document.
//
// Validation rejects albums and songs with an empty name and durations that
// are negative, NaN or infinite. Errors name the offending entry:
//
//	m, err := manifest.Parse(data, manifest.FormatYAML)
//	if err != nil {
//	    return fmt.Errorf("failed to read manifest: %w", err)
//	}
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every album has a name and that every song has a
// name and a finite, non-negative duration.
func (m *Manifest) Validate() error {
	for i, a := range m.Albums {
		if a.Name == "" {
			return fmt.Errorf("album #%d: album name is empty", i+1)
		}
		for j, s := range a.Songs {
			if err := s.validate(); err != nil {
				return fmt.Errorf("album %q (#%d) song #%d: %w", a.Name, i+1, j+1, err)
			}
		}
	}
	for i, s := range m.Singles {
		if err := s.validate(); err != nil {
			return fmt.Errorf("single #%d: %w", i+1, err)
		}
	}
	return nil
}

func (s SongEntry) validate() error {
	if s.Name == "" {
		return fmt.Errorf("song name is empty")
	}
	d := float64(s.Duration)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("song %q: duration is not a finite number", s.Name)
	}
	if d < 0 {
		return fmt.Errorf("song %q: duration %g is negative", s.Name, d)
	}
	return nil
}

// Apply adds the manifest's contents to c.
//
// Every album is registered before any song is added, so album songs may
// appear in any order. A repeated album name keeps the year of its last
// entry. Apply returns the first catalog error; songs applied before it
// remain in the catalog.
func (m *Manifest) Apply(c *catalog.Catalog) error {
	for _, a := range m.Albums {
		c.AddAlbum(a.Name, a.Year)
	}
	for _, a := range m.Albums {
		for _, s := range a.Songs {
			if err := c.AddSong(s.Name, model.InAlbum(a.Name), float64(s.Duration)); err != nil {
				return err
			}
		}
	}
	for _, s := range m.Singles {
		if err := c.AddSong(s.Name, model.NoAlbum(), float64(s.Duration)); err != nil {
			return err
		}
	}
	return nil
}

// Songs returns the number of songs the manifest describes.
func (m *Manifest) Songs() int {
	n := len(m.Singles)
	for _, a := range m.Albums {
		n += len(a.Songs)
	}
	return n
}

// FromCatalog builds a manifest describing the contents of c.
//
// Albums are ordered by name and songs follow the catalog's song order,
// so the same catalog always produces the same document. Albums without
// songs are kept.
func FromCatalog(c *catalog.Catalog) *Manifest {
	albums := c.Albums()
	m := &Manifest{Albums: make([]AlbumEntry, 0, len(albums))}

	for _, a := range albums {
		entry := AlbumEntry{Name: a.Name, Year: a.Year}
		for _, s := range c.SongsInAlbum(a.Name) {
			entry.Songs = append(entry.Songs, SongEntry{Name: s.Name, Duration: Duration(s.Duration)})
		}
		m.Albums = append(m.Albums, entry)
	}

	for _, s := range c.SongsInNoAlbum() {
		m.Singles = append(m.Singles, SongEntry{Name: s.Name, Duration: Duration(s.Duration)})
	}
	return m
}

// Encode serializes the manifest in the given format.
func (m *Manifest) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("failed to encode manifest YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode manifest YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode manifest JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
}
