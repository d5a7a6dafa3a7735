package manifest

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the declarative form of a catalog.
type Manifest struct {
	Albums  []AlbumEntry `json:"albums" yaml:"albums"`
	Singles []SongEntry  `json:"singles,omitempty" yaml:"singles,omitempty"`
}

// AlbumEntry describes an album and the songs on it.
type AlbumEntry struct {
	Name  string      `json:"name" yaml:"name"`
	Year  int         `json:"year" yaml:"year"`
	Songs []SongEntry `json:"songs,omitempty" yaml:"songs,omitempty"`
}

// SongEntry describes a song. Its album is implied by where it appears.
type SongEntry struct {
	Name     string   `json:"name" yaml:"name"`
	Duration Duration `json:"duration" yaml:"duration"`
}

// Duration is a song length in seconds.
//
// It decodes from a number of seconds (259, 182.5) or a clock string
// ("4:19", "1:02:03"), and always encodes as a number.
type Duration float64

// UnmarshalJSON accepts a JSON number or a clock string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*d = Duration(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a number or a string: %s", data)
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalYAML accepts a YAML number or a clock string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

// String renders the duration as m:ss, or h:mm:ss from an hour up.
func (d Duration) String() string {
	seconds := float64(d)
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "?"
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	total := int64(math.Round(seconds))
	h, rem := total/3600, total%3600
	m, s := rem/60, rem%60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}

// ParseDuration parses "259", "259.5", "4:19" or "1:02:03" into seconds.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("unable to parse duration: %s", s)
	}

	var total float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("unable to parse duration: %s", s)
		}
		// Only the leading field of a clock string may exceed 59.
		if i > 0 && (v < 0 || v >= 60) {
			return 0, fmt.Errorf("unable to parse duration: %s", s)
		}
		total = total*60 + v
	}
	return Duration(total), nil
}
