package audio

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/bogem/id3v2"
	mediatag "github.com/dhowden/tag"
	"golang.org/x/sync/errgroup"
)

// ScanConfig controls which files the Scanner reads and how many at once.
type ScanConfig struct {
	// Extensions lists the file extensions to read, including the dot.
	// Matching is case-insensitive.
	Extensions []string

	// MaxConcurrentFiles limits how many files are read in parallel.
	MaxConcurrentFiles int
}

// DefaultScanConfig returns the default scan configuration.
func DefaultScanConfig() *ScanConfig {
	return &ScanConfig{
		Extensions:         []string{".mp3", ".flac", ".m4a", ".ogg"},
		MaxConcurrentFiles: 8,
	}
}

// ScannedTrack holds the tag data read from one audio file.
type ScannedTrack struct {
	// Path is the file the tags were read from.
	Path string

	// Title is the TIT2 title, or the file name without extension if untagged.
	Title string

	// Album is the album title. Empty means the track is on no album.
	Album string

	// Year is the release year, 0 if unknown.
	Year int

	// Duration is the length in seconds taken from the TLEN frame.
	// Zero when the format does not carry a length tag.
	Duration float64
}

// Scanner reads tags from audio files.
//
// MP3 files are read with the id3v2 library, which also exposes the TLEN
// (length) frame. Every other format is read with dhowden/tag, which
// understands FLAC, MP4 and OGG metadata but carries no duration.
//
// Example:
//
//	scanner := NewScanner(DefaultScanConfig())
//	tracks, err := scanner.Scan(ctx, "/music", func(path string, err error) {
//	    log.Printf("skipping %s: %v", path, err)
//	})
type Scanner struct {
	config *ScanConfig
}

// NewScanner creates a new Scanner with the given configuration.
//
// If config is nil, DefaultScanConfig() is used.
func NewScanner(config *ScanConfig) *Scanner {
	if config == nil {
		config = DefaultScanConfig()
	}
	return &Scanner{config: config}
}

// Scan walks root and reads the tags of every file with a configured
// extension.
//
// Files whose tags cannot be read are passed to onSkip (which may be nil) and
// left out of the result. The result is sorted by path. Scan returns an error
// only if the walk itself fails or ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, root string, onSkip func(path string, err error)) ([]ScannedTrack, error) {
	paths, err := s.collect(ctx, root)
	if err != nil {
		return nil, err
	}

	results := make([]*ScannedTrack, len(paths))
	var skipMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.config.MaxConcurrentFiles, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			track, err := s.ReadFile(path)
			if err != nil {
				if onSkip != nil {
					skipMu.Lock()
					onSkip(path, err)
					skipMu.Unlock()
				}
				return nil
			}
			results[i] = &track
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	tracks := make([]ScannedTrack, 0, len(results))
	for _, t := range results {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks, nil
}

// collect returns the sorted paths below root that have a configured extension.
func (s *Scanner) collect(ctx context.Context, root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && s.accepts(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	slices.Sort(paths)
	return paths, nil
}

func (s *Scanner) accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.config.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// ReadFile reads the tags of a single audio file.
func (s *Scanner) ReadFile(path string) (ScannedTrack, error) {
	var (
		track ScannedTrack
		err   error
	)
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		track, err = readID3(path)
	} else {
		track, err = readGeneric(path)
	}
	if err != nil {
		return ScannedTrack{}, err
	}

	track.Path = path
	if track.Title == "" {
		track.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return track, nil
}

// readID3 reads title, album, year and length frames from an MP3 file.
func readID3(path string) (ScannedTrack, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return ScannedTrack{}, err
	}
	defer tag.Close()

	year := tag.Year()
	if year == "" {
		year = tag.GetTextFrame("TDRC").Text
	}

	track := ScannedTrack{
		Title: strings.TrimSpace(tag.Title()),
		Album: strings.TrimSpace(tag.Album()),
		Year:  parseYear(year),
	}

	if tlen := strings.TrimSpace(tag.GetTextFrame("TLEN").Text); tlen != "" {
		ms, err := strconv.ParseFloat(tlen, 64)
		if err != nil {
			return ScannedTrack{}, fmt.Errorf("invalid TLEN frame %q: %w", tlen, err)
		}
		if math.IsNaN(ms) || math.IsInf(ms, 0) || ms < 0 {
			return ScannedTrack{}, fmt.Errorf("invalid TLEN frame %q: not a finite, non-negative length", tlen)
		}
		track.Duration = ms / 1000
	}

	return track, nil
}

// readGeneric reads title, album and year from any format dhowden/tag supports.
func readGeneric(path string) (ScannedTrack, error) {
	f, err := os.Open(path)
	if err != nil {
		return ScannedTrack{}, err
	}
	defer f.Close()

	m, err := mediatag.ReadFrom(f)
	if err != nil {
		return ScannedTrack{}, err
	}

	return ScannedTrack{
		Title: strings.TrimSpace(m.Title()),
		Album: strings.TrimSpace(m.Album()),
		Year:  m.Year(),
	}, nil
}

// parseYear extracts the year from "2006" or "2006-01-02" style values.
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if len(s) > 4 {
		s = s[:4]
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return year
}
