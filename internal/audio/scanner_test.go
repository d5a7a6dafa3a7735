package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

func TestScanner_ReadFileID3(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "01.mp3")
	writeID3(t, path, "Come Together", "Abbey Road", "1969", "259000")

	track, err := NewScanner(nil).ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}

	if track.Title != "Come Together" {
		t.Errorf("Title = %q, want %q", track.Title, "Come Together")
	}
	if track.Album != "Abbey Road" {
		t.Errorf("Album = %q, want %q", track.Album, "Abbey Road")
	}
	if track.Year != 1969 {
		t.Errorf("Year = %d, want 1969", track.Year)
	}
	if track.Duration != 259 {
		t.Errorf("Duration = %v, want 259", track.Duration)
	}
	if track.Path != path {
		t.Errorf("Path = %q, want %q", track.Path, path)
	}
}

func TestScanner_ReadFileFallsBackToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Untitled Demo.mp3")
	writeID3(t, path, "", "", "", "")

	track, err := NewScanner(nil).ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	if track.Title != "Untitled Demo" {
		t.Errorf("Title = %q, want %q", track.Title, "Untitled Demo")
	}
	if track.Album != "" || track.Duration != 0 {
		t.Errorf("ReadFile() = %+v, want no album and no duration", track)
	}
}

func TestScanner_ReadFileInvalidTLEN(t *testing.T) {
	for _, tlen := range []string{"forever", "NaN", "Inf", "-Inf", "-1000"} {
		t.Run(tlen, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.mp3")
			writeID3(t, path, "Bad", "", "", tlen)

			if _, err := NewScanner(nil).ReadFile(path); err == nil {
				t.Errorf("ReadFile() with TLEN %q expected error but got none", tlen)
			}
		})
	}
}

func TestScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	writeID3(t, filepath.Join(dir, "b.mp3"), "Second", "Album", "2001", "1000")
	writeID3(t, filepath.Join(dir, "sub", "a.MP3"), "First", "Album", "2001", "2000")
	if err := os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("not audio"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.flac"), []byte("not flac"), 0644); err != nil {
		t.Fatal(err)
	}

	var skipped []string
	tracks, err := NewScanner(nil).Scan(context.Background(), dir, func(path string, err error) {
		skipped = append(skipped, filepath.Base(path))
	})
	if err != nil {
		t.Fatalf("Scan() unexpected error: %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("Scan() returned %d tracks, want 2", len(tracks))
	}
	if tracks[0].Title != "Second" || tracks[1].Title != "First" {
		t.Errorf("Scan() order = [%q %q], want sorted by path", tracks[0].Title, tracks[1].Title)
	}
	if len(skipped) != 1 || skipped[0] != "broken.flac" {
		t.Errorf("skipped = %v, want [broken.flac]", skipped)
	}
}

func TestScanner_ScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeID3(t, filepath.Join(dir, "a.mp3"), "A", "", "", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewScanner(nil).Scan(ctx, dir, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

func TestScanner_ScanMissingRoot(t *testing.T) {
	if _, err := NewScanner(nil).Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for missing root but got none")
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1969", 1969},
		{"1969-09-26", 1969},
		{" 2001 ", 2001},
		{"", 0},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseYear(tt.input); got != tt.want {
				t.Errorf("parseYear(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// writeID3 writes a file containing only an ID3v2 tag. Empty values are omitted.
func writeID3(t *testing.T, path, title, album, year, tlen string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}

	tag := id3v2.NewEmptyTag()
	if title != "" {
		tag.SetTitle(title)
	}
	if album != "" {
		tag.SetAlbum(album)
	}
	if year != "" {
		tag.SetYear(year)
	}
	if tlen != "" {
		tag.AddTextFrame("TLEN", id3v2.EncodingUTF8, tlen)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := tag.WriteTo(f); err != nil {
		t.Fatal(err)
	}
}
