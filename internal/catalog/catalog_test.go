package catalog

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"sort"
	"strconv"
	"testing"

	"github.com/handiism/music-catalog/internal/model"
)

func TestCatalog_Empty(t *testing.T) {
	c := New()

	if got := c.AlbumNames(); len(got) != 0 {
		t.Errorf("AlbumNames() = %v, want empty", got)
	}
	if got := c.OrderedSongNames(); len(got) != 0 {
		t.Errorf("OrderedSongNames() = %v, want empty", got)
	}
	if _, err := c.LongestSong(); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("LongestSong() error = %v, want ErrEmptyCollection", err)
	}
	if _, err := c.LongestAlbum(); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("LongestAlbum() error = %v, want ErrEmptyCollection", err)
	}
}

func TestCatalog_BasicScenario(t *testing.T) {
	c := New()
	c.AddAlbum("A", 2000)
	mustAdd(t, c, "s1", model.InAlbum("A"), 100.0)
	mustAdd(t, c, "s2", model.NoAlbum(), 50.0)

	if got := c.CountSongs("A"); got != 1 {
		t.Errorf("CountSongs(%q) = %d, want 1", "A", got)
	}
	if got := c.CountSongsInNoAlbum(); got != 1 {
		t.Errorf("CountSongsInNoAlbum() = %d, want 1", got)
	}
	avg, ok := c.AverageDurationOfSongs("A")
	if !ok || avg != 100.0 {
		t.Errorf("AverageDurationOfSongs(%q) = (%v, %v), want (100, true)", "A", avg, ok)
	}
	longest, err := c.LongestSong()
	if err != nil {
		t.Fatalf("LongestSong() unexpected error: %v", err)
	}
	if longest != "s1" {
		t.Errorf("LongestSong() = %q, want %q", longest, "s1")
	}
}

func TestCatalog_AddSongInvalidReference(t *testing.T) {
	c := New()
	mustAdd(t, c, "single", model.NoAlbum(), 10)
	before := c.CountSongsInNoAlbum()

	err := c.AddSong("x", model.InAlbum("Nonexistent"), 10.0)
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("AddSong() error = %v, want ErrInvalidReference", err)
	}
	if got := c.CountSongsInNoAlbum(); got != before {
		t.Errorf("CountSongsInNoAlbum() = %d after failed add, want %d", got, before)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d after failed add, want 1", got)
	}
}

func TestCatalog_EmptyAlbumNameIsAReference(t *testing.T) {
	c := New()

	if err := c.AddSong("x", model.InAlbum(""), 10); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("AddSong() to unregistered album \"\" error = %v, want ErrInvalidReference", err)
	}

	c.AddAlbum("", 1999)
	mustAdd(t, c, "x", model.InAlbum(""), 10)
	mustAdd(t, c, "y", model.NoAlbum(), 20)

	if got := c.CountSongs(""); got != 1 {
		t.Errorf("CountSongs(\"\") = %d, want 1", got)
	}
	if got := c.CountSongsInNoAlbum(); got != 1 {
		t.Errorf("CountSongsInNoAlbum() = %d, want 1", got)
	}
}

func TestCatalog_DuplicateSongsCollapse(t *testing.T) {
	c := New()
	c.AddAlbum("A", 2000)

	mustAdd(t, c, "s", model.InAlbum("A"), 120)
	mustAdd(t, c, "n", model.NoAlbum(), 60)
	countA, countNone := c.CountSongs("A"), c.CountSongsInNoAlbum()

	mustAdd(t, c, "s", model.InAlbum("A"), 120)
	mustAdd(t, c, "n", model.NoAlbum(), 60)

	if got := c.CountSongs("A"); got != countA {
		t.Errorf("CountSongs(%q) = %d after duplicate add, want %d", "A", got, countA)
	}
	if got := c.CountSongsInNoAlbum(); got != countNone {
		t.Errorf("CountSongsInNoAlbum() = %d after duplicate add, want %d", got, countNone)
	}

	// Same name, different duration or album: distinct entries.
	mustAdd(t, c, "s", model.InAlbum("A"), 121)
	mustAdd(t, c, "s", model.NoAlbum(), 120)
	if got := c.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
}

func TestCatalog_NegativeZeroDuration(t *testing.T) {
	c := New()
	mustAdd(t, c, "silence", model.NoAlbum(), 0)
	mustAdd(t, c, "silence", model.NoAlbum(), math.Copysign(0, -1))

	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestCatalog_NaNDuration(t *testing.T) {
	c := New()
	mustAdd(t, c, "noise", model.NoAlbum(), math.NaN())
	mustAdd(t, c, "noise", model.NoAlbum(), -math.NaN())

	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestCatalog_AddAlbumOverwritesYear(t *testing.T) {
	c := New()
	c.AddAlbum("A", 2000)
	c.AddAlbum("A", 2005)

	if got := c.AlbumNames(); len(got) != 1 {
		t.Errorf("AlbumNames() = %v, want a single album", got)
	}
	if got := c.AlbumInYear(2000); len(got) != 0 {
		t.Errorf("AlbumInYear(2000) = %v, want empty", got)
	}
	if got := c.AlbumInYear(2005); !slices.Equal(got, []string{"A"}) {
		t.Errorf("AlbumInYear(2005) = %v, want [A]", got)
	}
}

func TestCatalog_AlbumInYear(t *testing.T) {
	c := New()
	c.AddAlbum("Kid A", 2000)
	c.AddAlbum("Amnesiac", 2001)
	c.AddAlbum("Stories from the City", 2000)

	tests := []struct {
		year int
		want []string
	}{
		{2000, []string{"Kid A", "Stories from the City"}},
		{2001, []string{"Amnesiac"}},
		{1999, nil},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.year), func(t *testing.T) {
			got := c.AlbumInYear(tt.year)
			sort.Strings(got)
			if len(got) != len(tt.want) || (len(got) > 0 && !slices.Equal(got, tt.want)) {
				t.Errorf("AlbumInYear(%d) = %v, want %v", tt.year, got, tt.want)
			}
		})
	}
}

func TestCatalog_OrderedSongNames(t *testing.T) {
	c := New()
	c.AddAlbum("A", 2000)
	mustAdd(t, c, "beta", model.NoAlbum(), 1)
	mustAdd(t, c, "Alpha", model.NoAlbum(), 1)
	mustAdd(t, c, "alpha", model.InAlbum("A"), 2)
	mustAdd(t, c, "alpha", model.NoAlbum(), 2)

	want := []string{"Alpha", "alpha", "alpha", "beta"}
	if got := c.OrderedSongNames(); !slices.Equal(got, want) {
		t.Errorf("OrderedSongNames() = %v, want %v", got, want)
	}
}

func TestCatalog_OrderedSongNamesIsSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := New()
	c.AddAlbum("A", 1)
	for i := 0; i < 200; i++ {
		ref := model.NoAlbum()
		if rng.Intn(2) == 0 {
			ref = model.InAlbum("A")
		}
		mustAdd(t, c, strconv.Itoa(rng.Intn(1000)), ref, float64(rng.Intn(300)))
	}

	names := c.OrderedSongNames()
	if !sort.StringsAreSorted(names) {
		t.Errorf("OrderedSongNames() is not sorted: %v", names)
	}
	if len(names) != c.Len() {
		t.Errorf("len(OrderedSongNames()) = %d, want %d", len(names), c.Len())
	}
}

func TestCatalog_ReferencesAlwaysResolve(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := New()
	albums := []string{"A", "B", "C", "D"}

	for i := 0; i < 300; i++ {
		album := albums[rng.Intn(len(albums))]
		switch rng.Intn(3) {
		case 0:
			c.AddAlbum(album, 1990+rng.Intn(10))
		case 1:
			// May fail when the album is not yet registered; that is fine.
			_ = c.AddSong("s"+strconv.Itoa(i), model.InAlbum(album), float64(rng.Intn(600)))
		default:
			mustAdd(t, c, "s"+strconv.Itoa(i), model.NoAlbum(), float64(rng.Intn(600)))
		}
	}

	known := c.AlbumNames()
	for _, s := range c.Songs() {
		name, ok := s.Album.Get()
		if ok && !slices.Contains(known, name) {
			t.Errorf("song %v refers to unknown album %q", s, name)
		}
	}
}

func TestCatalog_AverageAbsentIffNoSongs(t *testing.T) {
	c := New()
	c.AddAlbum("Full", 2000)
	c.AddAlbum("Empty", 2001)
	mustAdd(t, c, "a", model.InAlbum("Full"), 100)
	mustAdd(t, c, "b", model.InAlbum("Full"), 200)

	for _, album := range []string{"Full", "Empty", "Unknown"} {
		_, ok := c.AverageDurationOfSongs(album)
		if ok != (c.CountSongs(album) > 0) {
			t.Errorf("AverageDurationOfSongs(%q) present = %v, CountSongs = %d", album, ok, c.CountSongs(album))
		}
	}

	if avg, _ := c.AverageDurationOfSongs("Full"); avg != 150 {
		t.Errorf("AverageDurationOfSongs(%q) = %v, want 150", "Full", avg)
	}
}

func TestCatalog_LongestAlbum(t *testing.T) {
	c := New()
	c.AddAlbum("A", 2000)
	c.AddAlbum("B", 2001)
	mustAdd(t, c, "a1", model.InAlbum("A"), 300)
	mustAdd(t, c, "b1", model.InAlbum("B"), 100)
	mustAdd(t, c, "b2", model.InAlbum("B"), 250)
	mustAdd(t, c, "long single", model.NoAlbum(), 1000)

	got, err := c.LongestAlbum()
	if err != nil {
		t.Fatalf("LongestAlbum() unexpected error: %v", err)
	}
	if got != "B" {
		t.Errorf("LongestAlbum() = %q, want %q", got, "B")
	}
}

func TestCatalog_LongestAlbumOnlySingles(t *testing.T) {
	c := New()
	c.AddAlbum("A", 2000)
	mustAdd(t, c, "single", model.NoAlbum(), 100)

	if _, err := c.LongestAlbum(); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("LongestAlbum() error = %v, want ErrEmptyCollection", err)
	}
}

func TestCatalog_LongestTieBreaks(t *testing.T) {
	c := New()
	c.AddAlbum("Y", 2000)
	c.AddAlbum("X", 2000)
	mustAdd(t, c, "zeta", model.InAlbum("Y"), 200)
	mustAdd(t, c, "eta", model.InAlbum("X"), 200)
	mustAdd(t, c, "short", model.NoAlbum(), 10)

	for i := 0; i < 20; i++ {
		song, err := c.LongestSong()
		if err != nil {
			t.Fatalf("LongestSong() unexpected error: %v", err)
		}
		if song != "eta" {
			t.Fatalf("LongestSong() = %q, want %q", song, "eta")
		}

		album, err := c.LongestAlbum()
		if err != nil {
			t.Fatalf("LongestAlbum() unexpected error: %v", err)
		}
		if album != "X" {
			t.Fatalf("LongestAlbum() = %q, want %q", album, "X")
		}
	}
}

func TestCatalog_QueriesReturnFreshSlices(t *testing.T) {
	c := New()
	c.AddAlbum("A", 2000)
	mustAdd(t, c, "s", model.NoAlbum(), 1)

	names := c.AlbumNames()
	names[0] = "mutated"
	if got := c.AlbumNames(); got[0] != "A" {
		t.Errorf("AlbumNames() = %v after mutating a previous result", got)
	}

	c.AddAlbum("B", 2001)
	if got := c.AlbumNames(); len(got) != 2 {
		t.Errorf("AlbumNames() = %v, want two albums after AddAlbum", got)
	}
}

func TestCatalog_Summary(t *testing.T) {
	c := New()
	c.AddAlbum("A", 2000)
	c.AddAlbum("B", 2001)
	mustAdd(t, c, "a1", model.InAlbum("A"), 300)
	mustAdd(t, c, "b1", model.InAlbum("B"), 100)
	mustAdd(t, c, "b2", model.InAlbum("B"), 250)
	mustAdd(t, c, "single", model.NoAlbum(), 50)

	s, err := c.Summary()
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}
	if s.Albums != 2 || s.Songs != 4 || s.SongsInNoAlbum != 1 {
		t.Errorf("Summary() counts = %+v", s)
	}
	if s.TotalDuration != 700 {
		t.Errorf("TotalDuration = %v, want 700", s.TotalDuration)
	}
	if s.LongestSong != "a1" {
		t.Errorf("LongestSong = %q, want %q", s.LongestSong, "a1")
	}
	if s.LongestAlbum != "B" {
		t.Errorf("LongestAlbum = %q, want %q", s.LongestAlbum, "B")
	}

	stats := c.AlbumStats()
	if len(stats) != 2 {
		t.Fatalf("AlbumStats() returned %d entries, want 2", len(stats))
	}
	if stats[1].Album.Name != "B" || stats[1].Songs != 2 || stats[1].Total != 350 || stats[1].Average != 175 {
		t.Errorf("AlbumStats()[1] = %+v", stats[1])
	}
}

func TestCatalog_SummaryEmpty(t *testing.T) {
	s, err := New().Summary()
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}
	if s.LongestSong != "" || s.LongestAlbum != "" {
		t.Errorf("Summary() = %+v, want empty superlatives", s)
	}
}

type timedSong struct {
	name     string
	album    string
	duration float64
}

// catalogOf builds a catalog whose songs belong to the named albums, or to
// no album when album is empty.
func catalogOf(t *testing.T, songs []timedSong) *Catalog {
	t.Helper()
	c := New()
	for _, s := range songs {
		album := model.NoAlbum()
		if s.album != "" {
			c.AddAlbum(s.album, 2000)
			album = model.InAlbum(s.album)
		}
		mustAdd(t, c, s.name, album, s.duration)
	}
	return c
}

func TestCatalog_LongestSongNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)

	tests := []struct {
		name  string
		songs []timedSong
		want  string
	}{
		{"NaN ranks lowest", []timedSong{{"nan", "", nan}, {"big", "", 500}, {"small", "", 1}}, "big"},
		{"NaN below -Inf", []timedSong{{"nan", "", nan}, {"neg", "", -inf}}, "neg"},
		{"only NaN", []timedSong{{"nan", "", nan}}, "nan"},
		{"+Inf wins", []timedSong{{"big", "", 500}, {"forever", "", inf}}, "forever"},
		{"NaN tie by name", []timedSong{{"b", "", nan}, {"a", "", nan}}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Map iteration order varies, so repeat on fresh catalogs.
			for range 50 {
				got, err := catalogOf(t, tt.songs).LongestSong()
				if err != nil {
					t.Fatalf("LongestSong() unexpected error: %v", err)
				}
				if got != tt.want {
					t.Fatalf("LongestSong() = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestCatalog_LongestAlbumNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)

	tests := []struct {
		name  string
		songs []timedSong
		want  string
	}{
		{"only -Inf", []timedSong{{"s", "A", -inf}}, "A"},
		{"only NaN", []timedSong{{"s", "B", nan}}, "B"},
		{"NaN ranks lowest", []timedSong{{"s", "A", nan}, {"t", "B", 1}}, "B"},
		{"NaN below -Inf", []timedSong{{"s", "A", -inf}, {"t", "B", nan}}, "A"},
		{"+Inf wins", []timedSong{{"s", "A", inf}, {"t", "B", 500}}, "A"},
		{"+Inf and -Inf sum to NaN", []timedSong{{"s", "A", inf}, {"t", "A", -inf}, {"u", "B", 1}}, "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 50 {
				got, err := catalogOf(t, tt.songs).LongestAlbum()
				if err != nil {
					t.Fatalf("LongestAlbum() unexpected error: %v", err)
				}
				if got != tt.want {
					t.Fatalf("LongestAlbum() = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func mustAdd(t *testing.T, c *Catalog, name string, album model.AlbumRef, duration float64) {
	t.Helper()
	if err := c.AddSong(name, album, duration); err != nil {
		t.Fatalf("AddSong(%q, %v, %v) unexpected error: %v", name, album, duration, err)
	}
}
