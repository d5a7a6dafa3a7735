package model

import "testing"

func TestAlbum_FileName(t *testing.T) {
	album := NewAlbum("OK Computer: Deluxe", 1997)

	tests := []struct {
		format string
		want   string
	}{
		{"{album}", "OK Computer_ Deluxe"},
		{"{year} - {album}", "1997 - OK Computer_ Deluxe"},
		{"playlist", "playlist"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := album.FileName(tt.format); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestSong_FileName(t *testing.T) {
	tests := []struct {
		name   string
		song   Song
		format string
		want   string
	}{
		{"title only", NewSong("Airbag", InAlbum("OK Computer"), 284), "{title}.mp3", "Airbag.mp3"},
		{"album and title", NewSong("Airbag", InAlbum("OK Computer"), 284), "{album} - {title}.mp3", "OK Computer - Airbag.mp3"},
		{"no album", NewSong("Creep", NoAlbum(), 238), "{album}{title}.flac", "Creep.flac"},
		{"invalid chars", NewSong("What?/Why", NoAlbum(), 1), "{title}.mp3", "What__Why.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.song.FileName(tt.format); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestAlbumRef(t *testing.T) {
	none := NoAlbum()
	if none.IsPresent() {
		t.Error("NoAlbum() should not be present")
	}
	if none.Is("") {
		t.Error("NoAlbum() should not match an album named \"\"")
	}

	empty := InAlbum("")
	if !empty.IsPresent() {
		t.Error("InAlbum(\"\") should be present")
	}
	if !empty.Is("") {
		t.Error("InAlbum(\"\") should match an album named \"\"")
	}
	if none == empty {
		t.Error("NoAlbum() and InAlbum(\"\") must differ")
	}

	name, ok := InAlbum("Abbey Road").Get()
	if !ok || name != "Abbey Road" {
		t.Errorf("Get() = (%q, %v), want (%q, true)", name, ok, "Abbey Road")
	}
}

func TestSong_Equality(t *testing.T) {
	a := NewSong("Something", InAlbum("Abbey Road"), 182.5)
	b := NewSong("Something", InAlbum("Abbey Road"), 182.5)
	c := NewSong("Something", NoAlbum(), 182.5)

	if a != b {
		t.Error("songs with equal fields should be equal")
	}
	if a == c {
		t.Error("songs with different album references should differ")
	}
}
