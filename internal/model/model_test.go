package model

import (
	"testing"
)

func TestRecord_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		album  string
		want   bool
	}{
		{"artist and album", "Miles Davis", "Kind of Blue", true},
		{"artist only", "Miles Davis", "", true},
		{"album only", "", "Kind of Blue", true},
		{"both empty", "", "", false},
		{"whitespace only", "  ", "\t", false},
		{"status album", "Miles Davis", "OK", false},
		{"status artist", "ok", "Kind of Blue", false},
		{"status both", "OK", "OK", false},
		{"status padded", " Ok ", "", false},
		{"sentinel inside text", "OKAY", "Okonkwo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord(tt.artist, tt.album, "", "", "", nil)
			if got := r.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRecord_CopiesTracks(t *testing.T) {
	tracks := []string{"So What", "Freddie Freeloader"}
	r := NewRecord("Miles Davis", "Kind of Blue", "1959", "Jazz", "", tracks)

	tracks[0] = "changed"

	if r.Tracks[0] != "So What" {
		t.Errorf("Tracks[0] = %q, want %q", r.Tracks[0], "So What")
	}
}

func TestRecord_Meta(t *testing.T) {
	tests := []struct {
		year  string
		genre string
		want  string
	}{
		{"1959", "Jazz", "1959 · Jazz"},
		{"", "Jazz", "Jazz"},
		{"1959", "", "1959"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r := NewRecord("a", "b", tt.year, tt.genre, "", nil)
			if got := r.Meta(); got != tt.want {
				t.Errorf("Meta() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord_DisplayAlbum(t *testing.T) {
	if got := NewRecord("a", "", "", "", "", nil).DisplayAlbum(); got != UntitledAlbum {
		t.Errorf("DisplayAlbum() = %q, want %q", got, UntitledAlbum)
	}
	if got := NewRecord("a", "Blue", "", "", "", nil).DisplayAlbum(); got != "Blue" {
		t.Errorf("DisplayAlbum() = %q, want %q", got, "Blue")
	}
}

func TestRecord_KeyAndEqual(t *testing.T) {
	a := NewRecord("Miles Davis", "Kind of Blue", "1959", "Jazz", "", []string{"So What"})
	b := NewRecord("Miles Davis", "Kind of Blue", "1959", "Jazz", "", []string{"So What"})
	c := NewRecord("Miles Davis", "Kind of Blue", "1959", "Jazz", "", []string{"Blue in Green"})

	if a.Key() != b.Key() {
		t.Errorf("Key() mismatch: %q vs %q", a.Key(), b.Key())
	}
	if !a.Equal(b) {
		t.Error("Equal() = false for identical records")
	}
	if a.Equal(c) {
		t.Error("Equal() = true for records with different tracks")
	}
	if a.HasCover() {
		t.Error("HasCover() = true for record without cover")
	}
}
