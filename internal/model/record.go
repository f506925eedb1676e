package model

import (
	"slices"
	"strings"
)

// StatusSentinel marks a spreadsheet status row. A record whose artist or
// album equals it (case-insensitive) never surfaces as data.
const StatusSentinel = "OK"

// UntitledAlbum is shown in place of an empty album title.
const UntitledAlbum = "(untitled)"

// Record represents one catalog entry with its metadata and track list.
//
// All string fields are already normalized (BOM stripped, trimmed) when a
// Record is built through the sheet/dto package. Year is kept as text and
// is never validated numerically.
//
// Example:
//
//	rec := NewRecord("Miles Davis", "Kind of Blue", "1959", "Jazz",
//	    "http://x/y.jpg", []string{"So What", "Freddie Freeloader"})
//	// rec.Tracks = ["So What", "Freddie Freeloader"]
type Record struct {
	// Artist is the release artist. May be empty.
	Artist string

	// Album is the release title. May be empty.
	Album string

	// Year is the release year as written in the source.
	Year string

	// Genre is the single facet value of the record.
	Genre string

	// Cover is a bare or protocol-relative image URL, or empty.
	Cover string

	// Tracks holds track titles in release order.
	Tracks []string
}

// NewRecord creates a Record. The tracks slice is copied.
func NewRecord(artist, album, year, genre, cover string, tracks []string) Record {
	return Record{
		Artist: artist,
		Album:  album,
		Year:   year,
		Genre:  genre,
		Cover:  cover,
		Tracks: slices.Clone(tracks),
	}
}

// IsValid reports whether the record may appear in the catalog.
//
// A record is invalid when both artist and album are empty, or when either
// of them equals StatusSentinel ignoring case.
func (r Record) IsValid() bool {
	artist := strings.TrimSpace(r.Artist)
	album := strings.TrimSpace(r.Album)

	if artist == "" && album == "" {
		return false
	}
	if strings.EqualFold(artist, StatusSentinel) || strings.EqualFold(album, StatusSentinel) {
		return false
	}
	return true
}

// HasCover returns true if the record carries a cover image URL.
func (r Record) HasCover() bool {
	return strings.TrimSpace(r.Cover) != ""
}

// Key returns a stable identity string for the record ("artist\x1falbum\x1fyear").
//
// Two records with the same artist, album and year share a key.
func (r Record) Key() string {
	return r.Artist + "\x1f" + r.Album + "\x1f" + r.Year
}

// Meta returns year and genre joined by a middle dot, skipping empty parts.
//
// Example:
//
//	NewRecord("a", "b", "1959", "Jazz", "", nil).Meta() // "1959 · Jazz"
//	NewRecord("a", "b", "", "Jazz", "", nil).Meta()     // "Jazz"
func (r Record) Meta() string {
	parts := make([]string, 0, 2)
	if r.Year != "" {
		parts = append(parts, r.Year)
	}
	if r.Genre != "" {
		parts = append(parts, r.Genre)
	}
	return strings.Join(parts, " · ")
}

// DisplayAlbum returns the album title, or UntitledAlbum when it is empty.
func (r Record) DisplayAlbum() string {
	if r.Album == "" {
		return UntitledAlbum
	}
	return r.Album
}

// Equal reports whether two records hold the same field values.
func (r Record) Equal(o Record) bool {
	return r.Artist == o.Artist &&
		r.Album == o.Album &&
		r.Year == o.Year &&
		r.Genre == o.Genre &&
		r.Cover == o.Cover &&
		slices.Equal(r.Tracks, o.Tracks)
}
